package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate

var translator ut.Translator

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
}

// Check validates val and returns every failure translated to English,
// joined with "; " in field order.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {
		var verrors validator.ValidationErrors
		if !errors.As(err, &verrors) {
			return err
		}

		if len(verrors) < 1 {
			return nil
		}

		msgs := make([]string, 0, len(verrors))
		for _, fe := range verrors {
			msgs = append(msgs, fe.Translate(translator))
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	return nil
}

// EchoValidator plugs Check into echo.Context.Validate.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return Check(i)
}
