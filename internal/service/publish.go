package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
)

const publishTimeout = 5 * time.Second

// publish runs after commit. A failed publish is logged and never fails the caller.
func publish(ctx context.Context, p events.Publisher, topic, key string, event any) {
	if p == nil {
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.Publish(pctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "key", key, "error", err)
	}
}
