package ports

import (
	"context"

	"github.com/hannesgao/docgate/core"
)

// EventPublisher publishes access events for audit and telemetry.
type EventPublisher interface {
	PublishAccess(ctx context.Context, ev core.AccessEvent) error
}
