package publisher

import (
	"context"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type StatusPublisher interface {
	PublishStatus(ctx context.Context, event *domain.StatusEvent) error
}
