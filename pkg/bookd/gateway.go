package bookd

import (
	"context"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
)

// Gateway is the client-facing surface (FIX acceptor in production, a stub
// in tests). The service calls OnOrderReport for every accepted or rejected
// command.
type Gateway interface {
	Start(ctx context.Context) error
	OnOrderReport(ctx context.Context, report *model.OrderReport)
}
