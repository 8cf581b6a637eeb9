package orders

import (
	"context"
	"fmt"

	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
)

// Workflow drives status changes from the order screen. Any status can
// follow any other; the shop corrects mislabeled orders by moving them
// freely, so there is no ordering guard here.
type Workflow struct {
	svc Service
}

// NewWorkflow builds an order status workflow over the record service.
func NewWorkflow(svc Service) (*Workflow, error) {
	if svc == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &Workflow{svc: svc}, nil
}

// AvailableTransitions returns every status except the current one, in
// canonical declaration order.
func AvailableTransitions(current enums.OrderStatus) []enums.OrderStatus {
	out := make([]enums.OrderStatus, 0, len(enums.OrderStatuses)-1)
	for _, status := range enums.OrderStatuses {
		if status == current {
			continue
		}
		out = append(out, status)
	}
	return out
}

// ApplyTransition moves the order to the target status. On failure the
// caller keeps whatever order it was displaying; nothing local changes
// until the server confirms.
func (w *Workflow) ApplyTransition(ctx context.Context, orderID int64, target enums.OrderStatus, notes string) (*RepairOrder, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("estado %q desconocido", target))
	}
	return w.svc.UpdateStatus(ctx, orderID, target, notes)
}
