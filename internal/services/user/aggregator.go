package user

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

// OrderGetter is the slice of the order backend the aggregator depends on.
// The order service client implements it.
type OrderGetter interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
}

// Aggregator resolves each user row's stored order references into full
// orders by fanning out one lookup per reference.
//
// Contract:
//   - output length and order match the input rows
//   - each user's orders slice preserves the stored reference order,
//     whatever order the lookups complete in
//   - a missing order fills its slot with a not_found failure marker; it
//     never fails the row or the batch
//   - an undecodable reference blob fails only that row (OrdersError set)
//   - a transport-level failure reaching the order backend aborts the whole
//     batch with ErrDependencyUnavailable, because that signals a dead
//     dependency, not missing data
//   - a deadline expiry fills the still-outstanding slots with timeout
//     markers instead of blocking the batch
type Aggregator struct {
	orders OrderGetter
	limit  int
}

// DefaultFanOutLimit bounds concurrent order lookups across the whole
// batch.
const DefaultFanOutLimit = 16

func NewAggregator(orders OrderGetter, limit int) *Aggregator {
	if limit <= 0 {
		limit = DefaultFanOutLimit
	}

	return &Aggregator{
		orders: orders,
		limit:  limit,
	}
}

// Hydrate transforms raw user rows into hydrated users. All lookups across
// all rows share one bounded group; each goroutine writes only its own
// pre-allocated slot, so no locking is needed.
func (a *Aggregator) Hydrate(ctx context.Context, rows []*domain.User) ([]*domain.HydratedUser, error) {
	hydrated := make([]*domain.HydratedUser, len(rows))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.limit)

	for i, row := range rows {
		hydratedUser := &domain.HydratedUser{
			ID:       row.ID,
			Username: row.Username,
			Password: row.Password,
			Email:    row.Email,
		}
		hydrated[i] = hydratedUser

		ids, err := domain.DecodeOrderIDs(row.OrderIDs)
		if err != nil {
			hydratedUser.OrdersError = err.Error()
			continue
		}

		hydratedUser.OrderIDs = ids
		hydratedUser.Orders = make([]domain.OrderResult, len(ids))

		for j, id := range ids {
			j, id := j, id
			group.Go(func() error {
				return a.resolve(groupCtx, id, &hydratedUser.Orders[j])
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return hydrated, nil
}

// resolve fills one reference slot. Only a systemic failure returns an
// error; everything else is absorbed into the slot.
func (a *Aggregator) resolve(ctx context.Context, id int64, slot *domain.OrderResult) error {
	order, err := a.orders.Get(ctx, id)

	switch {
	case err == nil:
		slot.Order = order
	case errors.Is(err, domain.ErrNotFound):
		slot.Failure = &domain.ResolutionFailure{OrderID: id, Reason: domain.ReasonNotFound}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		slot.Failure = &domain.ResolutionFailure{OrderID: id, Reason: domain.ReasonTimeout}
	case errors.Is(err, domain.ErrDependencyUnavailable), errors.Is(err, domain.ErrStoreUnavailable):
		return err
	default:
		slot.Failure = &domain.ResolutionFailure{OrderID: id, Reason: domain.ReasonLookupFailed}
	}

	return nil
}
