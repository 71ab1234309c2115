package shared

import "context"

// Locker serialises operations on one key across the read, gateway call and
// write of a payment step. Acquire gives up with errs.ErrOperationInProgress
// once its wait budget is spent.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func ReservationLockKey(id string) string {
	return "reservation:" + id
}
