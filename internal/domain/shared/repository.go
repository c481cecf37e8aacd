package shared

import "time"

// DateRange bounds a query by invoice date. Either side may be nil (open).
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether the range is unbounded on both sides.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}
