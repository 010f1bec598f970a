package validator

import (
	"resourcebook/pkg/model"
	"resourcebook/pkg/timeofday"
)

// Decision is the outcome of checking a candidate range against the
// bookings already stored for the same resource and date.
type Decision struct {
	BufferFrom timeofday.Clock
	BufferTo   timeofday.Clock

	// Set only when the candidate is rejected.
	Conflict     *model.Booking
	ConflictFrom string
	ConflictTo   string
}

func (d Decision) Admitted() bool {
	return d.Conflict == nil
}

type OverlapChecker struct {
	bufferMinutes int
}

func NewOverlapChecker(bufferMinutes int) *OverlapChecker {
	return &OverlapChecker{bufferMinutes: bufferMinutes}
}

func (c *OverlapChecker) BufferMinutes() int {
	return c.bufferMinutes
}

func (c *OverlapChecker) BufferedRange(from, to timeofday.Clock) (timeofday.Clock, timeofday.Clock) {
	return from.Add(-c.bufferMinutes), to.Add(c.bufferMinutes)
}

// Decide is pure: it reads nothing but its arguments. existing must already
// be narrowed to the candidate's resource and date.
func (c *OverlapChecker) Decide(existing []*model.Booking, timeFrom, timeTo string) (Decision, error) {
	from, err := timeofday.Parse(timeFrom)
	if err != nil {
		return Decision{}, err
	}
	to, err := timeofday.Parse(timeTo)
	if err != nil {
		return Decision{}, err
	}

	bufferFrom, bufferTo := c.BufferedRange(from, to)
	decision := Decision{BufferFrom: bufferFrom, BufferTo: bufferTo}

	for _, b := range existing {
		storedFrom, storedTo, ok := c.storedRange(b)
		if !ok {
			continue
		}
		if timeofday.Overlaps(storedFrom, storedTo, bufferFrom, bufferTo) {
			decision.Conflict = b
			decision.ConflictFrom = storedFrom.String()
			decision.ConflictTo = storedTo.String()
			return decision, nil
		}
	}

	return decision, nil
}

// storedRange prefers the persisted buffers and falls back to recomputing
// them from the requested times for records written without buffers.
func (c *OverlapChecker) storedRange(b *model.Booking) (timeofday.Clock, timeofday.Clock, bool) {
	from, errFrom := timeofday.Parse(b.BufferFrom)
	to, errTo := timeofday.Parse(b.BufferTo)
	if errFrom == nil && errTo == nil {
		return from, to, true
	}

	timeFrom, errFrom := timeofday.Parse(b.TimeFrom)
	timeTo, errTo := timeofday.Parse(b.TimeTo)
	if errFrom != nil || errTo != nil {
		return 0, 0, false
	}
	from, to = c.BufferedRange(timeFrom, timeTo)
	return from, to, true
}
