package booking

import "time"

// SlotInterval is the fixed length of a bookable slot.  Working hours
// are discretized into slot starts every SlotInterval beginning at
// opening time.
const SlotInterval = 30 * time.Minute

const fullDay = 24 * time.Hour

// SlotOffsets returns the bookable slot starts for one working day as
// offsets from that day's midnight, in ascending order.  Generation
// starts at opens and stops strictly before closes.  When closes is
// numerically before opens the window wraps past midnight, so offsets
// at or beyond 24h denote slots in the early hours of the following
// calendar day.  opens == closes yields no slots.
func SlotOffsets(opens, closes time.Duration) []time.Duration {
	if opens == closes {
		return nil
	}
	end := closes
	if closes < opens {
		end += fullDay
	}
	offsets := make([]time.Duration, 0, int(((end-opens)+SlotInterval-1)/SlotInterval))
	for off := opens; off < end; off += SlotInterval {
		offsets = append(offsets, off)
	}
	return offsets
}

// WithinLeadTime reports whether candidate may still be booked at
// instant now.  Same-instant and past bookings are rejected.
func WithinLeadTime(candidate, now time.Time) bool {
	return candidate.After(now)
}

// AlignsToSlot reports whether ts falls exactly on a bookable slot of
// the working-hours window [opens, closes).  Comparison is on the
// time of day, so for an overnight window a timestamp in the early
// hours matches the wrapped slots of the previous working day.
func AlignsToSlot(opens, closes time.Duration, ts time.Time) bool {
	tod := timeOfDay(ts)
	for _, off := range SlotOffsets(opens, closes) {
		if off%fullDay == tod {
			return true
		}
	}
	return false
}

// SlotTime materializes a slot offset on a calendar date.  Offsets of
// 24h or more land on the following day, which is how overnight
// windows spill past midnight.
func SlotTime(date time.Time, offset time.Duration) time.Time {
	return dayStart(date).Add(offset)
}

// timeOfDay returns ts as an offset from its own day's midnight.
func timeOfDay(ts time.Time) time.Duration {
	return ts.Sub(dayStart(ts))
}

// dayStart returns midnight of ts's calendar day in ts's location.
func dayStart(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// sameDay reports whether a and b fall on the same calendar day once
// b is viewed in a's location.
func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
