package models

import "time"

// Countdown is the time left until the event, split for display.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	// Passed is set once the event has started; all fields are then zero.
	Passed bool
}

// CountdownTo returns the time left from now until target.
func CountdownTo(target, now time.Time) Countdown {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{Passed: true}
	}

	total := int(d / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}
