package clock

import "time"

// Clock abstracts time.Now so age/ratio math is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock (always UTC).
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Func adapts a plain function into a Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock { return Func(func() time.Time { return t }) }
