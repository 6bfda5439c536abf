package otp

// schedule is the slot a code is derived for and its countdown.
type schedule struct {
	slot      uint64
	period    int
	remaining int
}

// scheduleFor computes the slot from a single whole-second clock reading.
func scheduleFor(c Credential, unix int64) schedule {
	period := c.EffectivePeriod()

	switch c.Type {
	case CounterBased:
		return schedule{slot: c.Counter, period: period, remaining: period}
	case TimeBased, MobileOTP, SteamGuard:
	}

	if unix < 0 {
		unix = 0
	}
	p := int64(period)
	return schedule{
		slot:      uint64(unix / p),
		period:    period,
		remaining: int(p - unix%p),
	}
}

// remainingAt recomputes the countdown for a cached code.
func remainingAt(t Type, period int, unix int64) int {
	if period <= 0 {
		period = DefaultPeriod
	}
	switch t {
	case CounterBased:
		return period
	case TimeBased, MobileOTP, SteamGuard:
	}
	if unix < 0 {
		unix = 0
	}
	p := int64(period)
	return int(p - unix%p)
}
