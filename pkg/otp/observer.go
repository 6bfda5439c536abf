package otp

// Observer receives generation events. Implementations must be safe for
// concurrent use; see pkg/metrics for a Prometheus implementation.
type Observer interface {
	CodeGenerated(t Type, degraded bool)
	CacheLookup(hit bool)
	Fallback(t Type, reason Reason)
}

type nopObserver struct{}

func (nopObserver) CodeGenerated(Type, bool) {}
func (nopObserver) CacheLookup(bool)         {}
func (nopObserver) Fallback(Type, Reason)    {}
