package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/otpkit/pkg/otp"
)

const namespace = "otpkit"

// Label values.
const (
	SourceBackend  = "backend"
	SourceFallback = "fallback"
	ResultHit      = "hit"
	ResultMiss     = "miss"
)

// Observer records engine events as Prometheus counters.
type Observer struct {
	generated *prometheus.CounterVec
	lookups   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

var _ otp.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "codes_generated_total",
			Help:      "One-time codes produced, by credential type and source.",
		}, []string{"type", "source"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Code cache lookups, by result.",
		}, []string{"result"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Degraded codes served from the deterministic fallback, by reason.",
		}, []string{"reason"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{o.generated, o.lookups, o.fallbacks} {
			if err := reg.Register(c); err != nil {
				return nil, errors.Join(ErrRegister, err)
			}
		}
	}

	// Pre-create the common series so they are exported at zero.
	for _, t := range otp.Types {
		o.generated.WithLabelValues(string(t), SourceBackend)
		o.generated.WithLabelValues(string(t), SourceFallback)
	}
	o.lookups.WithLabelValues(ResultHit)
	o.lookups.WithLabelValues(ResultMiss)

	return o, nil
}

// MustNewObserver works like NewObserver but panics on registration errors.
func MustNewObserver(reg prometheus.Registerer) *Observer {
	o, err := NewObserver(reg)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Observer) CodeGenerated(t otp.Type, degraded bool) {
	source := SourceBackend
	if degraded {
		source = SourceFallback
	}
	o.generated.WithLabelValues(string(t), source).Inc()
}

func (o *Observer) CacheLookup(hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	o.lookups.WithLabelValues(result).Inc()
}

func (o *Observer) Fallback(_ otp.Type, reason otp.Reason) {
	o.fallbacks.WithLabelValues(string(reason)).Inc()
}
