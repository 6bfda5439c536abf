// Package metrics exports otpkit engine activity to Prometheus.
//
// Observer implements otp.Observer and maintains three counters:
//
//	otpkit_codes_generated_total{type,source}  source is backend or fallback
//	otpkit_cache_lookups_total{result}         result is hit or miss
//	otpkit_fallback_total{reason}              why a code degraded
//
// Server serves /metrics and /healthz with graceful shutdown on context
// cancellation.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	obs := metrics.MustNewObserver(reg)
//	engine := otp.NewEngine(otp.WithObserver(obs))
//
//	srv := metrics.NewServer(reg, metrics.WithAddr(cfg.MetricsAddr))
//	go srv.Run(ctx)
package metrics
