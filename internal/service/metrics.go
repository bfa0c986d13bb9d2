package service

import "github.com/prometheus/client_golang/prometheus"

var fallbackServed = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "content_fallback_total", Help: "Responses served from static fallback content"},
	[]string{"resource"},
)

func init() { prometheus.MustRegister(fallbackServed) }
