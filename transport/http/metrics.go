package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docgate_challenges_issued_total",
		Help: "Login challenges issued.",
	})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docgate_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	contentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docgate_content_requests_total",
		Help: "Protected content requests by result.",
	}, []string{"result"})
)
