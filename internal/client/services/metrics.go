package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "eventdesk_client"

const (
	outcomeOK         = "ok"
	outcomeError      = "error"
	outcomeSuperseded = "superseded"
)

var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "refresh_total",
		Help:      "Event list refreshes by outcome.",
	}, []string{"outcome"})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "mutations_total",
		Help:      "Event create/update/delete calls by operation and outcome.",
	}, []string{"op", "outcome"})

	notificationsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "notifications_received_total",
		Help:      "Booking notifications received from the push channel.",
	})
)

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}
