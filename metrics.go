package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CorreioMetrics struct {
	Exchange *ExchangeMetrics
}

type ExchangeMetrics struct {
	Registrations metrics.Counter
	Logins        metrics.Counter
	Logouts       metrics.Counter
	Delivered     metrics.Counter
	Drained       metrics.Counter
}

func NewCorreioMetrics(prometheusAddr string) *CorreioMetrics {

	m := &CorreioMetrics{}

	if prometheusAddr == "" {
		m.Exchange = &ExchangeMetrics{
			Registrations: discard.NewCounter(),
			Logins:        discard.NewCounter(),
			Logouts:       discard.NewCounter(),
			Delivered:     discard.NewCounter(),
			Drained:       discard.NewCounter(),
		}
	} else {
		m.Exchange = &ExchangeMetrics{
			Registrations: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "correio",
				Subsystem: "exchange",
				Name:      "registrations_total",
				Help:      "Number of successful account registrations",
			}, nil),
			Logins: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "correio",
				Subsystem: "exchange",
				Name:      "logins_total",
				Help:      "Number of successful logins",
			}, nil),
			Logouts: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "correio",
				Subsystem: "exchange",
				Name:      "logouts_total",
				Help:      "Number of logouts",
			}, nil),
			Delivered: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "correio",
				Subsystem: "exchange",
				Name:      "emails_delivered_total",
				Help:      "Number of emails delivered into mailboxes",
			}, nil),
			Drained: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "correio",
				Subsystem: "exchange",
				Name:      "emails_drained_total",
				Help:      "Number of emails handed out on mailbox retrieval",
			}, nil),
		}
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
