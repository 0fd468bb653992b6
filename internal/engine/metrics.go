package engine

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    optimisticApplied = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "feedsync_optimistic_applied_total",
        Help: "Optimistic cache writes applied before gateway confirmation",
    }, []string{"op"})

    rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "feedsync_rollbacks_total",
        Help: "Optimistic writes rolled back after gateway failure",
    }, []string{"op"})

    gatewayFailures = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "feedsync_gateway_failures_total",
        Help: "Gateway calls treated as uniform failure",
    }, []string{"op"})

    feedReloads = promauto.NewCounter(prometheus.CounterOpts{
        Name: "feedsync_feed_reloads_total",
        Help: "Authoritative feed reloads after membership changes",
    })
)

func metricOptimisticApply(op string) { optimisticApplied.WithLabelValues(op).Inc() }
func metricRollback(op string)       { rollbacks.WithLabelValues(op).Inc() }
func metricGatewayFailure(op string) { gatewayFailures.WithLabelValues(op).Inc() }
func metricFeedReload()              { feedReloads.Inc() }
