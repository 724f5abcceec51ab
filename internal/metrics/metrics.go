package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshelf_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_catalog_requests_total",
		Help: "Total number of upstream catalog requests by operation and outcome",
	}, []string{"operation", "outcome"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshelf_catalog_request_duration_seconds",
		Help:    "Duration of upstream catalog requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	WishlistToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_wishlist_toggles_total",
		Help: "Wishlist membership changes by direction",
	}, []string{"direction"})
)
