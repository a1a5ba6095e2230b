package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_quotes_total",
		Help: "Shipping quotes served, by outcome (priced, empty, estimated).",
	},
		[]string{"outcome"},
	)

	DestinationResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_destination_resolutions_total",
		Help: "Zipcode resolutions, by the step that produced the answer.",
	},
		[]string{"source"},
	)

	ZipCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_zip_cache_lookups_total",
		Help: "Zip cache lookups, by result (hit, miss).",
	},
		[]string{"layer", "result"},
	)

	ZipCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fulfillment_zip_cache_items",
		Help: "Current number of entries in the in-memory zip cache.",
	})

	MissingSKUsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_packer_missing_skus_total",
		Help: "Line items packed with the fallback weight because the SKU had no catalog weight.",
	})

	WebhooksReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_webhooks_received_total",
		Help: "Inbound webhook calls, by source and result.",
	},
		[]string{"source", "result"},
	)

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_order_transitions_total",
		Help: "Order status transitions applied by the state machine.",
	},
		[]string{"from", "to"},
	)

	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_shipments_created_total",
		Help: "Shipments created with the carrier.",
	})

	ShipmentsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_shipments_skipped_total",
		Help: "Shipment creation requests skipped because the order already had a shipment.",
	})

	UnknownCarrierStatusTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_unknown_carrier_status_total",
		Help: "Carrier webhooks whose raw status was not recognised.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fulfillment_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"handler", "method"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_http_requests_total",
		Help: "HTTP requests, by handler, method and status code.",
	},
		[]string{"handler", "method", "status"},
	)

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_grpc_requests_total",
		Help: "gRPC requests, by method and status code.",
	},
		[]string{"method", "code"},
	)
)
