package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopweb_orders_created_total",
		Help: "Number of orders successfully created.",
	})
	ordersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopweb_orders_cancelled_total",
		Help: "Number of orders cancelled.",
	})
	orderCreateFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopweb_order_create_failures_total",
		Help: "Number of order creation attempts rolled back.",
	})
)
