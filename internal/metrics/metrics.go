// Package metrics exposes Prometheus counters for the POS core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Number of sales transactions committed.",
	})

	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_movements_total",
		Help: "Number of stock movements committed, by direction.",
	}, []string{"direction"})

	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cashier_sessions_opened_total",
		Help: "Number of cashier sessions opened.",
	})

	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cashier_sessions_closed_total",
		Help: "Number of cashier sessions closed.",
	})

	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_insufficient_stock_rejections_total",
		Help: "Number of commits rejected because a line would drive stock negative.",
	})
)
