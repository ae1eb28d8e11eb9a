package server

import (
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m5_dataset_loads_total",
		Help: "Number of completed full dataset loads.",
	})

	meltedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "m5_melted_rows",
		Help: "Row count of the most recent long-format reshape.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "m5_http_requests_total",
		Help: "HTTP requests served, by method and status.",
	}, []string{"method", "status"})
)

// RecordDatasetLoad counts one completed full load.
func RecordDatasetLoad() {
	datasetLoads.Inc()
}

// RecordMeltedRows records the size of the latest melt.
func RecordMeltedRows(n int) {
	meltedRows.Set(float64(n))
}

// RequestMetrics counts requests by method and response status.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
