package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the registry served on /api/metrics
	Registry = prometheus.NewRegistry()

	// Buckets tuned for request latencies from a few milliseconds up to the upload timeout
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Asset host metrics
	StorageRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"provider", "operation", "status"},
	)

	StorageRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"provider", "operation", "status"},
	)

	// Mail transport metrics
	MailRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_client_operation_duration_seconds",
			Help:    "Mail transport operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"provider", "status"},
	)

	MailRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_client_operation_total",
			Help: "Total number of mail transport operations",
		},
		[]string{"provider", "status"},
	)

	// Business Metrics
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_admin_logins_total",
			Help: "Total admin login attempts",
		},
		[]string{"status"},
	)

	MentorWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_mentor_writes_total",
			Help: "Total mentor create/update/delete operations",
		},
		[]string{"operation", "status"},
	)

	ImageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_image_uploads_total",
			Help: "Total image upload attempts",
		},
		[]string{"status"},
	)

	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_contact_submissions_total",
			Help: "Total contact relay submissions",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPRequestDuration, HTTPRequestTotal, ActiveRequests,
		DBOperationDuration, DBOperationTotal,
		StorageRequestDuration, StorageRequestTotal,
		MailRequestDuration, MailRequestTotal,
		AdminLogins, MentorWrites, ImageUploads, ContactSubmissions,
		GoRoutines, HeapAlloc,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordInfrastructureMetrics samples runtime stats every 15s until stop is closed
func RecordInfrastructureMetrics(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
