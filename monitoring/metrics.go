package monitoring

import (
	"context"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	waitlistDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "waitlist_depth_total",
			Help: "Current waitlist entries per queue date",
		},
		[]string{"queue_date"},
	)

	reservationCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reservations_total",
			Help: "Current number of stored reservations",
		},
	)

	queueOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_operations_total",
			Help: "Total waitlist queue operations",
		},
		[]string{"operation", "status"},
	)

	reservationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Total reservation operations",
		},
		[]string{"operation", "status"},
	)

	offerExpirations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "table_offer_expirations_total",
			Help: "Table offers removed after the claim window lapsed",
		},
	)

	resequenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cohort_resequence_duration_seconds",
			Help:    "Duration of cohort resequencing passes",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

type Monitor struct {
	app core.App
}

func NewMonitor(ctx context.Context, app core.App) *Monitor {
	monitor := &Monitor{app: app}

	// Start metrics collection; stops when ctx is cancelled on shutdown
	go monitor.collectMetrics(ctx)

	return monitor
}

func (m *Monitor) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectQueueMetrics()
			m.collectReservationMetrics()
		}
	}
}

func (m *Monitor) collectQueueMetrics() {
	records, err := m.app.FindRecordsByFilter("queue_entries", "entryId != ''", "", 0, 0)
	if err != nil {
		return
	}

	depths := map[string]int{}
	for _, record := range records {
		depths[record.GetString("queueDate")]++
	}
	waitlistDepth.Reset()
	for date, depth := range depths {
		waitlistDepth.WithLabelValues(date).Set(float64(depth))
	}
}

func (m *Monitor) collectReservationMetrics() {
	total, err := m.app.CountRecords("reservations")
	if err != nil {
		return
	}
	reservationCount.Set(float64(total))
}

// Track queue operations
func (m *Monitor) TrackQueueOperation(operation, status string) {
	queueOperations.WithLabelValues(operation, status).Inc()
}

// Track reservation operations
func (m *Monitor) TrackReservationOperation(operation, status string) {
	reservationOperations.WithLabelValues(operation, status).Inc()
}

// Track expired table offers
func (m *Monitor) TrackOfferExpiration() {
	offerExpirations.Inc()
}

// Track resequencing passes
func (m *Monitor) TrackResequence(duration time.Duration) {
	resequenceDuration.Observe(duration.Seconds())
}
