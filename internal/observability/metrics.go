package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	checkInCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_service",
		Subsystem: "attendance",
		Name:      "check_ins_total",
		Help:      "Number of successful member check-ins.",
	})
	purchaseCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_service",
		Subsystem: "membership",
		Name:      "purchases_total",
		Help:      "Number of membership purchases and renewals.",
	})
	membershipEndGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gym_service",
		Subsystem: "membership",
		Name:      "last_purchase_end_timestamp_seconds",
		Help:      "Unix timestamp of the membership window end from the most recent purchase.",
	})
	workoutLogCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_service",
		Subsystem: "workouts",
		Name:      "logs_total",
		Help:      "Number of workout logs appended.",
	})
)

func init() {
	prometheus.MustRegister(checkInCounter, purchaseCounter, membershipEndGauge, workoutLogCounter)
}

// RecordCheckIn counts a successful check-in.
func RecordCheckIn() {
	checkInCounter.Inc()
}

// RecordPurchase counts a purchase and updates the window watermark.
func RecordPurchase(end time.Time) {
	purchaseCounter.Inc()
	if !end.IsZero() {
		membershipEndGauge.Set(float64(end.Unix()))
	}
}

// RecordWorkoutLogged counts an appended workout log.
func RecordWorkoutLogged() {
	workoutLogCounter.Inc()
}
