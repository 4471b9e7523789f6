package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts directory searches served
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_searches_total",
		Help: "Total number of provider searches served",
	})

	// SearchCacheHits counts searches answered from cache
	SearchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_search_cache_hits_total",
		Help: "Searches answered from the result cache",
	})

	// ImportRows counts bulk-import rows by outcome
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_import_rows_total",
		Help: "Bulk-import rows processed, by outcome",
	}, []string{"status"})

	// AppointmentsBooked counts created appointments
	AppointmentsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_appointments_booked_total",
		Help: "Total number of appointments booked",
	})

	// ModerationDecisions counts admin review decisions by resource and outcome
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_moderation_decisions_total",
		Help: "Admin moderation decisions, by resource type and outcome",
	}, []string{"resource", "decision"})
)
