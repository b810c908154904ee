package repository_test

import (
	"agenda/internal/domains/booking/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlapFilter(t *testing.T) {
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name      string
		excludeID string
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "half open window over scheduled bookings",
			wantWhere: "(services.professional_id = :professional_id AND bookings.status = :status" +
				" AND bookings.start_time < :window_end AND bookings.end_time > :window_start)",
			wantArgs: map[string]any{
				"professional_id": "pro-1",
				"status":          "SCHEDULED",
				"window_end":      end,
				"window_start":    start,
			},
		},
		{
			name:      "rescheduled booking ignores itself",
			excludeID: "b-1",
			wantWhere: "(services.professional_id = :professional_id AND bookings.status = :status" +
				" AND bookings.start_time < :window_end AND bookings.end_time > :window_start" +
				" AND bookings.id != :exclude_id)",
			wantArgs: map[string]any{
				"professional_id": "pro-1",
				"status":          "SCHEDULED",
				"window_end":      end,
				"window_start":    start,
				"exclude_id":      "b-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.OverlapFilter("pro-1", start, end, tt.excludeID)
			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMutableFilter(t *testing.T) {
	now := time.Date(2030, 1, 7, 9, 30, 0, 0, time.UTC)

	filter := repository.MutableFilter("b-1", now)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(id = :id AND status = :current_status AND start_time >= :not_started_at)", where)
	assert.Equal(t, map[string]any{
		"id":             "b-1",
		"current_status": "SCHEDULED",
		"not_started_at": now,
	}, args)
}
