package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)
	tickets := "https://tickets.example.com/e/1"
	empty := ""

	tests := []struct {
		name      string
		ticketURL *string
		startTime time.Time
		featured  bool
		want      EventStatus
	}{
		{"no ticket link", nil, future, false, StatusComingSoon},
		{"empty ticket link", &empty, future, false, StatusComingSoon},
		{"no ticket link even when featured", nil, future, true, StatusComingSoon},
		{"past event", &tickets, past, false, StatusPastEvent},
		{"past event outranks featured", &tickets, past, true, StatusPastEvent},
		{"featured upcoming", &tickets, future, true, StatusFeatured},
		{"upcoming with tickets", &tickets, future, false, StatusOnSale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.ticketURL, tt.startTime, now, tt.featured)
			assert.Equal(t, tt.want, got)
		})
	}
}
