package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverdueFine(t *testing.T) {
	tests := []struct {
		name     string
		due      string
		returned string
		perDay   int64
		want     int64
	}{
		{"on time", "2024-03-10", "2024-03-10", 500, 0},
		{"early", "2024-03-10", "2024-03-01", 500, 0},
		{"one day late", "2024-03-10", "2024-03-11", 500, 500},
		{"across month end", "2024-02-27", "2024-03-02", 100, 400},
		{"no fine configured", "2024-03-10", "2024-03-20", 0, 0},
		{"bad date", "not-a-date", "2024-03-20", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverdueFine(tt.due, tt.returned, tt.perDay))
		})
	}
}
