package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"logsift/internal/domain"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

const synthesized = "2024-01-02 03:04:05"

func TestTimestampExtractor_Extract(t *testing.T) {
	tests := []struct {
		name   string
		mode   domain.Mode
		line   string
		wantTS string
		rest   string
		ok     bool
	}{
		{"plain", domain.ModeTolerant, "2024-05-01 10:00:00 INFO up", "2024-05-01 10:00:00", "INFO up", true},
		{"milliseconds", domain.ModeTolerant, "2024-05-01 10:00:00,123 INFO up", "2024-05-01 10:00:00,123", "INFO up", true},
		{"dot fraction tolerant", domain.ModeTolerant, "2024-05-01 10:00:00.5 x", "2024-05-01 10:00:00.5", "x", true},
		{"timestamp only", domain.ModeTolerant, "2024-05-01 10:00:00", "2024-05-01 10:00:00", "", true},
		{"missing", domain.ModeTolerant, "INFO up", synthesized, "INFO up", false},
		{"not a calendar time", domain.ModeTolerant, "2024-13-45 99:99:99 x", synthesized, "2024-13-45 99:99:99 x", false},
		{"strict plain", domain.ModeStrict, "2024-05-01 10:00:00 FAIL a", "2024-05-01 10:00:00", "FAIL a", true},
		{"strict milliseconds", domain.ModeStrict, "2024-05-01 10:00:00,123 FAIL a", "2024-05-01 10:00:00,123", "FAIL a", true},
		{"strict rejects dot fraction", domain.ModeStrict, "2024-05-01 10:00:00.5 x", synthesized, "2024-05-01 10:00:00.5 x", false},
		{"strict rejects glued text", domain.ModeStrict, "2024-05-01 10:00:00x", synthesized, "2024-05-01 10:00:00x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, rest, ok := NewTimestampExtractor(tt.mode, fixedNow).Extract(tt.line)
			assert.Equal(t, tt.wantTS, ts)
			assert.Equal(t, tt.rest, rest)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTimestampExtractor_DefaultClock(t *testing.T) {
	ts, _, ok := NewTimestampExtractor(domain.ModeTolerant, nil).Extract("no timestamp")
	assert.False(t, ok)
	_, err := time.Parse(TimestampLayout, ts)
	assert.NoError(t, err)
}
