package parser

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"logsift/internal/domain"
)

func newTestClassifier(mode domain.Mode) *Classifier {
	return NewClassifier(Options{Mode: mode, Now: fixedNow})
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier(domain.ModeTolerant)

	tests := []struct {
		name string
		line string
		want domain.Record
	}{
		{
			name: "leveled line",
			line: "2024-05-01 10:00:00 INFO server started",
			want: domain.Record{Kind: domain.KindLeveled, Timestamp: "2024-05-01 10:00:00", Level: "INFO", Message: "server started"},
		},
		{
			name: "summary banner",
			line: "===== 3 passed in 1.20s =====",
			want: domain.Record{Kind: domain.KindSummary, Timestamp: synthesized, Summary: "3 passed in 1.20s"},
		},
		{
			name: "test result",
			line: "2024-05-01 10:00:01 FAIL tests/test_x.py::test_y",
			want: domain.Record{Kind: domain.KindTestResult, Timestamp: "2024-05-01 10:00:01", Result: "FAIL", TestName: "tests/test_x.py::test_y"},
		},
		{
			name: "error result",
			line: "ERROR test_db",
			want: domain.Record{Kind: domain.KindTestResult, Timestamp: synthesized, Result: "ERROR", TestName: "test_db"},
		},
		{
			name: "error level with free text",
			line: "2024-05-01 10:00:00 ERROR boom happened",
			want: domain.Record{Kind: domain.KindLeveled, Timestamp: "2024-05-01 10:00:00", Level: "ERROR", Message: "boom happened"},
		},
		{
			name: "duration",
			line: "test_slow ran in 12.5 seconds",
			want: domain.Record{Kind: domain.KindDuration, Timestamp: synthesized, DurationMessage: "test_slow ran in 12.5 seconds", Duration: "12.5"},
		},
		{
			name: "duration wins over warning",
			line: "WARNING retrying in 2.5s",
			want: domain.Record{Kind: domain.KindDuration, Timestamp: synthesized, DurationMessage: "WARNING retrying in 2.5s", Duration: "2.5"},
		},
		{
			name: "warning",
			line: "WARNING deprecated call",
			want: domain.Record{Kind: domain.KindWarning, Timestamp: synthesized, Warning: "deprecated call"},
		},
		{
			name: "trace start",
			line: "__________",
			want: domain.Record{Kind: domain.KindTraceStart, Timestamp: synthesized},
		},
		{
			name: "trace line",
			line: "File /app/tests/test_a.py:10 in test_a",
			want: domain.Record{Kind: domain.KindTraceLine, Timestamp: synthesized, TraceLine: "File /app/tests/test_a.py:10 in test_a"},
		},
		{
			name: "live log session",
			line: "---------- live log sessionstart ----------",
			want: domain.Record{Kind: domain.KindLiveLogSession, Timestamp: synthesized, Session: "---------- live log sessionstart ----------"},
		},
		{
			name: "catch-all message",
			line: "collected 5 items / 2 deselected",
			want: domain.Record{Kind: domain.KindMessage, Timestamp: synthesized, Message: "collected 5 items / 2 deselected"},
		},
		{
			name: "bare level token is a message",
			line: "INFO",
			want: domain.Record{Kind: domain.KindMessage, Timestamp: synthesized, Message: "INFO"},
		},
		{
			name: "invalid timestamp stays in the text",
			line: "2024-13-45 99:99:99 hello",
			want: domain.Record{Kind: domain.KindMessage, Timestamp: synthesized, Message: "2024-13-45 99:99:99 hello"},
		},
		{
			name: "surrounding whitespace is trimmed",
			line: "   PASS test_ok  \t",
			want: domain.Record{Kind: domain.KindTestResult, Timestamp: synthesized, Result: "PASS", TestName: "test_ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(tt.line)
			assert.True(t, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestClassifier_TolerantIsTotal(t *testing.T) {
	c := newTestClassifier(domain.ModeTolerant)

	for _, line := range []string{"", " ", "=", "==", "____ x", "\x00\x01", "日本語のログ", "PASS", "FAIL a b"} {
		rec, ok := c.Classify(line)
		assert.True(t, ok, "line %q", line)
		assert.NotEmpty(t, rec.Timestamp, "line %q", line)
	}
}

func TestClassifier_Strict(t *testing.T) {
	c := newTestClassifier(domain.ModeStrict)

	tests := []struct {
		name string
		line string
		ok   bool
		kind domain.Kind
	}{
		{"timestamped result", "2024-05-01 10:00:00 FAIL test_a", true, domain.KindTestResult},
		{"milliseconds", "2024-05-01 10:00:00,250 INFO ready", true, domain.KindLeveled},
		{"no timestamp", "FAIL test_a", false, 0},
		{"catch-all only", "2024-05-01 10:00:00 hello world", false, 0},
		{"fraction not accepted", "2024-05-01 10:00:00.5 INFO ready", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := c.Classify(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, rec.Kind)
			}
		})
	}
}

func TestClassifier_CustomLevels(t *testing.T) {
	c := NewClassifier(Options{Levels: []string{"WARNING"}, Now: fixedNow})

	rec, ok := c.Classify("WARNING disk low")
	assert.True(t, ok)
	assert.Equal(t, domain.KindLeveled, rec.Kind)
	assert.Equal(t, "WARNING", rec.Level)

	rec, _ = c.Classify("INFO ready")
	assert.Equal(t, domain.KindMessage, rec.Kind)
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	c := newTestClassifier(domain.ModeTolerant)
	want, _ := c.Classify("2024-05-01 10:00:00 FAIL test_a")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, _ := c.Classify("2024-05-01 10:00:00 FAIL test_a")
				if got.TestName != want.TestName {
					t.Errorf("got %q, want %q", got.TestName, want.TestName)
					return
				}
			}
		}()
	}
	wg.Wait()
}
