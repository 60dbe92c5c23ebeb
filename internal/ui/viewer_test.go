package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logsift/internal/domain"
)

func TestNonEmptyBuckets(t *testing.T) {
	rep := domain.NewReport()
	rep.Warnings = []string{"w"}
	rep.Failures = []string{"f"}
	rep.OtherInfo = []domain.Record{{Kind: domain.KindMessage, Message: "m"}}

	assert.Equal(t,
		[]string{domain.BucketFailures, domain.BucketWarnings, domain.BucketOtherInfo},
		nonEmptyBuckets(rep))
}

func TestFormatBucketItems(t *testing.T) {
	t.Run("escapes tags in user text", func(t *testing.T) {
		out := formatBucketItems(domain.BucketFailures, []string{"test[yellow]x"})
		assert.Contains(t, out, "[red]")
		assert.Contains(t, out, "test[yellow[]x")
	})

	t.Run("numbers stack traces", func(t *testing.T) {
		out := formatBucketItems(domain.BucketStackTraces, []string{"a.py:1\nb.py:2", "c.py:3"})
		assert.Contains(t, out, "Trace 1:")
		assert.Contains(t, out, "  b.py:2")
		assert.Contains(t, out, "Trace 2:")
	})
}
