package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_CountsAndItems(t *testing.T) {
	rep := NewReport()
	rep.Failures = []string{"a", "b"}
	rep.StackTraces = [][]string{{"x.py:1", "y.py:2"}}
	rep.LogEntries = []Record{{Kind: KindLeveled, Timestamp: "2024-05-01 10:00:00", Level: "INFO", Message: "up"}}

	assert.Equal(t, 2, rep.Count(BucketFailures))
	assert.Equal(t, 1, rep.Count(BucketStackTraces))
	assert.Equal(t, 0, rep.Count("no_such_bucket"))
	assert.Equal(t, 4, rep.Total())

	assert.Equal(t, []string{"x.py:1\ny.py:2"}, rep.Items(BucketStackTraces))
	assert.Equal(t, []string{"2024-05-01 10:00:00 INFO up"}, rep.Items(BucketLogEntries))

	items := rep.Items(BucketFailures)
	items[0] = "changed"
	assert.Equal(t, "a", rep.Failures[0], "Items returns a copy")
}

func TestReport_PassRate(t *testing.T) {
	rep := NewReport()
	_, ok := rep.PassRate()
	assert.False(t, ok)

	rep.Passed = []string{"a", "b", "c"}
	rep.Errors = []string{"d"}
	rate, ok := rep.PassRate()
	assert.True(t, ok)
	assert.InDelta(t, 0.75, rate, 1e-9)
}

func TestReport_JSONBucketOrder(t *testing.T) {
	data, err := json.Marshal(NewReport())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(Buckets))
	for _, bucket := range Buckets {
		assert.Equal(t, "[]", string(raw[bucket]), bucket)
	}
}
