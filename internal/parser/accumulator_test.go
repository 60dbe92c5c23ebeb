package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsift/internal/domain"
)

// run classifies lines and folds them through a fresh accumulator
func run(t *testing.T, input string) []domain.Record {
	t.Helper()
	c := newTestClassifier(domain.ModeTolerant)
	var acc Accumulator
	var out []domain.Record
	for _, line := range strings.Split(input, "\n") {
		rec, ok := c.Classify(line)
		require.True(t, ok)
		if r, emit := acc.Feed(rec); emit {
			out = append(out, r)
		}
	}
	if r, emit := acc.Flush(); emit {
		out = append(out, r)
	}
	return out
}

func TestAccumulator_AttachesTraceToTerminator(t *testing.T) {
	out := run(t, "____\na/b.py:10 failed\nPASS foo")

	require.Len(t, out, 1)
	assert.Equal(t, domain.KindTestResult, out[0].Kind)
	assert.Equal(t, "foo", out[0].TestName)
	assert.Equal(t, []string{"a/b.py:10 failed"}, out[0].StackTrace)
}

func TestAccumulator_FlushesDanglingTrace(t *testing.T) {
	out := run(t, "____\na/b.py:5 err")

	require.Len(t, out, 1)
	assert.Equal(t, domain.Record{Kind: domain.KindStackTrace, StackTrace: []string{"a/b.py:5 err"}}, out[0])
	assert.False(t, out[0].Has(domain.FieldTimestamp))
}

func TestAccumulator_TraceLineWhileIdleIsMessage(t *testing.T) {
	out := run(t, "a/b.py:7 stray\nINFO done")

	require.Len(t, out, 2)
	assert.Equal(t, domain.KindMessage, out[0].Kind)
	assert.Equal(t, "a/b.py:7 stray", out[0].Message)
	assert.Empty(t, out[1].StackTrace)
}

func TestAccumulator_SecondStartDiscardsBuffer(t *testing.T) {
	out := run(t, "____\na/one.py:1 x\n____\na/two.py:2 y\nFAIL test_z")

	require.Len(t, out, 1)
	assert.Equal(t, []string{"a/two.py:2 y"}, out[0].StackTrace)
}

func TestAccumulator_EmptyTraceAttachesNothing(t *testing.T) {
	out := run(t, "____\nFAIL test_z\nINFO after")

	require.Len(t, out, 2)
	assert.Nil(t, out[0].StackTrace)
	assert.Nil(t, out[1].StackTrace)
}

func TestAccumulator_TraceStartsAreNeverEmitted(t *testing.T) {
	out := run(t, "____\n____\n____")
	assert.Empty(t, out)
}

func TestAccumulator_StateTransitions(t *testing.T) {
	var acc Accumulator
	assert.False(t, acc.Collecting())

	_, emit := acc.Feed(domain.Record{Kind: domain.KindTraceStart})
	assert.False(t, emit)
	assert.True(t, acc.Collecting())

	_, emit = acc.Feed(domain.Record{Kind: domain.KindTraceLine, TraceLine: "a/x.py:1"})
	assert.False(t, emit)

	out, emit := acc.Drop()
	assert.True(t, emit)
	assert.Equal(t, []string{"a/x.py:1"}, out.StackTrace)
	assert.False(t, acc.Collecting())

	_, emit = acc.Flush()
	assert.False(t, emit, "idle flush emits nothing")
}

func TestAccumulator_OrderPreserved(t *testing.T) {
	out := run(t, "INFO one\nWARNING two\n____\na/b.py:1 x\nFAIL three\nINFO four")

	var texts []string
	for _, rec := range out {
		texts = append(texts, rec.Text())
	}
	assert.Equal(t, []string{"INFO one", "WARNING two", "FAIL three", "INFO four"}, texts)
}
