package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok_fetcher/internal/domain"
)

func terms(tags ...string) []domain.SearchTerm {
	out := make([]domain.SearchTerm, len(tags))
	for i, tag := range tags {
		out[i] = domain.SearchTerm{Tag: tag, Target: 10}
	}
	return out
}

func TestNext_YieldsTermsInOrderOnce(t *testing.T) {
	s := New(terms("a", "b"), 3)

	u, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, Unit{Tag: "a", Target: 10}, u)

	u, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, "b", u.Tag)

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestRemaining_TracksCollected(t *testing.T) {
	s := New(terms("a"), 3)
	s.Next()

	assert.Equal(t, 10, s.Remaining("a"))
	s.RecordCollected("a", 7)
	assert.Equal(t, 3, s.Remaining("a"))
	s.RecordCollected("a", 5)
	assert.Equal(t, 0, s.Remaining("a"))
}

func TestRecordEmptyPage_AbandonsAfterLimit(t *testing.T) {
	s := New(terms("a"), 3)
	s.Next()

	assert.False(t, s.RecordEmptyPage("a"))
	assert.False(t, s.RecordEmptyPage("a"))
	assert.True(t, s.RecordEmptyPage("a"))
	assert.Equal(t, 0, s.Remaining("a"))

	outcomes := s.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.TermExhaustedSupply, outcomes[0].Status)
}

func TestRecordCollected_ResetsEmptyPageRun(t *testing.T) {
	s := New(terms("a"), 2)
	s.Next()

	assert.False(t, s.RecordEmptyPage("a"))
	s.RecordCollected("a", 1)
	assert.False(t, s.RecordEmptyPage("a"))
	assert.True(t, s.RecordEmptyPage("a"))
}

func TestOutcomes_StatusPerTerm(t *testing.T) {
	s := New(terms("done", "cut", "dry"), 3)

	s.Next()
	s.RecordCollected("done", 10)

	s.Next()
	s.RecordCollected("cut", 4)
	s.MarkTruncated("cut")

	s.Next()
	s.MarkExhausted("dry")

	outcomes := s.Outcomes()
	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.TermCompleted, outcomes[0].Status)
	assert.Equal(t, 10, outcomes[0].Collected)
	assert.Equal(t, domain.TermTruncated, outcomes[1].Status)
	assert.Equal(t, domain.TermExhaustedSupply, outcomes[2].Status)
}

func TestOutcomes_SkipsUnvisitedTerms(t *testing.T) {
	s := New(terms("a", "b"), 3)
	s.Next()

	outcomes := s.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "a", outcomes[0].Tag)
}
