package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuickMatchQueueMatchesHeadFirst(t *testing.T) {
	q := newQuickMatchQueue()

	a := NewClientSession("a", nil)
	opp, matched := q.MatchOrEnqueue("american", a)
	assert.False(t, matched)
	assert.Nil(t, opp)

	b := NewClientSession("b", nil)
	opp, matched = q.MatchOrEnqueue("american", b)
	assert.True(t, matched)
	assert.Equal(t, a, opp)
}

func TestQuickMatchQueueCancel(t *testing.T) {
	q := newQuickMatchQueue()

	a := NewClientSession("a", nil)
	q.MatchOrEnqueue("russian", a)
	q.Cancel(a)

	b := NewClientSession("b", nil)
	opp, matched := q.MatchOrEnqueue("russian", b)
	assert.False(t, matched)
	assert.Nil(t, opp)
}

func TestQuickMatchQueueIsolatesVariants(t *testing.T) {
	q := newQuickMatchQueue()

	a := NewClientSession("a", nil)
	q.MatchOrEnqueue("american", a)

	b := NewClientSession("b", nil)
	opp, matched := q.MatchOrEnqueue("international", b)
	assert.False(t, matched)
	assert.Nil(t, opp)
}
