package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuerySuccessStoresAnswer(t *testing.T) {
	q := NewQueryClient()

	gen := q.Begin()
	assert.True(t, q.InFlight())
	_, ok := q.Result()
	assert.False(t, ok, "begin must clear the previous result")

	assert.True(t, q.Complete(gen, "abc"))
	assert.False(t, q.InFlight())

	text, ok := q.Result()
	assert.True(t, ok)
	assert.Equal(t, "abc", text)
}

func TestQueryFailureStoresSentinel(t *testing.T) {
	q := NewQueryClient()

	gen := q.Begin()
	assert.True(t, q.Fail(gen))
	assert.False(t, q.InFlight())

	text, ok := q.Result()
	assert.True(t, ok)
	assert.Equal(t, FailureText, text)
}

func TestQueryStaleResponseIsDiscarded(t *testing.T) {
	q := NewQueryClient()

	first := q.Begin()
	second := q.Begin()

	// The first exchange's response arrives after a newer submission; it
	// must not touch the result slot.
	assert.False(t, q.Complete(first, "stale answer"))
	assert.True(t, q.InFlight())
	_, ok := q.Result()
	assert.False(t, ok)

	assert.True(t, q.Complete(second, "fresh answer"))
	text, _ := q.Result()
	assert.Equal(t, "fresh answer", text)
}

func TestQueryStaleFailureIsDiscarded(t *testing.T) {
	q := NewQueryClient()

	first := q.Begin()
	second := q.Begin()

	assert.False(t, q.Fail(first))
	assert.True(t, q.InFlight())

	assert.True(t, q.Complete(second, "answer"))
	text, _ := q.Result()
	assert.Equal(t, "answer", text)
}

func TestQueryEachRoundTripOverwrites(t *testing.T) {
	q := NewQueryClient()

	gen := q.Begin()
	q.Complete(gen, "first")

	gen = q.Begin()
	q.Complete(gen, "second")

	text, _ := q.Result()
	assert.Equal(t, "second", text)
}
