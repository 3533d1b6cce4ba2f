package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidScore(t *testing.T) {
	cases := map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false}
	for score, want := range cases {
		assert.Equal(t, want, ValidScore(score), "score %d", score)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "created", OutcomeCreated.String())
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}
