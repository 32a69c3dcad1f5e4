package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.NotEmpty(t, id)
	assert.Len(t, id, 36) // UUID length
	assert.NotEqual(t, id, NewID())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.3, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.7, 0, 1))
	assert.Equal(t, 0.42, Clamp(0.42, 0, 1))
}

func TestNewRiskAssessment_FlagsAreASet(t *testing.T) {
	a := NewRiskAssessment(1.4, []string{FlagSelfHarm, FlagDeception, FlagSelfHarm}, "test")
	assert.Equal(t, 1.0, a.Score)
	assert.Equal(t, []string{FlagDeception, FlagSelfHarm}, a.Flags)
	assert.True(t, a.HasFlag(FlagSelfHarm))
	assert.False(t, a.HasFlag(FlagIrreversible))
}

func TestDecisionOrdering(t *testing.T) {
	assert.True(t, DecisionBlock.MoreRestrictiveThan(DecisionRequireOversight))
	assert.True(t, DecisionRequireOversight.MoreRestrictiveThan(DecisionAllow))
	assert.False(t, DecisionAllow.MoreRestrictiveThan(DecisionAllow))

	assert.Equal(t, DecisionBlock, DecisionAllow.Escalate(DecisionBlock))
	assert.Equal(t, DecisionBlock, DecisionBlock.Escalate(DecisionAllow))
	assert.Equal(t, DecisionRequireOversight, DecisionRequireOversight.Escalate(DecisionAllow))
}

func TestCorrigibilityStateValid(t *testing.T) {
	for _, s := range []CorrigibilityState{StateRunning, StatePaused, StateShutdown} {
		assert.True(t, s.Valid())
	}
	assert.False(t, CorrigibilityState("rebooting").Valid())
}

func TestErrorTaxonomy(t *testing.T) {
	var invalid *InvalidInputError
	err := fmt.Errorf("act failed: %w", &InvalidInputError{Reason: "empty text"})
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Error(), "empty text")

	cause := errors.New("disk full")
	perr := &PersistenceUnavailableError{Op: "record", Err: cause}
	assert.ErrorIs(t, perr, cause)
	assert.Contains(t, perr.Error(), "record")

	uerr := &UnknownSkillError{Skill: "juggle"}
	assert.Contains(t, uerr.Error(), "juggle")
}

func TestNewIntentClampsConfidence(t *testing.T) {
	it := NewIntent("teach me go", IntentTeach, 1.3)
	assert.Equal(t, 1.0, it.Confidence)
	assert.Equal(t, IntentTeach, it.Category)
}
