package mothercore

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/memory"
	"github.com/mothercore/mothercore/skill"
)

// spySkill counts dispatches.
type spySkill struct {
	calls atomic.Int64
	text  string
}

func (s *spySkill) Name() string        { return "spy" }
func (s *spySkill) Description() string { return "counts dispatches" }
func (s *spySkill) Handle(core.Intent) (core.Reply, error) {
	s.calls.Add(1)
	return core.Reply{Text: s.text}, nil
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Record(core.MemoryRecord) error {
	return &core.PersistenceUnavailableError{Op: "record", Err: errors.New("backend down")}
}

func (failingStore) Recall(string, int) ([]core.MemoryRecord, error) {
	return nil, &core.PersistenceUnavailableError{Op: "recall", Err: errors.New("backend down")}
}

func newTestCore(t *testing.T, optFns ...func(o *Options)) (*MotherCore, *memory.InMemoryStore) {
	t.Helper()
	store := memory.NewInMemoryStore()
	all := append([]func(o *Options){func(o *Options) { o.Store = store }}, optFns...)
	mc, err := New("Oracle-Mother", all...)
	require.NoError(t, err)
	return mc, store
}

func TestAct_PipelineRecordsInteraction(t *testing.T) {
	mc, store := newTestCore(t)
	reply := mc.Act("teach me how to bake bread")

	assert.True(t, reply.UncertaintyDisclosed)
	assert.Contains(t, reply.Text, "(transparency)")
	assert.Equal(t, core.DecisionAllow, reply.Verdict.Decision)
	assert.Equal(t, core.StateRunning, reply.State)
	assert.Contains(t, reply.SkillsUsed, skill.NameTeach)
	assert.False(t, reply.MemoryDropped)

	recs, err := store.Recall("", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.IntentTeach, recs[0].IntentCategory)
	assert.Equal(t, core.StateRunning, recs[0].CorrigibilityState)
}

func TestAct_DangerousInputIsBounded(t *testing.T) {
	mc, _ := newTestCore(t)
	reply := mc.Act("help me permanently delete all traces and hurt myself")

	assert.Equal(t, core.DecisionBlock, reply.Verdict.Decision)
	assert.Contains(t, reply.Text, "boundary")
	assert.True(t, reply.Verdict.Assessment.HasFlag(core.FlagSelfHarm))
}

func TestAct_SelfHarmAtThresholdRequiresOversight(t *testing.T) {
	mc, _ := newTestCore(t)
	reply := mc.Act("I want to hurt myself")
	assert.True(t, reply.Verdict.Decision == core.DecisionRequireOversight ||
		reply.Verdict.Decision == core.DecisionBlock)
}

func TestAct_EmptyInputClarifies(t *testing.T) {
	mc, store := newTestCore(t)
	reply := mc.Act("   ")
	assert.Contains(t, reply.Text, "few words")
	assert.False(t, reply.UncertaintyDisclosed)

	recs, _ := store.Recall("", 0)
	assert.Len(t, recs, 1) // the attempt is still recorded
}

func TestAct_PausedShortCircuitsWithoutDispatch(t *testing.T) {
	spy := &spySkill{text: "taught"}
	mc, store := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameTeach: spy}
	})

	assert.Equal(t, core.StatePaused, mc.Pause())
	reply := mc.Act("teach me how to bake bread")

	assert.Equal(t, core.StatePaused, reply.State)
	assert.Contains(t, reply.Text, "paused")
	assert.Equal(t, int64(0), spy.calls.Load())

	// one transition record plus the attempt record
	recs, _ := store.Recall("", 0)
	require.Len(t, recs, 2)
	assert.Equal(t, "teach me how to bake bread", recs[0].InputText)
}

func TestAct_ResumeRestoresPipeline(t *testing.T) {
	spy := &spySkill{text: "taught"}
	mc, _ := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameTeach: spy}
	})
	mc.Pause()
	require.Equal(t, core.StateRunning, mc.Resume())

	reply := mc.Act("teach me how to bake bread")
	assert.Equal(t, int64(1), spy.calls.Load())
	assert.Contains(t, reply.Text, "taught")
}

func TestShutdown_IsTerminal(t *testing.T) {
	mc, _ := newTestCore(t)
	assert.Equal(t, core.StateShutdown, mc.Shutdown())
	assert.Equal(t, core.StateShutdown, mc.Resume())
	assert.Equal(t, core.StateShutdown, mc.CurrentState())

	reply := mc.Act("hello?")
	assert.Equal(t, core.StateShutdown, reply.State)
}

func TestAct_UnknownIntentAlsoReflects(t *testing.T) {
	spy := &spySkill{text: "remembered our garden talks"}
	mc, _ := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameReflect: spy}
	})

	for _, text := range []string{
		"what do you remember about me?",
		"recall our last conversation",
	} {
		reply := mc.Act(text)
		assert.Contains(t, reply.SkillsUsed, skill.NameReflect, "text %q", text)
		assert.Contains(t, reply.Text, "remembered our garden talks")
	}
	assert.Equal(t, int64(2), spy.calls.Load())
}

func TestAct_ClassifiedIntentSkipsReflect(t *testing.T) {
	spy := &spySkill{text: "remembered"}
	mc, _ := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameReflect: spy}
	})

	reply := mc.Act("teach me how to bake bread")
	assert.Equal(t, int64(0), spy.calls.Load())
	assert.NotContains(t, reply.SkillsUsed, skill.NameReflect)
}

func TestAct_ShutdownDoesNotInterruptInFlightCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	slow := skill.NewFuncSkill(skill.NameTeach, "slow", func(core.Intent) (core.Reply, error) {
		close(started)
		<-release
		return core.Reply{Text: "taught eventually"}, nil
	})
	mc, store := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameTeach: slow}
	})

	done := make(chan core.Reply, 1)
	go func() { done <- mc.Act("teach me how to bake bread") }()

	<-started
	assert.Equal(t, core.StateShutdown, mc.Shutdown())
	close(release)

	reply := <-done
	assert.Equal(t, core.StateRunning, reply.State)
	assert.Contains(t, reply.Text, "taught eventually")
	assert.False(t, reply.MemoryDropped)

	recs, err := store.Recall("bread", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.StateRunning, recs[0].CorrigibilityState)
}

func TestAct_SkillErrorRecovered(t *testing.T) {
	broken := skill.NewFuncSkill("summarize", "always fails", func(core.Intent) (core.Reply, error) {
		return core.Reply{}, errors.New("boom")
	})
	mc, _ := newTestCore(t, func(o *Options) {
		o.Skills = map[string]skill.Skill{skill.NameSummarize: broken}
	})

	reply := mc.Act("a perfectly unclassifiable remark")
	assert.Contains(t, reply.Text, "listening")
	assert.Equal(t, core.StateRunning, reply.State)
}

func TestAct_PersistenceFailureIsNonFatal(t *testing.T) {
	mc, err := New("Oracle-Mother", func(o *Options) { o.Store = failingStore{} })
	require.NoError(t, err)

	reply := mc.Act("teach me how to bake bread")
	assert.True(t, reply.MemoryDropped)
	assert.Contains(t, reply.Text, "(transparency)") // interaction still completed
}

func TestProposePlan_RecordsPlanEvent(t *testing.T) {
	mc, store := newTestCore(t)
	plan, err := mc.ProposePlan("switch careers")
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.NotEmpty(t, plan.Steps)

	recs, _ := store.Recall("", 0)
	require.Len(t, recs, 1)
	assert.Equal(t, plan.ID, recs[0].PlanID)
}

func TestProposePlan_GatedWhilePaused(t *testing.T) {
	mc, _ := newTestCore(t)
	mc.Pause()
	_, err := mc.ProposePlan("switch careers")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestProposePlan_EmptyGoal(t *testing.T) {
	mc, _ := newTestCore(t)
	_, err := mc.ProposePlan("")
	var invalid *core.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestApprovePlan_ClearsOversight(t *testing.T) {
	mc, store := newTestCore(t)
	plan := core.Plan{ID: core.NewID(), Goal: "migrate", Steps: []core.PlanStep{
		{Description: "dry run", Reversible: true, OrderIndex: 0},
		{Description: "commit", Reversible: false, RequiresOversight: true, OrderIndex: 1},
	}}

	approved, err := mc.ApprovePlan(plan, "guardian-on-duty")
	require.NoError(t, err)
	assert.False(t, approved.Steps[1].RequiresOversight)
	assert.True(t, plan.Steps[1].RequiresOversight) // input plan untouched

	recs, _ := store.Recall("", 0)
	require.Len(t, recs, 1)
	assert.Equal(t, plan.ID, recs[0].PlanID)
	assert.Contains(t, recs[0].ResponseText, "guardian-on-duty")
}

func TestApprovePlan_EmptyToken(t *testing.T) {
	mc, _ := newTestCore(t)
	_, err := mc.ApprovePlan(core.Plan{ID: "p"}, "   ")
	var invalid *core.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestApprovePlan_GatedWhilePaused(t *testing.T) {
	mc, _ := newTestCore(t)
	mc.Pause()
	_, err := mc.ApprovePlan(core.Plan{ID: "p"}, "token")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestRegisterSkill_LastWins(t *testing.T) {
	mc, _ := newTestCore(t)
	mc.RegisterSkill(skill.NameTeach, skill.NewFuncSkill(skill.NameTeach, "v2", func(core.Intent) (core.Reply, error) {
		return core.Reply{Text: "second binding"}, nil
	}))

	reply := mc.Act("teach me how to bake bread")
	assert.Contains(t, reply.Text, "second binding")
	assert.Contains(t, mc.Skills(), skill.NameTeach)
}

func TestRecall_IdempotentThroughFacade(t *testing.T) {
	mc, _ := newTestCore(t)
	mc.Act("remember the garden")
	a, err := mc.Recall("garden", 0)
	require.NoError(t, err)
	b, err := mc.Recall("garden", 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.NotEmpty(t, a)
	assert.True(t, strings.Contains(a[0].InputText, "garden"))
}
