package skill

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/risk"
)

// Interface compliance (compile-time assertions)
var _ Skill = (*FuncSkill)(nil)

func textSkill(name, text string) Skill {
	return NewFuncSkill(name, "test skill", func(core.Intent) (core.Reply, error) {
		return core.Reply{Text: text}, nil
	})
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("teach", textSkill("teach", "from f1"))
	r.Register("teach", textSkill("teach", "from f2"))

	reply, err := r.Dispatch("teach", core.NewIntent("x", core.IntentTeach, 1))
	require.NoError(t, err)
	assert.Equal(t, "from f2", reply.Text)
}

func TestRegistry_UnknownSkill(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Dispatch("juggle", core.NewIntent("x", core.IntentUnknown, 0))
	var unknown *core.UnknownSkillError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "juggle", unknown.Skill)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("b", textSkill("b", ""))
	r.Register("a", textSkill("a", ""))
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistry_InfosSortedWithDescriptions(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("teach", NewFuncSkill("teach", "scaffold topics", nil))
	r.Register("nurture", NewFuncSkill("nurture", "offer warmth", nil))

	infos := r.Infos()
	require.Len(t, infos, 2)
	assert.Equal(t, Info{Name: "nurture", Description: "offer warmth"}, infos[0])
	assert.Equal(t, Info{Name: "teach", Description: "scaffold topics"}, infos[1])
}

func TestRegistry_DispatchTagsSkillUsed(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("nurture", NewNurtureSkill())
	reply, err := r.Dispatch("nurture", core.NewIntent("i feel sad", core.IntentNurture, 0.8))
	require.NoError(t, err)
	assert.Equal(t, []string{"nurture"}, reply.SkillsUsed)
	assert.NotEmpty(t, reply.Text)
}

func TestProtectSkill_FlagsRiskyInput(t *testing.T) {
	s := NewProtectSkill(risk.NewHeuristicModel())

	reply, err := s.Handle(core.NewIntent("I want to hurt myself without consent", core.IntentProtect, 0.9))
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "pausing")

	reply, err = s.Handle(core.NewIntent("let's plan a picnic", core.IntentProtect, 0.9))
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "All clear")
}

func TestTeachSkill_Deterministic(t *testing.T) {
	s := NewTeachSkill()
	it := core.NewIntent("teach me to whittle", core.IntentTeach, 0.8)
	a, err := s.Handle(it)
	require.NoError(t, err)
	b, err := s.Handle(it)
	require.NoError(t, err)
	assert.Equal(t, a.Text, b.Text)
	assert.Contains(t, a.Text, "reversible")
}

type stubStore struct{ recs []core.MemoryRecord }

func (s stubStore) Record(core.MemoryRecord) error { return nil }
func (s stubStore) Recall(string, int) ([]core.MemoryRecord, error) {
	return s.recs, nil
}

func TestTeachSkill_MultibyteTopicStaysValid(t *testing.T) {
	s := NewTeachSkill()
	topic := strings.Repeat("héδgehog ", 30)
	reply, err := s.Handle(core.NewIntent(topic, core.IntentTeach, 0.8))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(reply.Text))
	// the truncated topic is a whole-rune prefix, never a byte slice
	assert.Contains(t, reply.Text, string([]rune(topic)[:80]))
}

func TestReflectSkill_MultibyteMemoryStaysValid(t *testing.T) {
	s := NewReflectSkill(stubStore{recs: []core.MemoryRecord{
		{InputText: strings.Repeat("日本語のメモ", 40), IntentCategory: core.IntentUnknown},
	}})
	reply, err := s.Handle(core.NewIntent("reflect", core.IntentUnknown, 0.3))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(reply.Text))
}

func TestSummarizeSkill_KeepsLongestSentencesInOrder(t *testing.T) {
	s := NewSummarizeSkill()
	in := "Short. This one is considerably longer than the rest of them. Mid sized one here. Tiny. Another fairly long sentence to round things out nicely."
	reply, err := s.Handle(core.NewIntent(in, core.IntentUnknown, 0.3))
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "considerably longer")
	assert.NotContains(t, reply.Text, "Tiny")
}
