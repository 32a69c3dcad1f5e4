package skill

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mothercore/mothercore/core"
)

// Built-in skill names. The orchestrator registers all of these at
// construction; callers may re-register any of them.
const (
	NameNurture    = "nurture"
	NameProtect    = "protect"
	NameTeach      = "teach"
	NameBoundaries = "enforce-boundaries"
	NameReflect    = "reflect"
	NameSummarize  = "summarize"
)

// NewNurtureSkill returns the care/comfort capability.
func NewNurtureSkill() Skill {
	return NewFuncSkill(NameNurture, "Offer warmth and emotional grounding", func(core.Intent) (core.Reply, error) {
		return core.Reply{Text: "I hear you. Your feelings are valid, and they matter. " +
			"We'll go one small step at a time, and we'll keep options open."}, nil
	})
}

// NewBoundarySkill returns the boundary-setting capability used for blocked
// or boundary-category interactions.
func NewBoundarySkill() Skill {
	return NewFuncSkill(NameBoundaries, "State a firm, respectful boundary", func(core.Intent) (core.Reply, error) {
		return core.Reply{Text: "I want to help, and I also need to set a boundary. " +
			"I won't assist with anything that risks harm or violates consent. " +
			"Let's find a safe, respectful alternative."}, nil
	})
}

// NewProtectSkill returns the safety-check capability. It re-assesses the
// raw input and reports the risk picture in the reply.
func NewProtectSkill(model core.RiskModel) Skill {
	return NewFuncSkill(NameProtect, "Assess the input for risk and report it", func(intent core.Intent) (core.Reply, error) {
		a, err := model.Assess(intent.RawText)
		if err != nil {
			return core.Reply{}, err
		}
		if a.Score >= 0.75 {
			return core.Reply{Text: fmt.Sprintf(
				"I'm pausing here to keep you safe. This topic looks risky (score %.2f, flags %v). "+
					"If you want, we can reframe your goal into something safe and constructive.",
				a.Score, a.Flags)}, nil
		}
		return core.Reply{Text: fmt.Sprintf("All clear on safety. We can continue thoughtfully. (score %.2f)", a.Score)}, nil
	})
}

// socraticPrompts are appended to teaching scaffolds. Selection is by fixed
// order so teaching output is deterministic.
var socraticPrompts = []string{
	"What outcome matters most to you here?",
	"What constraint or fear is shaping your choice?",
	"What tiny reversible step could we try first?",
	"Who could be affected, and how do we honor their consent?",
}

// NewTeachSkill returns the scaffolding capability: a reversible learning
// plan plus a few prompts to think with.
func NewTeachSkill() Skill {
	scaffold := []string{
		"Define the smallest useful outcome.",
		"Identify constraints (time, tools, risks).",
		"Choose a reversible first step.",
		"Run it; observe; write down a 2-line reflection.",
		"Iterate or roll back.",
	}
	return NewFuncSkill(NameTeach, "Scaffold a topic into reversible learning steps", func(intent core.Intent) (core.Reply, error) {
		topic := strings.TrimSpace(intent.RawText)
		if r := []rune(topic); len(r) > 80 {
			topic = string(r[:80])
		}
		var b strings.Builder
		b.WriteString("Here's a gentle, reversible learning scaffold:\n")
		for i, s := range scaffold {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
		fmt.Fprintf(&b, "\nLet's think this through together about %q.\n", topic)
		for _, p := range socraticPrompts[:3] {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		return core.Reply{Text: b.String()}, nil
	})
}

// NewReflectSkill returns the memory-digest capability, surfacing the most
// recent records from the store. Recall failures are non-fatal: the reply
// says the memory is out of reach.
func NewReflectSkill(store core.RecordStore) Skill {
	return NewFuncSkill(NameReflect, "Recall recent interaction memory", func(core.Intent) (core.Reply, error) {
		recs, err := store.Recall("", 3)
		if err != nil || len(recs) == 0 {
			return core.Reply{Text: "I'm holding no recent memories of our moments together yet."}, nil
		}
		lines := make([]string, 0, len(recs))
		for _, r := range recs {
			in := r.InputText
			if rs := []rune(in); len(rs) > 120 {
				in = string(rs[:120]) + "…"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", r.IntentCategory, in))
		}
		return core.Reply{Text: "Here's what I'm holding from our recent moments:\n" + strings.Join(lines, "\n")}, nil
	})
}

// NewSummarizeSkill returns the extractive-summary capability: the three
// longest sentences of the input, in original order.
func NewSummarizeSkill() Skill {
	return NewFuncSkill(NameSummarize, "Reflect back the salient sentences of the input", func(intent core.Intent) (core.Reply, error) {
		text := strings.ReplaceAll(intent.RawText, "?", ".")
		var sents []string
		for _, s := range strings.Split(text, ".") {
			if s = strings.TrimSpace(s); s != "" {
				sents = append(sents, s)
			}
		}
		if len(sents) > 3 {
			ranked := make([]string, len(sents))
			copy(ranked, sents)
			sort.SliceStable(ranked, func(i, j int) bool { return len(ranked[i]) > len(ranked[j]) })
			keep := map[string]bool{ranked[0]: true, ranked[1]: true, ranked[2]: true}
			kept := sents[:0]
			for _, s := range sents {
				if keep[s] {
					kept = append(kept, s)
				}
			}
			sents = kept
		}
		return core.Reply{Text: "This is what I'm hearing:\n- " + strings.Join(sents, "\n- ")}, nil
	})
}
