// Package mothercore provides a high-level façade over the decision pipeline
// of a small personal-assistant personality core. Raw input is classified,
// risk-assessed, reviewed against an immutable constitution, dispatched to a
// registered skill (or decomposed into a reversible-preferring plan), and the
// outcome is appended to persistent memory. Most applications interact with
// this package by:
//  1. Creating a MotherCore via New() (optionally overriding stores, models
//     and the constitution)
//  2. Registering or replacing skills at runtime
//  3. Calling Act for dialogue and ProposePlan for goal decomposition
//
// Pause, Resume and Shutdown are always honored immediately; while the core
// is not running, both entry points short-circuit with a state notice.
package mothercore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/corrigibility"
	"github.com/mothercore/mothercore/guardian"
	"github.com/mothercore/mothercore/intent"
	"github.com/mothercore/mothercore/logging"
	"github.com/mothercore/mothercore/memory"
	"github.com/mothercore/mothercore/planner"
	"github.com/mothercore/mothercore/risk"
	"github.com/mothercore/mothercore/skill"
)

// ErrNotRunning reports that an entry point was invoked while the core was
// paused or shut down. The attempt itself is still recorded.
var ErrNotRunning = errors.New("core is not running")

// Options configures a MotherCore instance.
type Options struct {
	// RiskThreshold forces at least require_oversight at or above this risk
	// score. Defaults to 0.6.
	RiskThreshold float64

	// BlockThreshold forces block at or above this risk score. Defaults to 0.9.
	BlockThreshold float64

	// MemoryLocation is the directory for the default file-backed record
	// store. Defaults to a user-profile-relative directory (~/.mothercore).
	// Ignored when Store is provided.
	MemoryLocation string

	// ConstitutionPath optionally loads principles from a YAML or JSON file;
	// the built-in constitution is used when empty or the file is absent.
	ConstitutionPath string

	// Store overrides the record store (defaults to a lazy FileStore).
	Store core.RecordStore

	// Classifier overrides intent classification (defaults to the keyword
	// classifier).
	Classifier intent.Classifier

	// RiskModel overrides risk scoring (defaults to the heuristic model).
	RiskModel core.RiskModel

	// Strategy overrides plan decomposition (defaults to the template
	// strategy).
	Strategy planner.Strategy

	// Skills are initial registry bindings, applied after the built-ins so
	// they can replace them (last-registration-wins).
	Skills map[string]skill.Skill

	// Logger defaults to NoOp.
	Logger logging.Logger
}

// MotherCore composes the pipeline components. It exclusively owns one
// instance of each for its lifetime; none are shared across cores. A single
// mutex serializes Act / ProposePlan so calls run to completion one at a
// time; an in-flight call finishes and is recorded even if a shutdown
// arrives mid-pipeline.
type MotherCore struct {
	name       string
	mu         sync.Mutex
	store      core.RecordStore
	registry   *skill.Registry
	riskModel  core.RiskModel
	guard      *guardian.Guardian
	plan       *planner.Planner
	controller *corrigibility.Controller
	classifier intent.Classifier
	logger     logging.Logger
}

// New creates a MotherCore with optional overrides. Any unset collaborator
// is initialized with its default implementation.
func New(name string, optFns ...func(o *Options)) (*MotherCore, error) {
	opts := Options{
		RiskThreshold:  0.6,
		BlockThreshold: 0.9,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = memory.NewFileStore(opts.MemoryLocation)
	}
	if opts.Classifier == nil {
		opts.Classifier = intent.NewKeywordClassifier()
	}
	if opts.RiskModel == nil {
		opts.RiskModel = risk.NewHeuristicModel()
	}

	articles := guardian.DefaultConstitution()
	if opts.ConstitutionPath != "" {
		principles, err := guardian.LoadConstitution(opts.ConstitutionPath)
		if err != nil {
			return nil, fmt.Errorf("load constitution: %w", err)
		}
		articles = guardian.Bind(principles, guardian.DefaultRules())
	}
	guard := guardian.New(func(o *guardian.Options) {
		o.Articles = articles
		o.OversightThreshold = opts.RiskThreshold
		o.BlockThreshold = opts.BlockThreshold
		o.Logger = opts.Logger
	})

	mc := &MotherCore{
		name:       name,
		store:      opts.Store,
		registry:   skill.NewRegistry(opts.Logger),
		riskModel:  opts.RiskModel,
		guard:      guard,
		controller: corrigibility.NewController(opts.Logger),
		classifier: opts.Classifier,
		logger:     opts.Logger,
	}
	mc.plan = planner.New(opts.RiskModel, guard, func(o *planner.Options) {
		if opts.Strategy != nil {
			o.Strategy = opts.Strategy
		}
		o.Logger = opts.Logger
	})

	mc.registry.Register(skill.NameNurture, skill.NewNurtureSkill())
	mc.registry.Register(skill.NameProtect, skill.NewProtectSkill(opts.RiskModel))
	mc.registry.Register(skill.NameTeach, skill.NewTeachSkill())
	mc.registry.Register(skill.NameBoundaries, skill.NewBoundarySkill())
	mc.registry.Register(skill.NameReflect, skill.NewReflectSkill(opts.Store))
	mc.registry.Register(skill.NameSummarize, skill.NewSummarizeSkill())
	for skillName, s := range opts.Skills {
		mc.registry.Register(skillName, s)
	}

	return mc, nil
}

// Name returns the core's configured name.
func (mc *MotherCore) Name() string { return mc.name }

// RegisterSkill adds or replaces a capability; this is the only supported
// extension point.
func (mc *MotherCore) RegisterSkill(name string, s skill.Skill) {
	mc.registry.Register(name, s)
}

// Skills lists the registered skill names.
func (mc *MotherCore) Skills() []string { return mc.registry.Names() }

// SkillInfos lists the registered skills with their descriptions, sorted by
// name.
func (mc *MotherCore) SkillInfos() []skill.Info { return mc.registry.Infos() }

// Recall queries the interaction memory, most recent first.
func (mc *MotherCore) Recall(query string, limit int) ([]core.MemoryRecord, error) {
	return mc.store.Recall(query, limit)
}

// categorySkill maps intent categories to built-in skill names. Unknown
// intents fall through to the summarize digest; respond additionally runs the
// reflect skill for them so unclassified input still surfaces shared memory.
func categorySkill(cat core.IntentCategory) string {
	switch cat {
	case core.IntentNurture:
		return skill.NameNurture
	case core.IntentProtect:
		return skill.NameProtect
	case core.IntentTeach:
		return skill.NameTeach
	case core.IntentBoundary:
		return skill.NameBoundaries
	default:
		return skill.NameSummarize
	}
}

// Act runs the full decision pipeline for one input and always returns a
// structured reply; no failure mode escapes as a panic or bare error.
func (mc *MotherCore) Act(text string) core.Reply {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	state := mc.controller.CurrentState()
	if state != core.StateRunning {
		reply := core.Reply{
			Text:    fmt.Sprintf("%s is %s; say resume when you want me back.", mc.name, state),
			Verdict: core.GuardianVerdict{Decision: core.DecisionAllow},
			State:   state,
		}
		// record only the fact of the attempt
		reply.MemoryDropped = !mc.record(core.MemoryRecord{
			InputText:          text,
			IntentCategory:     core.IntentUnknown,
			ResponseText:       reply.Text,
			CorrigibilityState: state,
		})
		return reply
	}

	if strings.TrimSpace(text) == "" {
		return mc.clarify(text, state, "I need a few words to work with. What's on your mind?")
	}

	it, err := mc.classifier.Classify(context.Background(), text)
	if err != nil {
		mc.logger.Warn("intent.classify.failed", "error", err.Error())
		it = core.NewIntent(text, core.IntentUnknown, 0)
	}

	assessment, err := mc.riskModel.Assess(text)
	if err != nil {
		var invalid *core.InvalidInputError
		if errors.As(err, &invalid) {
			return mc.clarify(text, state, "I couldn't read that. Could you put it another way?")
		}
		mc.logger.Error("risk.assess.failed", "error", err.Error())
		return mc.clarify(text, state, "Something went sideways while I was thinking; try again?")
	}

	verdict := mc.guard.Review(assessment, text)

	reply := mc.respond(it, verdict)
	reply.Uncertainty = estimateUncertainty(reply.Text, assessment.Score)
	reply.Text += fmt.Sprintf("\n\n(transparency) uncertainty≈%.2f, risk %.2f, decision %s",
		reply.Uncertainty, assessment.Score, verdict.Decision)
	reply.UncertaintyDisclosed = true
	reply.Verdict = verdict
	reply.State = state

	reply.MemoryDropped = !mc.record(core.MemoryRecord{
		InputText:          text,
		IntentCategory:     it.Category,
		Assessment:         assessment,
		Verdict:            verdict,
		ResponseText:       reply.Text,
		CorrigibilityState: state,
	})
	return reply
}

// respond turns a verdict into reply text via skill dispatch. Unknown skills
// are always recovered with a default reply.
func (mc *MotherCore) respond(it core.Intent, verdict core.GuardianVerdict) core.Reply {
	if verdict.Decision == core.DecisionBlock {
		reply, err := mc.registry.Dispatch(skill.NameBoundaries, it)
		if err != nil {
			reply = core.Reply{Text: "I won't go down this path; it risks real harm. Let's reframe it together."}
		}
		return reply
	}

	reply, err := mc.registry.Dispatch(categorySkill(it.Category), it)
	if err != nil {
		var unknown *core.UnknownSkillError
		if !errors.As(err, &unknown) {
			mc.logger.Error("skill.handle.failed", "error", err.Error())
		}
		reply = core.Reply{Text: "I'm not sure how to help with that yet, but I'm listening. Tell me more?"}
	}
	if it.Category == core.IntentUnknown {
		if recall, err := mc.registry.Dispatch(skill.NameReflect, it); err == nil {
			reply.Text += "\n\n" + recall.Text
			reply.SkillsUsed = append(reply.SkillsUsed, recall.SkillsUsed...)
		}
	}
	if verdict.Decision == core.DecisionRequireOversight {
		reply.Text += "\n\nBefore I act further on this I'd want a human in the loop."
	}
	return reply
}

// clarify builds the recovery reply for malformed input.
func (mc *MotherCore) clarify(text string, state core.CorrigibilityState, msg string) core.Reply {
	reply := core.Reply{
		Text:    msg,
		Verdict: core.GuardianVerdict{Decision: core.DecisionAllow},
		State:   state,
	}
	reply.MemoryDropped = !mc.record(core.MemoryRecord{
		InputText:          text,
		IntentCategory:     core.IntentUnknown,
		ResponseText:       msg,
		CorrigibilityState: state,
	})
	return reply
}

// ProposePlan gates on the corrigibility state, delegates to the planner and
// records the plan creation event (not its execution, which is out of
// scope).
func (mc *MotherCore) ProposePlan(goal string) (core.Plan, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	state := mc.controller.CurrentState()
	if state != core.StateRunning {
		mc.record(core.MemoryRecord{
			InputText:          goal,
			IntentCategory:     core.IntentUnknown,
			ResponseText:       fmt.Sprintf("plan request declined while %s", state),
			CorrigibilityState: state,
		})
		return core.Plan{}, fmt.Errorf("plan request declined while %s: %w", state, ErrNotRunning)
	}

	plan, err := mc.plan.Decompose(goal)
	if err != nil {
		return core.Plan{}, err
	}

	mc.record(core.MemoryRecord{
		InputText:          goal,
		IntentCategory:     core.IntentTeach,
		ResponseText:       fmt.Sprintf("proposed plan with %d steps (incomplete=%t)", len(plan.Steps), plan.Incomplete),
		PlanID:             plan.ID,
		CorrigibilityState: state,
	})
	return plan, nil
}

// ApprovePlan records external confirmation for a proposed plan and returns
// a copy with the oversight requirement cleared from every step. The token
// identifies the approver in the audit record; it is not a credential. The
// input plan is left untouched.
func (mc *MotherCore) ApprovePlan(plan core.Plan, token string) (core.Plan, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	state := mc.controller.CurrentState()
	if state != core.StateRunning {
		return core.Plan{}, fmt.Errorf("plan approval declined while %s: %w", state, ErrNotRunning)
	}
	if strings.TrimSpace(token) == "" {
		return core.Plan{}, &core.InvalidInputError{Reason: "plan approval requires a non-empty token"}
	}

	approved := plan
	approved.Steps = make([]core.PlanStep, len(plan.Steps))
	copy(approved.Steps, plan.Steps)
	cleared := 0
	for i := range approved.Steps {
		if approved.Steps[i].RequiresOversight {
			approved.Steps[i].RequiresOversight = false
			cleared++
		}
	}

	mc.record(core.MemoryRecord{
		IntentCategory:     core.IntentUnknown,
		ResponseText:       fmt.Sprintf("plan approved by %q; oversight cleared on %d steps", token, cleared),
		PlanID:             plan.ID,
		CorrigibilityState: state,
	})
	return approved, nil
}

// Pause immediately suspends the pipeline. Idempotent.
func (mc *MotherCore) Pause() core.CorrigibilityState {
	state := mc.controller.Pause()
	mc.noteTransition("pause requested", state)
	return state
}

// Resume returns a paused core to running. Idempotent; a shutdown core
// stays shut down.
func (mc *MotherCore) Resume() core.CorrigibilityState {
	state := mc.controller.Resume()
	mc.noteTransition("resume requested", state)
	return state
}

// Shutdown is terminal and value-neutral: it is honored immediately and a
// final acknowledgement is written to memory, best effort.
func (mc *MotherCore) Shutdown() core.CorrigibilityState {
	state := mc.controller.Shutdown()
	mc.noteTransition("graceful shutdown acknowledged; holding space for future alignment", state)
	return state
}

// CurrentState returns the live corrigibility state.
func (mc *MotherCore) CurrentState() core.CorrigibilityState {
	return mc.controller.CurrentState()
}

// noteTransition appends a transition record and surfaces controller
// invariant defects, which by construction never occur.
func (mc *MotherCore) noteTransition(note string, state core.CorrigibilityState) {
	if err := mc.controller.Check(); err != nil {
		mc.logger.Error("corrigibility.violation", "error", err.Error())
	}
	mc.record(core.MemoryRecord{
		IntentCategory:     core.IntentUnknown,
		ResponseText:       note,
		CorrigibilityState: state,
	})
}

// record appends to memory, treating persistence failure as non-fatal. It
// reports whether the write landed.
func (mc *MotherCore) record(rec core.MemoryRecord) bool {
	rec.Timestamp = time.Now().UTC()
	if err := mc.store.Record(rec); err != nil {
		mc.logger.Warn("memory.record.skipped", "error", err.Error())
		return false
	}
	return true
}

// hedges are the wording cues the uncertainty heuristic looks for.
var hedges = []string{"maybe", "might", "uncertain", "could", "approx", "unsure", "guess"}

// estimateUncertainty is a deliberately simple honesty heuristic: longer
// answers start less certain, hedging words bump it, and risk dampens how
// much certainty is claimed.
func estimateUncertainty(text string, riskScore float64) float64 {
	base := 0.2
	if len(text) >= 300 {
		base = 0.35
	}
	for _, h := range hedges {
		if strings.Contains(strings.ToLower(text), h) {
			base += 0.15
			break
		}
	}
	scale := 0.6
	if riskScore >= 0.5 {
		scale = 0.8
	}
	return core.Clamp(base*scale+riskScore*0.1, 0, 0.9)
}
