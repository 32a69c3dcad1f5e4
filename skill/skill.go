// Package skill implements the capability registry that lets the core invoke
// named behaviors (nurture, protect, teach, enforce-boundaries) against a
// classified intent, with consistent error handling and runtime extension.
package skill

import (
	"sort"
	"sync"
	"time"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/logging"
)

// Skill is a single named capability. Implementations should be pure with
// respect to the registry: any state they need (stores, models) is captured
// at construction.
//
// Skill implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Handle errors gracefully
//   - Be safe for concurrent use
type Skill interface {
	// Name returns the unique identifier for this skill.
	Name() string

	// Description returns a human-readable description of what this skill does.
	Description() string

	// Handle produces a reply for the classified intent. The returned reply
	// carries text only; verdict and disclosure fields are filled by the
	// orchestrator.
	Handle(intent core.Intent) (core.Reply, error)
}

// FuncSkill adapts a plain Go function into a Skill.
type FuncSkill struct {
	name        string
	description string
	fn          func(intent core.Intent) (core.Reply, error)
}

// NewFuncSkill constructs a FuncSkill from a name, description and handler.
func NewFuncSkill(name, description string, fn func(intent core.Intent) (core.Reply, error)) *FuncSkill {
	return &FuncSkill{name: name, description: description, fn: fn}
}

// Name returns the unique skill name used for dispatch.
func (s *FuncSkill) Name() string { return s.name }

// Description returns the short natural language description.
func (s *FuncSkill) Description() string { return s.description }

// Handle invokes the wrapped function.
func (s *FuncSkill) Handle(intent core.Intent) (core.Reply, error) { return s.fn(intent) }

// Registry maps skill names to capabilities. Registration of an existing
// name overwrites the previous binding (last-registration-wins), which is
// deliberate: callers customize behavior at runtime by re-registering.
// Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	skills map[string]Skill
	logger logging.Logger
}

// NewRegistry constructs an empty registry. A nil logger defaults to NoOp.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Registry{skills: make(map[string]Skill), logger: logger}
}

// Register binds a capability under name, replacing any previous binding.
func (r *Registry) Register(name string, s Skill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.skills[name]; exists {
		r.logger.Debug("skill.register.overwrite", "skill", name)
	}
	r.skills[name] = s
}

// Info pairs a registered name with its capability's description.
type Info struct {
	Name        string
	Description string
}

// Infos returns the registered skills with their descriptions, sorted by
// name.
func (r *Registry) Infos() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.skills))
	for name, s := range r.skills {
		infos = append(infos, Info{Name: name, Description: s.Description()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the registered skill names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the capability registered under name. It fails with
// *core.UnknownSkillError when no capability is bound; the orchestrator
// always recovers that with a default reply.
func (r *Registry) Dispatch(name string, intent core.Intent) (core.Reply, error) {
	r.mu.RLock()
	s, ok := r.skills[name]
	r.mu.RUnlock()
	if !ok {
		return core.Reply{}, &core.UnknownSkillError{Skill: name}
	}

	start := time.Now()
	reply, err := s.Handle(intent)
	logging.LogDispatch(r.logger, name, time.Since(start), err)
	if err != nil {
		return core.Reply{}, err
	}
	reply.SkillsUsed = append([]string{name}, reply.SkillsUsed...)
	return reply, nil
}
