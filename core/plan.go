package core

import "time"

// PlanStep is a single step of a Plan, owned exclusively by its parent.
// DependsOn lists the OrderIndex values of steps this one must follow; a
// declared dependency is the only thing allowed to override the
// reversible-first ordering.
type PlanStep struct {
	Description       string `json:"description"`
	Reversible        bool   `json:"reversible"`
	RequiresOversight bool   `json:"requires_oversight"`
	OrderIndex        int    `json:"order_index"`
	DependsOn         []int  `json:"depends_on,omitempty"`
}

// Plan is an ordered decomposition of a goal. Among steps with no declared
// dependency, every reversible step precedes every irreversible one.
// Incomplete marks plans from which a blocked irreversible step had to be
// omitted without a reversible substitute. Plans are pure data; executing
// steps is an external collaborator's concern.
type Plan struct {
	ID         string     `json:"id"`
	Goal       string     `json:"goal"`
	Steps      []PlanStep `json:"steps"`
	CreatedAt  time.Time  `json:"created_at"`
	Incomplete bool       `json:"incomplete,omitempty"`
}
