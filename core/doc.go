// Package core provides the foundational domain types and interfaces used by
// MotherCore. It defines the core abstractions for:
//
//   - Intents (classified user input with confidence)
//   - Risk assessments (deterministic score + categorical flags)
//   - Principles and guardian verdicts (constitutional review outcomes)
//   - Plans and plan steps (reversible-first goal decomposition)
//   - Memory records (append-only interaction audit trail)
//   - Corrigibility states (running / paused / shutdown)
//
// The package intentionally keeps implementation concerns (persistence,
// heuristics, orchestration) out of scope, exposing small interfaces so that
// risk models, record stores and classifiers can be swapped by callers.
package core
