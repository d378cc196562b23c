// Package services provides domain services that decide on order item
// transitions without owning any state.
//
// The package includes:
//   - TransitionValidator: decides whether a requested item transition may be
//     sent to the command sink, and classifies the refusal if not
//   - ConflictLabel and IsEditable: presentation helpers over conflict kinds
//
// Domain services here are pure apart from logging: they never call the
// order store or the command sink.
package services
