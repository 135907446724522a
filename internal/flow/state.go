package flow

import (
	"github.com/tramitefacil/tramitefacil/internal/catalog"
)

// Status is the machine state of one flow instance.
type Status string

const (
	StatusSelecting  Status = "selecting"
	StatusFilling    Status = "filling"
	StatusPaying     Status = "paying"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// State is the sole mutable aggregate of the flow machine. It is owned
// by the Engine and mutated only through the transition function.
type State struct {
	// Step is the coarse UI-facing phase marker, 1..4.
	Step int

	Status Status

	// Tramite is the selection for this flow instance, nil while
	// selecting. Set once per instance, cleared on reset.
	Tramite *catalog.Tramite

	// Answers maps field id to the user-supplied value, in question
	// order. Never contains a key outside Tramite.Fields.
	Answers map[string]string

	// FieldIndex is the cursor into Tramite.Fields. Equals
	// len(Tramite.Fields) exactly when all fields are answered.
	FieldIndex int

	// PromptedIndex is the last field index a prompt was emitted for,
	// -1 when none. Guards against duplicate prompts on re-entry.
	PromptedIndex int

	// Reference identifies the in-flight or completed transaction
	// record. Stable once set, until reset.
	Reference string

	// ChargePending is set while a charge request is outstanding.
	// Field submissions are ignored in that window; cancel is not.
	ChargePending bool

	// Generation increments on every reset. Asynchronous results carry
	// the generation active when they were requested and are dropped
	// on mismatch.
	Generation uint64

	// FallbackNotice is set when the real payment provider failed its
	// health check and the mock was substituted; the user is told once,
	// on entering the paying phase.
	FallbackNotice bool
}

func initialState(generation uint64, fallbackNotice bool) State {
	return State{
		Step:           1,
		Status:         StatusSelecting,
		Answers:        map[string]string{},
		PromptedIndex:  -1,
		Generation:     generation,
		FallbackNotice: fallbackNotice,
	}
}

// FieldCount returns the number of fields the selected trámite requires.
func (s State) FieldCount() int {
	if s.Tramite == nil {
		return 0
	}

	return len(s.Tramite.Fields)
}

// AllFieldsAnswered reports whether the field cursor reached the end.
func (s State) AllFieldsAnswered() bool {
	return s.Tramite != nil && s.FieldIndex == len(s.Tramite.Fields)
}
