// Package store holds the single source of truth for the builder wizard.
//
// The store owns a WizardState record mutated only through Update, notifies
// subscribers after every mutation, and provides a cascading reset so that
// changing an upstream answer (network, contract, function) discards the
// now-stale downstream answers instead of leaving inconsistent state.
//
// One Store instance is constructed at startup by the composition root and
// passed to whichever component needs it; there is no package-level global.
package store

import (
	"fmt"
	"sync"

	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

// WizardState is the mutable record backing the step wizard. Pointer fields
// are treated as read-only by consumers; replacing them goes through Update.
type WizardState struct {
	SelectedNetworkID string
	SelectedEcosystem schema.Ecosystem
	CurrentStepIndex  int

	ContractSchema  *schema.ContractSchema
	ContractAddress string

	SelectedFunction string

	FormConfig         *schema.FormConfig
	ExecutionStepValid bool
}

// Step identifies one wizard step in order.
type Step int

// Wizard steps. Each step's data is only valid if every earlier step is
// individually valid.
const (
	StepNetwork Step = iota
	StepContract
	StepFunction
	StepFields
	StepExecution
	stepCount
)

// ResetTier names the level a cascading reset starts from. Each tier's
// clearing is a strict superset of the tier below it.
type ResetTier int

// Reset tiers.
const (
	ResetFromNetwork ResetTier = iota
	ResetFromContract
	ResetFromFunction
)

// Store is the wizard state container. All methods are safe for concurrent
// use; mutations are serialized so no listener ever observes a partially
// applied update.
type Store struct {
	mu        sync.Mutex
	state     WizardState
	listeners map[int]func()
	nextID    int
	started   bool // set once Subscribe or Update has been called
}

// New creates an empty store.
func New() *Store {
	return &Store{listeners: make(map[int]func())}
}

// GetState returns a snapshot of the current state. The snapshot is a shallow
// copy: schema and form-config pointers are shared and must not be mutated.
func (s *Store) GetState() WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInitialState seeds the store before any subscriber or update exists.
// It does not notify. Calling it after the store is in use is a programming
// error and is rejected.
func (s *Store) SetInitialState(state WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("store already in use, initial state must be seeded first")
	}
	s.state = state
	return nil
}

// Subscribe registers a listener invoked after every state change and returns
// its deregistration function. Listeners receive no arguments and re-read
// state through GetState. No ordering between listeners is guaranteed.
//
// The listener set is snapshotted before each notification pass, so a
// listener that unsubscribes during notification may still be invoked once
// for the in-progress cycle; it will not be invoked afterwards.
func (s *Store) Subscribe(listener func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Update applies a mutation to a copy of the current state, assigns the
// result, and notifies every subscriber. The mutation sees a snapshot and
// must not retain the pointer past the call.
func (s *Store) Update(mutate func(*WizardState)) {
	_ = s.apply(func(st *WizardState) error {
		mutate(st)
		return nil
	})
}

// apply runs a fallible mutation under the lock. A returned error aborts the
// update: state is unchanged and no listener is notified.
func (s *Store) apply(mutate func(*WizardState) error) error {
	s.mu.Lock()
	s.started = true
	next := s.state
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l()
	}
	return nil
}

// snapshotListeners copies the listener set. Caller must hold mu.
func (s *Store) snapshotListeners() []func() {
	out := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

// SelectFunction sets the selected function after validating it against the
// currently loaded contract schema, then clears downstream form state. A
// function id absent from the schema fails fast instead of corrupting state.
// Validation and write happen in one atomic update, so a concurrent schema
// swap cannot slip in between the check and the assignment.
func (s *Store) SelectFunction(id string) error {
	return s.apply(func(st *WizardState) error {
		if st.ContractSchema == nil {
			return errdefs.ConfigurationInvalid("no contract schema loaded")
		}
		if !st.ContractSchema.HasFunction(id) {
			return errdefs.ConfigurationInvalid("function %q not found in contract schema", id)
		}
		st.SelectedFunction = id
		clearFromFunction(st)
		return nil
	})
}

// ResetDownstream clears every answer below the given tier and notifies
// subscribers once. Resetting from the network tier also performs the
// contract and function tier clearing.
func (s *Store) ResetDownstream(from ResetTier) {
	s.Update(func(st *WizardState) {
		switch from {
		case ResetFromNetwork:
			st.ContractSchema = nil
			st.ContractAddress = ""
			fallthrough
		case ResetFromContract:
			st.SelectedFunction = ""
			fallthrough
		case ResetFromFunction:
			clearFromFunction(st)
		}
	})
}

func clearFromFunction(st *WizardState) {
	st.FormConfig = nil
	st.ExecutionStepValid = false
}

// StepValid reports whether the given step currently holds valid data.
func (s *Store) StepValid(step Step) bool {
	st := s.GetState()
	switch step {
	case StepNetwork:
		return st.SelectedNetworkID != "" && st.SelectedEcosystem.Valid()
	case StepContract:
		return st.ContractSchema != nil
	case StepFunction:
		return st.SelectedFunction != "" &&
			st.ContractSchema != nil && st.ContractSchema.HasFunction(st.SelectedFunction)
	case StepFields:
		return st.FormConfig != nil
	case StepExecution:
		return st.ExecutionStepValid
	}
	return false
}

// CanAdvanceTo reports whether the wizard may move to the given step: every
// earlier step must be valid (monotonic validity chain).
func (s *Store) CanAdvanceTo(step Step) bool {
	if step < 0 || step >= stepCount {
		return false
	}
	for prev := StepNetwork; prev < step; prev++ {
		if !s.StepValid(prev) {
			return false
		}
	}
	return true
}
