// Package stepstore holds the configured steps in two collections: steps
// anchored to a stable id, grouped per id, and one ordered list of pattern
// steps. Every mutation is handed to a Persister right away.
package stepstore

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/steps"
)

// Snapshot is a point in time copy of both collections
type Snapshot struct {
	// IDs lists the stable ids in ByID, sorted
	IDs      []string
	ByID     map[string][]*steps.Step
	Patterns []*steps.Step
}

// Persister stores a snapshot after every mutation
type Persister interface {
	Persist(snap Snapshot) error
}

// PersisterFunc adapts a function to Persister
type PersisterFunc func(snap Snapshot) error

// Persist calls f
func (f PersisterFunc) Persist(snap Snapshot) error { return f(snap) }

// Store is the step registry
type Store struct {
	mu        sync.RWMutex
	byID      map[string][]*steps.Step
	patterns  []*steps.Step
	persister Persister
	logger    zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithPersister flushes every mutation through p
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		byID:   make(map[string][]*steps.Step),
		logger: logging.GetLogger("stepstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPersister replaces the persister
func (s *Store) SetPersister(p Persister) {
	s.mu.Lock()
	s.persister = p
	s.mu.Unlock()
}

// Load replaces the contents without persisting. Steps land in the
// collection their target calls for, whatever collection they came from.
func (s *Store) Load(byID map[string][]*steps.Step, patterns []*steps.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string][]*steps.Step)
	s.patterns = nil
	for _, id := range sortedKeys(byID) {
		for _, step := range byID[id] {
			s.insert(step)
		}
	}
	for _, step := range patterns {
		s.insert(step)
	}
}

// Add validates step and appends it to its collection. A step whose target
// declares no types is kept but disabled, and Add returns the CONFIG_INVALID
// error from FinishEdit once the step is stored.
func (s *Store) Add(step *steps.Step) error {
	if step == nil || step.Params == nil {
		return errors.New(errors.ErrInvalidInput, "cannot add an empty step")
	}

	s.mu.Lock()
	if s.findLocked(step.ID) != nil {
		s.mu.Unlock()
		return errors.Newf(errors.ErrAlreadyExists, "step %s is already registered", step.ID).
			WithDetail("step", step.ID)
	}
	invalid := step.FinishEdit(s.logger)
	s.insert(step)
	s.mu.Unlock()

	s.logger.Info().
		Str("step", step.ID).
		Str("kind", string(step.Kind())).
		Str("target", step.Target.String()).
		Msg("Added step")
	if err := s.persist(); err != nil {
		return err
	}
	return invalid
}

// Remove deletes step from the collection its target points at. A step that
// is not there is reported as an INTEGRITY error and nothing changes.
func (s *Store) Remove(step *steps.Step) error {
	if step == nil {
		return errors.New(errors.ErrInvalidInput, "cannot remove an empty step")
	}

	s.mu.Lock()
	removed := s.removeLocked(step)
	s.mu.Unlock()

	if !removed {
		err := errors.Newf(errors.ErrIntegrity, "step %s not found in its collection", step.ID).
			WithDetail("step", step.ID).
			WithDetail("target", step.Target.String())
		s.logger.Warn().Str("step", step.ID).Str("target", step.Target.String()).Msg("Cannot remove step, it is not registered")
		return err
	}

	s.logger.Info().Str("step", step.ID).Msg("Removed step")
	return s.persist()
}

// Update re-validates an edited step and moves it to the collection its
// target now calls for, keeping its place when the collection is unchanged.
// Like Add, a step left without types is stored disabled and reported with
// CONFIG_INVALID.
func (s *Store) Update(step *steps.Step) error {
	if step == nil {
		return errors.New(errors.ErrInvalidInput, "cannot update an empty step")
	}

	s.mu.Lock()
	current := s.findLocked(step.ID)
	if current == nil {
		s.mu.Unlock()
		return errors.Newf(errors.ErrNotFound, "step %s is not registered", step.ID)
	}
	invalid := step.FinishEdit(s.logger)
	if !s.replaceInPlace(current, step) {
		s.removeByID(step.ID)
		s.insert(step)
	}
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		return err
	}
	return invalid
}

// Find returns the registered step with id
func (s *Store) Find(id string) (*steps.Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	step := s.findLocked(id)
	return step, step != nil
}

// IDSteps returns the steps anchored to id in insertion order
func (s *Store) IDSteps(id string) []*steps.Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*steps.Step(nil), s.byID[id]...)
}

// PatternSteps returns the pattern steps in insertion order
func (s *Store) PatternSteps() []*steps.Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*steps.Step(nil), s.patterns...)
}

// IDs returns every stable id with steps, sorted
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.byID)
}

// Len counts all steps
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.patterns)
	for _, list := range s.byID {
		n += len(list)
	}
	return n
}

// Snapshot copies both collections
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Clear removes every step
func (s *Store) Clear() error {
	s.mu.Lock()
	s.byID = make(map[string][]*steps.Step)
	s.patterns = nil
	s.mu.Unlock()

	s.logger.Warn().Msg("Removed all steps")
	return s.persist()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		IDs:      sortedKeys(s.byID),
		ByID:     make(map[string][]*steps.Step, len(s.byID)),
		Patterns: append([]*steps.Step(nil), s.patterns...),
	}
	for id, list := range s.byID {
		snap.ByID[id] = append([]*steps.Step(nil), list...)
	}
	return snap
}

func (s *Store) persist() error {
	s.mu.RLock()
	p := s.persister
	var snap Snapshot
	if p != nil {
		snap = s.snapshotLocked()
	}
	s.mu.RUnlock()

	if p == nil {
		return nil
	}
	if err := p.Persist(snap); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist steps")
		return errors.Wrap(err, errors.ErrStorageWrite, "persist steps")
	}
	return nil
}

func (s *Store) insert(step *steps.Step) {
	if step.Target.IsIDTarget() {
		id := step.Target.StableID
		s.byID[id] = append(s.byID[id], step)
		return
	}
	s.patterns = append(s.patterns, step)
}

func (s *Store) findLocked(id string) *steps.Step {
	for _, step := range s.patterns {
		if step.ID == id {
			return step
		}
	}
	for _, list := range s.byID {
		for _, step := range list {
			if step.ID == id {
				return step
			}
		}
	}
	return nil
}

// removeLocked looks for step only in the collection its target names
func (s *Store) removeLocked(step *steps.Step) bool {
	if step.Target.IsIDTarget() {
		id := step.Target.StableID
		list := s.byID[id]
		for i, candidate := range list {
			if candidate.ID == step.ID {
				list = append(list[:i:i], list[i+1:]...)
				if len(list) == 0 {
					delete(s.byID, id)
				} else {
					s.byID[id] = list
				}
				return true
			}
		}
		return false
	}

	for i, candidate := range s.patterns {
		if candidate.ID == step.ID {
			s.patterns = append(s.patterns[:i:i], s.patterns[i+1:]...)
			return true
		}
	}
	return false
}

// removeByID drops a step from whichever collection holds it
func (s *Store) removeByID(id string) {
	for i, candidate := range s.patterns {
		if candidate.ID == id {
			s.patterns = append(s.patterns[:i:i], s.patterns[i+1:]...)
			return
		}
	}
	for key, list := range s.byID {
		for i, candidate := range list {
			if candidate.ID == id {
				list = append(list[:i:i], list[i+1:]...)
				if len(list) == 0 {
					delete(s.byID, key)
				} else {
					s.byID[key] = list
				}
				return
			}
		}
	}
}

// replaceInPlace swaps current for step when both belong in the same slot
func (s *Store) replaceInPlace(current, step *steps.Step) bool {
	if current.Target.IsIDTarget() != step.Target.IsIDTarget() {
		return false
	}
	if step.Target.IsIDTarget() {
		if current.Target.StableID != step.Target.StableID {
			return false
		}
		list := s.byID[step.Target.StableID]
		for i, candidate := range list {
			if candidate.ID == step.ID {
				list[i] = step
				return true
			}
		}
		return false
	}
	for i, candidate := range s.patterns {
		if candidate.ID == step.ID {
			s.patterns[i] = step
			return true
		}
	}
	return false
}

func sortedKeys(m map[string][]*steps.Step) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
