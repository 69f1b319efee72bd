package draft

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/model"
)

// Persister is the best-effort snapshot gateway. Implementations log their own
// failures; the session never sees an error from them.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot)
	Load(ctx context.Context) *Snapshot
	Clear(ctx context.Context)
}

// NopPersister keeps nothing
type NopPersister struct{}

func (NopPersister) Save(ctx context.Context, snapshot Snapshot) {}
func (NopPersister) Load(ctx context.Context) *Snapshot          { return nil }
func (NopPersister) Clear(ctx context.Context)                   {}

// Session owns the single active draft and funnels every change through Reduce.
// It is not safe for concurrent use.
type Session struct {
	state     *State
	persister Persister
	logger    *zap.Logger
	now       func() time.Time
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithClock overrides the time source used for StartedAt and SavedAt
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session with no active draft
func NewSession(persister Persister, logger *zap.Logger, opts ...SessionOption) *Session {
	if persister == nil {
		persister = NopPersister{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current draft, or nil when there is none
func (s *Session) State() *State {
	return s.state
}

// ActiveSuite returns the suite whose turn it is
func (s *Session) ActiveSuite() (model.Suite, bool) {
	return ActiveSuite(s.state)
}

// Dispatch applies an action and saves the result when anything changed
func (s *Session) Dispatch(ctx context.Context, action Action) *State {
	prev := s.state
	next := s.apply(action)

	// Reset always clears storage, even a snapshot that failed to load
	_, isReset := action.(Reset)
	if next == prev && !isReset {
		return next
	}

	s.persist(ctx, next)
	return next
}

// Resume restores the last saved draft, if the gateway has one.
// The restored state is not written back.
func (s *Session) Resume(ctx context.Context) bool {
	snapshot := s.persister.Load(ctx)
	if snapshot == nil || snapshot.State == nil {
		s.logger.Debug("No saved draft to resume")
		return false
	}

	s.logger.Info("Resuming saved draft",
		zap.Time("saved_at", snapshot.SavedAt),
		zap.Int("dancers", len(snapshot.State.Dancers)))

	s.apply(Hydrate{State: snapshot.State})
	return s.state != nil
}

// Initialize starts a new draft from the imported roster
func (s *Session) Initialize(ctx context.Context, dancers []model.Dancer) *State {
	return s.Dispatch(ctx, Initialize{Dancers: dancers, StartedAt: s.now().UTC()})
}

// PickForActiveSuite assigns dancers to the suite on the clock and passes the turn.
// When the pointer rests on a finalized suite it is first moved to the open suite,
// so the picks land where ActiveSuite said they would.
func (s *Session) PickForActiveSuite(ctx context.Context, dancerIDs []string) (model.Suite, bool) {
	suite, ok := s.ActiveSuite()
	if !ok {
		return "", false
	}

	if s.state.SuiteOrder[s.state.TurnIndex] != suite {
		s.Dispatch(ctx, AdvanceTurn{})
	}

	s.Dispatch(ctx, AssignToSuite{Suite: suite, DancerIDs: dancerIDs})
	s.Dispatch(ctx, AdvanceTurn{})

	return suite, true
}

// apply reduces without persisting
func (s *Session) apply(action Action) *State {
	prev := s.state
	next := Reduce(prev, action)

	if next == prev {
		s.logger.Debug("Draft action had no effect", zap.String("action", action.Name()))
		return next
	}

	s.state = next
	s.logTransition(action, next)

	if _, ok := action.(Hydrate); ok && next != nil {
		if err := next.CheckPartition(); err != nil {
			s.logger.Warn("Restored draft is inconsistent", zap.Error(err))
		}
	}

	return next
}

func (s *Session) persist(ctx context.Context, state *State) {
	if state == nil {
		s.persister.Clear(ctx)
		return
	}
	s.persister.Save(ctx, Snapshot{State: state, SavedAt: s.now().UTC()})
}

func (s *Session) logTransition(action Action, state *State) {
	if state == nil {
		s.logger.Info("Draft cleared", zap.String("action", action.Name()))
		return
	}

	fields := []zap.Field{
		zap.String("action", action.Name()),
		zap.Int("unassigned", len(state.UnassignedIDs)),
		zap.Int("turn_index", state.TurnIndex),
	}
	if suite, ok := ActiveSuite(state); ok {
		fields = append(fields, zap.String("active_suite", string(suite)))
	} else {
		fields = append(fields, zap.Bool("complete", true))
	}

	s.logger.Info("Draft updated", fields...)
}
