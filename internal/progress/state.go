package progress

import (
	"context"

	"github.com/jask/skillbuilder/internal/logger"
)

// State is one lesson's view of a Store. Values read or written are memoized,
// so a failing store degrades to in-memory state: reads report unset,
// writes stay local, and a single warning is logged.
type State struct {
	store    Store
	ns       Namespace
	log      *logger.Logger
	memo     map[string]string
	degraded bool
}

func NewState(store Store, ns Namespace, log *logger.Logger) *State {
	if store == nil {
		store = UnavailableStore{}
	}
	return &State{
		store: store,
		ns:    ns,
		log:   logger.OrNop(log),
		memo:  map[string]string{},
	}
}

func (s *State) Namespace() Namespace { return s.ns }

// Degraded reports whether the store has failed at least once.
func (s *State) Degraded() bool { return s.degraded }

func (s *State) Tried(ctx context.Context, position int) bool {
	return s.get(ctx, s.ns.StepKey(position)) == "true"
}

func (s *State) SetTried(ctx context.Context, position int, tried bool) {
	s.set(ctx, s.ns.StepKey(position), formatBool(tried))
}

func (s *State) Reacted(ctx context.Context, id string) bool {
	return s.get(ctx, s.ns.ReactionKey(id)) == "true"
}

func (s *State) SetReacted(ctx context.Context, id string, reacted bool) {
	s.set(ctx, s.ns.ReactionKey(id), formatBool(reacted))
}

func (s *State) Notes(ctx context.Context) string {
	return s.get(ctx, s.ns.NotesKey())
}

func (s *State) SetNotes(ctx context.Context, text string) {
	s.set(ctx, s.ns.NotesKey(), text)
}

func (s *State) get(ctx context.Context, key string) string {
	if v, ok := s.memo[key]; ok {
		return v
	}
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.fail("read", key, err)
		return ""
	}
	if ok {
		s.memo[key] = v
	}
	return v
}

func (s *State) set(ctx context.Context, key, value string) {
	s.memo[key] = value
	if err := s.store.Set(ctx, key, value); err != nil {
		s.fail("write", key, err)
	}
}

func (s *State) fail(op, key string, err error) {
	if !s.degraded {
		s.log.Warn("progress store unavailable, progress will not survive reload", "op", op, "key", key, "error", err)
	}
	s.degraded = true
}
