package progress

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
)

// DefaultLearner is the key used when a caller supplies no learner ID.
const DefaultLearner = "default"

// Repository persists tracker counters between runs. store.ProgressRepo
// and store.RedisProgressRepo satisfy it.
type Repository interface {
	Load(ctx context.Context, learnerID string) (store.ProgressRecord, bool, error)
	Increment(ctx context.Context, learnerID string, isCorrect bool) (store.ProgressRecord, error)
	Delete(ctx context.Context, learnerID string) error
}

// Registry owns one Tracker per learner. With a Repository set, a learner's
// counters are loaded on first use and every attempt is an atomic increment
// in the repository, whose result becomes the in-memory state. Repository
// failures are logged and otherwise ignored.
type Registry struct {
	mu         sync.Mutex // guards learners only; never held across I/O
	learners   map[string]*learnerState
	thresholds Thresholds
	repo       Repository
	log        *zap.Logger
}

// learnerState serializes all repository traffic for one learner.
type learnerState struct {
	mu     sync.Mutex
	tr     *Tracker
	loaded bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithRepository makes the registry persistent.
func WithRepository(repo Repository) Option {
	return func(r *Registry) { r.repo = repo }
}

// WithThresholds overrides DefaultThresholds.
func WithThresholds(t Thresholds) Option {
	return func(r *Registry) { r.thresholds = t }
}

// WithLogger sets the logger used for repository failures.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		learners:   make(map[string]*learnerState),
		thresholds: DefaultThresholds(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Thresholds returns the level cut-offs in effect.
func (r *Registry) Thresholds() Thresholds {
	return r.thresholds
}

func normalize(learnerID string) string {
	if learnerID == "" {
		return DefaultLearner
	}
	return learnerID
}

func (r *Registry) state(learnerID string) *learnerState {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.learners[learnerID]
	if !ok {
		st = &learnerState{tr: NewTracker(r.thresholds), loaded: r.repo == nil}
		r.learners[learnerID] = st
	}
	return st
}

// ensureLoaded reads the learner's counters from the repository unless
// that already happened. A failed load leaves the learner unloaded so the
// next access retries. Caller holds st.mu.
func (r *Registry) ensureLoaded(ctx context.Context, learnerID string, st *learnerState) {
	if st.loaded {
		return
	}
	rec, found, err := r.repo.Load(ctx, learnerID)
	if err != nil {
		r.log.Warn("load learner progress", zap.String("learner", learnerID), zap.Error(err))
		return
	}
	if found {
		st.tr.restore(rec.Correct, rec.Total)
	} else {
		st.tr.restore(0, 0)
	}
	st.loaded = true
}

// Tracker returns the learner's tracker, loading it on first use.
func (r *Registry) Tracker(ctx context.Context, learnerID string) *Tracker {
	learnerID = normalize(learnerID)
	st := r.state(learnerID)

	st.mu.Lock()
	defer st.mu.Unlock()
	r.ensureLoaded(ctx, learnerID, st)
	return st.tr
}

// Record registers one judged attempt for the learner. With a repository
// the increment happens there first; if it fails the attempt is only
// counted in memory.
func (r *Registry) Record(ctx context.Context, learnerID string, isCorrect bool) Stats {
	learnerID = normalize(learnerID)
	st := r.state(learnerID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if r.repo == nil {
		st.tr.Update(isCorrect)
		return st.tr.Snapshot()
	}

	rec, err := r.repo.Increment(ctx, learnerID, isCorrect)
	if err != nil {
		r.log.Warn("save learner progress", zap.String("learner", learnerID), zap.Error(err))
		st.tr.Update(isCorrect)
		return st.tr.Snapshot()
	}
	st.tr.restore(rec.Correct, rec.Total)
	st.loaded = true
	return st.tr.Snapshot()
}

// Level returns the learner's current level.
func (r *Registry) Level(ctx context.Context, learnerID string) Level {
	return r.Stats(ctx, learnerID).Level
}

// Stats returns the learner's counters.
func (r *Registry) Stats(ctx context.Context, learnerID string) Stats {
	return r.Tracker(ctx, learnerID).Snapshot()
}

// Reset forgets the learner's counters, in the repository and in memory.
// On a repository error the counters are left untouched.
func (r *Registry) Reset(ctx context.Context, learnerID string) error {
	learnerID = normalize(learnerID)
	st := r.state(learnerID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if r.repo != nil {
		if err := r.repo.Delete(ctx, learnerID); err != nil {
			return err
		}
	}
	st.tr.restore(0, 0)
	st.loaded = true
	return nil
}
