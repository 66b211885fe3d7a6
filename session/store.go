package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
)

// TTL is the inactivity window after which a session is treated as absent.
const TTL = 24 * time.Hour

// Store is the sole owner of the durable session record. All reads and
// mutations go through it: it stamps LastUpdatedAt on every write, applies
// shallow step patches, and performs lazy expiry on read (an expired record
// is purged as a side effect of Get and is indistinguishable from "no
// session" to every caller).
type Store struct {
	mu      sync.Mutex
	repo    Repo
	ttl     time.Duration
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithTTL overrides the session TTL (primarily for testing)
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore initializes a Store over a Repo backend.
func NewStore(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] repo is required")
	}

	store := &Store{
		repo:    repo,
		ttl:     TTL,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// Create generates a fresh session and persists it, overwriting any
// existing record.
func (s *Store) Create() (*OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowTime()
	sess := &OnboardingSession{
		ID:            uuid.New().String(),
		CurrentStep:   StepPersonalInfo,
		StartedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.repo.Save(sess); err != nil {
		return nil, onberrors.NewPersistenceError("create", err)
	}
	return sess, nil
}

// Get loads the persisted session. It returns (nil, nil) when no record
// exists, and purges the record first when it has expired, so a subsequent
// Get also reports absence.
func (s *Store) Get() (*OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save stamps LastUpdatedAt and persists the full record atomically.
func (s *Store) Save(sess *OnboardingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(sess)
}

// UpdateField merges a step patch into the session's form data and
// persists. Only the patch's own slot is touched; sibling slots are never
// cleared.
func (s *Store) UpdateField(patch Patch) (*OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, onberrors.ErrNoSession
	}

	patch.applyTo(&sess.FormData)

	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetStep moves the session to the given step and persists.
func (s *Store) SetStep(step Step) (*OnboardingSession, error) {
	if !step.Valid() {
		return nil, onberrors.ErrStepOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, onberrors.ErrNoSession
	}

	sess.CurrentStep = step

	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// MarkCompleted seals the session. The transition is one-way: no Store
// operation ever sets Completed back to false, and the current step is
// pinned to the terminal step.
func (s *Store) MarkCompleted() (*OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, onberrors.ErrNoSession
	}

	sess.Completed = true
	sess.CurrentStep = TerminalStep

	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Clear discards the session record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(); err != nil {
		return onberrors.NewPersistenceError("clear", err)
	}
	return nil
}

// load performs the read-time invalidation check. Callers hold s.mu.
func (s *Store) load() (*OnboardingSession, error) {
	sess, err := s.repo.Load()
	if err != nil {
		return nil, onberrors.NewPersistenceError("load", err)
	}
	if sess == nil {
		return nil, nil
	}

	if s.nowTime().Sub(sess.LastUpdatedAt) > s.ttl {
		if err := s.repo.Delete(); err != nil {
			return nil, onberrors.NewPersistenceError("purge", err)
		}
		return nil, nil
	}

	return sess, nil
}

// save stamps and writes the whole record. Callers hold s.mu.
func (s *Store) save(sess *OnboardingSession) error {
	sess.LastUpdatedAt = s.nowTime()
	if err := s.repo.Save(sess); err != nil {
		return onberrors.NewPersistenceError("save", err)
	}
	return nil
}
