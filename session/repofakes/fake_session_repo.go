package repofakes

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/go-onboarding-server/session"
)

var _ session.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory session.Repo for tests. Records round-trip
// through JSON so tests exercise the same serialization the real backends
// use, and individual operations can be primed to fail.
type FakeSessionRepo struct {
	lock   sync.RWMutex
	record []byte

	// Prime the next matching call to return the given error.
	FailNextLoad   error
	FailNextSave   error
	FailNextDelete error

	SaveCalls   int
	DeleteCalls int
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

func (r *FakeSessionRepo) Load() (*session.OnboardingSession, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.FailNextLoad != nil {
		err := r.FailNextLoad
		r.FailNextLoad = nil
		return nil, err
	}

	if r.record == nil {
		return nil, nil
	}

	var sess session.OnboardingSession
	if err := json.Unmarshal(r.record, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *FakeSessionRepo) Save(sess *session.OnboardingSession) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.SaveCalls++
	if r.FailNextSave != nil {
		err := r.FailNextSave
		r.FailNextSave = nil
		return err
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	r.record = raw
	return nil
}

func (r *FakeSessionRepo) Delete() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.DeleteCalls++
	if r.FailNextDelete != nil {
		err := r.FailNextDelete
		r.FailNextDelete = nil
		return err
	}

	r.record = nil
	return nil
}

// Stored reports whether a record currently exists, bypassing any primed
// failures.
func (r *FakeSessionRepo) Stored() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.record != nil
}
