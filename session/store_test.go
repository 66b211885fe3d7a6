package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/session/repofakes"
)

type storeFixture struct {
	repo  *repofakes.FakeSessionRepo
	store *session.Store
	now   time.Time
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	f := &storeFixture{
		repo: repofakes.NewFakeSessionRepo(),
		now:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	store, err := session.NewStore(f.repo, session.WithNowTime(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.store = store
	return f
}

func (f *storeFixture) advanceClock(d time.Duration) {
	f.now = f.now.Add(d)
}

func strPtr(s string) *string { return &s }

func TestStore_CreateAndGet(t *testing.T) {
	f := newStoreFixture(t)

	created, err := f.store.Create()
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, session.StepPersonalInfo, created.CurrentStep)
	require.False(t, created.Completed)
	require.Nil(t, created.FormData.PersonalInfo)

	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, created.ID, loaded.ID)
}

func TestStore_CreateOverwritesExistingSession(t *testing.T) {
	f := newStoreFixture(t)

	first, err := f.store.Create()
	require.NoError(t, err)

	_, err = f.store.UpdateField(session.PersonalInfoPatch{Email: strPtr("a@b.com")})
	require.NoError(t, err)

	second, err := f.store.Create()
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.Equal(t, second.ID, loaded.ID)
	require.Nil(t, loaded.FormData.PersonalInfo)
}

func TestStore_ExpiryIsLazyAndIdempotent(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	// Just inside the TTL the session is still alive
	f.advanceClock(session.TTL - time.Minute)
	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// The read above refreshed nothing; push past the TTL
	f.advanceClock(session.TTL + time.Minute)
	loaded, err = f.store.Get()
	require.NoError(t, err)
	require.Nil(t, loaded)
	require.False(t, f.repo.Stored(), "expired record should be purged on read")

	// Purge is idempotent
	loaded, err = f.store.Get()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestStore_MutationRefreshesTTL(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	f.advanceClock(20 * time.Hour)
	_, err = f.store.UpdateField(session.CountryPatch{Code: strPtr("FR")})
	require.NoError(t, err)

	// 20h + 20h from creation, but only 20h since the last write
	f.advanceClock(20 * time.Hour)
	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.NotNil(t, loaded)
}

func TestStore_PartialMergePreservesSiblings(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	_, err = f.store.UpdateField(session.PersonalInfoPatch{Email: strPtr("a@b.com")})
	require.NoError(t, err)

	_, err = f.store.UpdateField(session.CountryPatch{Code: strPtr("FR")})
	require.NoError(t, err)

	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.NotNil(t, loaded.FormData.PersonalInfo)
	require.Equal(t, "a@b.com", loaded.FormData.PersonalInfo.Email)
	require.NotNil(t, loaded.FormData.Country)
	require.Equal(t, "FR", loaded.FormData.Country.Code)

	// A second partial update to the same slot only touches provided keys
	_, err = f.store.UpdateField(session.PersonalInfoPatch{FirstName: strPtr("Marie")})
	require.NoError(t, err)

	loaded, err = f.store.Get()
	require.NoError(t, err)
	require.Equal(t, "a@b.com", loaded.FormData.PersonalInfo.Email)
	require.Equal(t, "Marie", loaded.FormData.PersonalInfo.FirstName)
}

func TestStore_UpdateFieldWithoutSession(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.UpdateField(session.CountryPatch{Code: strPtr("FR")})
	require.ErrorIs(t, err, onberrors.ErrNoSession)
}

func TestStore_CompletionIsOneWay(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	sess, err := f.store.MarkCompleted()
	require.NoError(t, err)
	require.True(t, sess.Completed)
	require.Equal(t, session.TerminalStep, sess.CurrentStep)

	// No subsequent mutation resets the flag
	_, err = f.store.UpdateField(session.BrandingPatch{PrimaryColor: strPtr("#112233")})
	require.NoError(t, err)
	_, err = f.store.SetStep(session.StepBranding)
	require.NoError(t, err)

	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.True(t, loaded.Completed)
}

func TestStore_PersistenceFailuresSurface(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	f.repo.FailNextSave = errors.New("disk full")
	_, err = f.store.UpdateField(session.CountryPatch{Code: strPtr("FR")})

	var persistenceErr *onberrors.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	require.Equal(t, "save", persistenceErr.Op)

	// The same mutation succeeds on retry
	_, err = f.store.UpdateField(session.CountryPatch{Code: strPtr("FR")})
	require.NoError(t, err)
}

func TestStore_Clear(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)
	require.NoError(t, f.store.Clear())

	loaded, err := f.store.Get()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestStore_SetStepRejectsOutOfRange(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Create()
	require.NoError(t, err)

	_, err = f.store.SetStep(session.Step(7))
	require.ErrorIs(t, err, onberrors.ErrStepOutOfRange)
}
