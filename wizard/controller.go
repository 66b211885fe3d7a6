// Package wizard drives the ordered onboarding step sequence. The
// Controller is the only component that moves the session between steps:
// forward progress is gated on per-step validation, backward navigation is
// always allowed, and completion is a one-way transition.
package wizard

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-onboarding-server/collect"
	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
	"github.com/jrsteele09/go-onboarding-server/session"
)

// Controller enforces the wizard's state machine over a session Store.
type Controller struct {
	store     *session.Store
	pipeline  *collect.Pipeline
	logos     lookup.LogoProvider
	validator *Validator
}

// NewController initializes a Controller with its dependencies.
func NewController(store *session.Store, pipeline *collect.Pipeline, logos lookup.LogoProvider) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] session store is required")
	}
	if pipeline == nil {
		return nil, errors.New("[NewController] collection pipeline is required")
	}
	if logos == nil {
		return nil, errors.New("[NewController] logo provider is required")
	}

	return &Controller{
		store:     store,
		pipeline:  pipeline,
		logos:     logos,
		validator: NewValidator(),
	}, nil
}

// StartOrResume resumes an unexpired persisted session at its saved step,
// or creates a fresh one at step 0.
func (c *Controller) StartOrResume() (*session.OnboardingSession, error) {
	sess, err := c.store.Get()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		log.Debug().Str("session_id", sess.ID).Int("step", int(sess.CurrentStep)).Msg("resuming onboarding session")
		return sess, nil
	}

	sess, err = c.store.Create()
	if err != nil {
		return nil, err
	}
	log.Info().Str("session_id", sess.ID).Msg("created onboarding session")
	return sess, nil
}

// Session returns the current unexpired session, or nil when none exists.
func (c *Controller) Session() (*session.OnboardingSession, error) {
	return c.store.Get()
}

// UpdateStep merges a partial update into one step's form data.
func (c *Controller) UpdateStep(patch session.Patch) (*session.OnboardingSession, error) {
	return c.store.UpdateField(patch)
}

// Advance moves from step n to n+1, but only when step n's required fields
// are present. On a gating failure the session stays put and the returned
// ValidationError names the missing fields.
func (c *Controller) Advance() (*session.OnboardingSession, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep >= session.TerminalStep {
		return nil, onberrors.ErrStepOutOfRange
	}

	if err := c.validator.ValidateStep(sess.CurrentStep, &sess.FormData); err != nil {
		return nil, err
	}

	return c.store.SetStep(sess.CurrentStep + 1)
}

// Retreat steps backward without clearing any already-entered data.
func (c *Controller) Retreat() (*session.OnboardingSession, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return nil, onberrors.ErrSessionConsumed
	}
	if sess.CurrentStep == 0 {
		return nil, onberrors.ErrAlreadyAtStart
	}

	return c.store.SetStep(sess.CurrentStep - 1)
}

// JumpToStep navigates directly to an already-visited step. Skipping ahead
// of the current step is never allowed.
func (c *Controller) JumpToStep(step session.Step) (*session.OnboardingSession, error) {
	if !step.Valid() {
		return nil, onberrors.ErrStepOutOfRange
	}

	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return nil, onberrors.ErrSessionConsumed
	}
	if step > sess.CurrentStep {
		return nil, onberrors.ErrForwardJump
	}

	return c.store.SetStep(step)
}

// Complete seals the session. It is allowed only from the terminal step
// with fully populated personal info, and is a no-op on an already
// completed session.
func (c *Controller) Complete() (*session.OnboardingSession, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return sess, nil
	}
	if sess.CurrentStep != session.TerminalStep {
		return nil, onberrors.ErrNotTerminalStep
	}
	if !sess.FormData.PersonalInfo.Complete() {
		return nil, onberrors.NewValidationError(session.StepPersonalInfo.Key(), "personal_info")
	}

	sess, err = c.store.MarkCompleted()
	if err != nil {
		return nil, err
	}
	log.Info().Str("session_id", sess.ID).Msg("onboarding session completed")
	return sess, nil
}

// RunCollection validates the company identifier, runs the pipeline, and
// persists the consolidated summary only after every stage has succeeded.
// A failed or cancelled run leaves collected data unset, so the
// collected_data gate keeps failing until a full run completes.
func (c *Controller) RunCollection(ctx context.Context, companyID string, onProgress collect.ProgressFunc) (*session.OnboardingSession, error) {
	if !lookup.ValidSIREN(companyID) {
		return nil, onberrors.ErrInvalidSIREN
	}

	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	data, err := c.pipeline.Run(ctx, companyID, onProgress)
	if err != nil {
		return nil, err
	}

	return c.store.UpdateField(session.CollectedDataPatch{Data: data})
}

// DiscoverLogo asks the logo provider for a candidate logo. A negative
// finding is a normal result, not an error.
func (c *Controller) DiscoverLogo(ctx context.Context, websiteURL string) (*lookup.LogoSearchResult, error) {
	return c.logos.Discover(ctx, websiteURL)
}

// UploadLogo validates and stores a user-provided logo, then records it in
// the branding slot.
func (c *Controller) UploadLogo(ctx context.Context, file lookup.LogoFile) (*session.OnboardingSession, error) {
	if err := c.logos.ValidateFile(file); err != nil {
		return nil, err
	}

	result, err := c.logos.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	source := "uploaded"
	return c.store.UpdateField(session.BrandingPatch{LogoURL: &result.URL, LogoSource: &source})
}

func (c *Controller) requireSession() (*session.OnboardingSession, error) {
	sess, err := c.store.Get()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, onberrors.ErrNoSession
	}
	return sess, nil
}
