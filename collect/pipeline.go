// Package collect orchestrates the external-data collection pipeline: a
// fixed sequence of five stages run strictly in order against a single
// company identifier, with progress notifications, a single retry per stage,
// and a consolidated summary as the only output.
package collect

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
	"github.com/jrsteele09/go-onboarding-server/session"
)

const (
	defaultStageTimeout = 10 * time.Second
	defaultRetryBackoff = 2 * time.Second

	// totalProfileFields is the completion-rate denominator. It is a fixed
	// constant rather than a count derived from the live schema, so
	// user-visible percentages stay stable as the profile shape evolves.
	totalProfileFields = 35
)

// Pipeline runs the collection sequence. One Pipeline guards one session:
// only a single run may be in flight at a time, and a second invocation is
// rejected immediately with ErrPipelineBusy.
type Pipeline struct {
	registry  lookup.Registry
	documents lookup.DocumentProvider

	stageTimeout time.Duration
	retryBackoff time.Duration
	nowTime      func() time.Time // nowTime function (injectable for testing)

	busy sync.Mutex
}

// PipelineOption defines a function type to modify the Pipeline instance.
type PipelineOption func(*Pipeline)

// WithStageTimeout bounds each adapter call. A timeout is treated exactly
// like an adapter failure and consumes the stage's single retry.
func WithStageTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.stageTimeout = d
	}
}

// WithRetryBackoff sets the fixed wait between a failed attempt and its retry.
func WithRetryBackoff(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.retryBackoff = d
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.nowTime = nowFunc
	}
}

// NewPipeline initializes a Pipeline with its two adapter dependencies.
func NewPipeline(registry lookup.Registry, documents lookup.DocumentProvider, options ...PipelineOption) (*Pipeline, error) {
	if registry == nil {
		return nil, errors.New("[NewPipeline] registry adapter is required")
	}
	if documents == nil {
		return nil, errors.New("[NewPipeline] document provider is required")
	}

	pipeline := &Pipeline{
		registry:     registry,
		documents:    documents,
		stageTimeout: defaultStageTimeout,
		retryBackoff: defaultRetryBackoff,
		nowTime:      time.Now,
	}

	for _, opt := range options {
		opt(pipeline)
	}

	return pipeline, nil
}

// stage is one sequential unit of work. Later stages read what earlier
// stages wrote into the running result, so order is significant and fixed.
type stage struct {
	name    string
	message string
	run     func(ctx context.Context, result *session.CollectedData) error
}

func (p *Pipeline) stages(companyID string) []stage {
	return []stage{
		{
			name:    "registry_lookup",
			message: "Looking up the company in the national registry",
			run: func(ctx context.Context, result *session.CollectedData) error {
				detail, err := p.registry.Detail(ctx, companyID)
				if err != nil {
					return err
				}
				result.CompanyName = detail.Name
				result.LegalForm = detail.LegalForm
				result.NAFCode = detail.NAFCode
				result.Address = detail.Address
				result.PostalCode = detail.PostalCode
				result.City = detail.City
				result.Capital = detail.Capital
				result.CreationDate = detail.CreationDate
				result.WebsiteURL = detail.WebsiteURL
				result.RegistryAvailable = true
				return nil
			},
		},
		{
			name:    "provider_profile",
			message: "Fetching the commercial-registry profile",
			run: func(ctx context.Context, result *session.CollectedData) error {
				profile, err := p.documents.Profile(ctx, companyID)
				if err != nil {
					return err
				}
				result.Greffe = profile.Greffe
				result.RCSNumber = profile.RCSNumber
				result.VATNumber = profile.VATNumber
				result.EmployeeBand = profile.EmployeeBand
				result.DocumentsAvailable = true
				return nil
			},
		},
		{
			name:    "actes_enumeration",
			message: "Enumerating legal documents",
			run: func(ctx context.Context, result *session.CollectedData) error {
				refs, err := p.documents.ListDocuments(ctx, companyID, lookup.DocumentKindActe)
				if err != nil {
					return err
				}
				result.Actes = len(refs)
				return nil
			},
		},
		{
			name:    "comptes_enumeration",
			message: "Enumerating annual accounts",
			run: func(ctx context.Context, result *session.CollectedData) error {
				refs, err := p.documents.ListDocuments(ctx, companyID, lookup.DocumentKindCompteAnnuel)
				if err != nil {
					return err
				}
				result.ComptesAnnuels = len(refs)
				return nil
			},
		},
		{
			name:    "consolidation",
			message: "Consolidating the collected profile",
			run: func(_ context.Context, result *session.CollectedData) error {
				result.TotalDocuments = result.Actes + result.ComptesAnnuels
				result.CompletionRate = completionRate(result)
				result.Completed = true
				return nil
			},
		},
	}
}

// Run executes all stages in order and returns the consolidated summary.
// The caller persists the summary; a failed or cancelled run returns nothing
// so the session's collected data stays unset.
func (p *Pipeline) Run(ctx context.Context, companyID string, onProgress ProgressFunc) (*session.CollectedData, error) {
	if onProgress == nil {
		onProgress = func(Notification) {}
	}

	if !p.busy.TryLock() {
		return nil, onberrors.ErrPipelineBusy
	}
	defer p.busy.Unlock()

	log.Info().Str("company_id", companyID).Msg("collection pipeline starting")

	result := &session.CollectedData{SIREN: companyID}
	for _, st := range p.stages(companyID) {
		// Cancellation is observed between stages only; the partial result
		// is discarded, never persisted half-finished.
		if ctx.Err() != nil {
			log.Info().Str("company_id", companyID).Str("stage", st.name).Msg("collection cancelled between stages")
			return nil, errors.Wrap(onberrors.ErrPipelineCancelled, ctx.Err().Error())
		}
		if err := p.runStage(ctx, st, result, onProgress); err != nil {
			return nil, err
		}
	}

	log.Info().Str("company_id", companyID).Int("completion_rate", result.CompletionRate).Msg("collection pipeline finished")
	return result, nil
}

// runStage attempts a stage, retrying exactly once after a fixed backoff.
// Every attempt emits a loading event and resolves with success or error.
func (p *Pipeline) runStage(ctx context.Context, st stage, result *session.CollectedData, onProgress ProgressFunc) error {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		onProgress(newNotification(st.name, st.message, StatusLoading, p.nowTime(), ""))

		stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
		err := st.run(stageCtx, result)
		cancel()

		if err == nil {
			onProgress(newNotification(st.name, st.message, StatusSuccess, p.nowTime(), ""))
			return nil
		}

		lastErr = err
		onProgress(newNotification(st.name, st.message, StatusError, p.nowTime(), err.Error()))
		log.Warn().Err(err).Str("stage", st.name).Int("attempt", attempt+1).Msg("collection stage attempt failed")

		if ctx.Err() != nil {
			return errors.Wrap(onberrors.ErrPipelineCancelled, ctx.Err().Error())
		}

		if attempt == 0 {
			select {
			case <-ctx.Done():
				return errors.Wrap(onberrors.ErrPipelineCancelled, ctx.Err().Error())
			case <-time.After(p.retryBackoff):
			}
		}
	}

	return onberrors.NewStageFailedError(st.name, lastErr)
}

// completionRate is filled fields over the fixed denominator, as a rounded
// percentage.
func completionRate(result *session.CollectedData) int {
	filled := 0
	for _, ok := range []bool{
		result.CompanyName != "",
		result.LegalForm != "",
		result.SIREN != "",
		result.NAFCode != "",
		result.Address != "",
		result.PostalCode != "",
		result.City != "",
		result.Capital > 0,
		result.CreationDate != "",
		result.WebsiteURL != "",
		result.Greffe != "",
		result.RCSNumber != "",
		result.VATNumber != "",
		result.EmployeeBand != "",
		result.Actes > 0,
		result.ComptesAnnuels > 0,
		result.RegistryAvailable,
		result.DocumentsAvailable,
	} {
		if ok {
			filled++
		}
	}

	return int(float64(filled)/float64(totalProfileFields)*100 + 0.5)
}
