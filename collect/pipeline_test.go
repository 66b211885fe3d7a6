package collect_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-onboarding-server/collect"
	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup/lookupfakes"
)

const testSIREN = "552100554"

type pipelineFixture struct {
	registry  *lookupfakes.FakeRegistry
	documents *lookupfakes.FakeDocumentProvider
	pipeline  *collect.Pipeline

	mu            sync.Mutex
	notifications []collect.Notification
}

func newPipelineFixture(t *testing.T, options ...collect.PipelineOption) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		registry:  lookupfakes.NewFakeRegistry(),
		documents: lookupfakes.NewFakeDocumentProvider(),
	}

	options = append([]collect.PipelineOption{collect.WithRetryBackoff(time.Millisecond)}, options...)
	pipeline, err := collect.NewPipeline(f.registry, f.documents, options...)
	require.NoError(t, err)
	f.pipeline = pipeline
	return f
}

func (f *pipelineFixture) record(n collect.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *pipelineFixture) statuses() []collect.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	statuses := make([]collect.Status, 0, len(f.notifications))
	for _, n := range f.notifications {
		statuses = append(statuses, n.Status)
	}
	return statuses
}

func (f *pipelineFixture) stages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	stages := make([]string, 0, len(f.notifications))
	for _, n := range f.notifications {
		stages = append(stages, n.Stage)
	}
	return stages
}

func TestPipeline_SuccessfulRun(t *testing.T) {
	f := newPipelineFixture(t)

	result, err := f.pipeline.Run(context.Background(), testSIREN, f.record)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Equal(t, "Compagnie de Saint-Gobain", result.CompanyName)
	require.Equal(t, testSIREN, result.SIREN)
	require.Equal(t, "Nanterre", result.Greffe)
	require.Equal(t, 2, result.Actes)
	require.Equal(t, 3, result.ComptesAnnuels)
	require.Equal(t, 5, result.TotalDocuments)
	require.True(t, result.RegistryAvailable)
	require.True(t, result.DocumentsAvailable)
	require.True(t, result.Completed)
	require.Equal(t, 51, result.CompletionRate) // 18 filled fields of 35

	// Two notifications per stage: loading then success
	require.Equal(t, []collect.Status{
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
	}, f.statuses())

	require.Equal(t, []string{
		"registry_lookup", "registry_lookup",
		"provider_profile", "provider_profile",
		"actes_enumeration", "actes_enumeration",
		"comptes_enumeration", "comptes_enumeration",
		"consolidation", "consolidation",
	}, f.stages())
}

func TestPipeline_RetryThenAbort(t *testing.T) {
	f := newPipelineFixture(t)
	f.documents.FailNext("profile", 2)

	result, err := f.pipeline.Run(context.Background(), testSIREN, f.record)
	require.Nil(t, result)

	var stageErr *onberrors.StageFailedError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, "provider_profile", stageErr.Stage)

	// Stage 1 succeeds, stage 2 emits loading/error twice, nothing after
	require.Equal(t, []collect.Status{
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusError,
		collect.StatusLoading, collect.StatusError,
	}, f.statuses())

	require.Equal(t, []string{
		"registry_lookup", "registry_lookup",
		"provider_profile", "provider_profile", "provider_profile", "provider_profile",
	}, f.stages())
}

func TestPipeline_SingleRetryRecovers(t *testing.T) {
	f := newPipelineFixture(t)
	f.documents.FailNext("list_acte", 1)

	result, err := f.pipeline.Run(context.Background(), testSIREN, f.record)
	require.NoError(t, err)
	require.Equal(t, 2, result.Actes)

	// The failed attempt and its retry both show up in the stream
	require.Equal(t, []collect.Status{
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusError, collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
		collect.StatusLoading, collect.StatusSuccess,
	}, f.statuses())
}

func TestPipeline_ConcurrentRunRejected(t *testing.T) {
	f := newPipelineFixture(t)

	slowRegistry := lookupfakes.NewFakeRegistry(lookupfakes.WithLatency(150 * time.Millisecond))
	pipeline, err := collect.NewPipeline(slowRegistry, f.documents, collect.WithRetryBackoff(time.Millisecond))
	require.NoError(t, err)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, runErr := pipeline.Run(context.Background(), testSIREN, func(n collect.Notification) {
			select {
			case started <- struct{}{}:
			default:
			}
		})
		done <- runErr
	}()

	<-started
	_, err = pipeline.Run(context.Background(), testSIREN, nil)
	require.ErrorIs(t, err, onberrors.ErrPipelineBusy)

	require.NoError(t, <-done)

	// Guard is released once the first run finishes
	_, err = pipeline.Run(context.Background(), testSIREN, nil)
	require.NoError(t, err)
}

func TestPipeline_CancellationBetweenStages(t *testing.T) {
	f := newPipelineFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := f.pipeline.Run(ctx, testSIREN, func(n collect.Notification) {
		f.record(n)
		if n.Stage == "registry_lookup" && n.Status == collect.StatusSuccess {
			cancel()
		}
	})
	require.Nil(t, result)
	require.ErrorIs(t, err, onberrors.ErrPipelineCancelled)

	// No stage beyond the first ever starts
	for _, stage := range f.stages() {
		require.Equal(t, "registry_lookup", stage)
	}
}

func TestPipeline_TimeoutConsumesTheRetry(t *testing.T) {
	slowRegistry := lookupfakes.NewFakeRegistry(lookupfakes.WithLatency(100 * time.Millisecond))
	documents := lookupfakes.NewFakeDocumentProvider()

	pipeline, err := collect.NewPipeline(
		slowRegistry,
		documents,
		collect.WithStageTimeout(10*time.Millisecond),
		collect.WithRetryBackoff(time.Millisecond),
	)
	require.NoError(t, err)

	_, err = pipeline.Run(context.Background(), testSIREN, nil)

	var stageErr *onberrors.StageFailedError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, "registry_lookup", stageErr.Stage)
}
