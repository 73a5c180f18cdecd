package promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/promokit/promotectl/internal/config"
	"github.com/promokit/promotectl/internal/metrics"
	"github.com/promokit/promotectl/internal/notify"
	"github.com/promokit/promotectl/internal/version"
)

// Orchestrator drives a full promotion run: version resolution, approval,
// the registry stage group, the production stage group, metrics and the
// final notification.
type Orchestrator struct {
	Config   *config.Config
	Timeouts *config.Timeouts
	Sessions Sessions
	Gate     TagResolver
	Render   RenderFunc

	// Notifier delivers the end-of-run message; nil skips notification.
	Notifier notify.Notifier

	// Metrics records run outcomes; nil skips metrics.
	Metrics *metrics.Recorder

	// Observer receives structured run events; nil falls back to console.
	Observer Observer

	// ResolveVersion reads the release version file; nil uses version.Resolve.
	ResolveVersion func(path string) (string, error)
}

// Run executes the promotion pipeline and returns its terminal result.
// A clean abort returns (ResultAborted, nil); fatal errors return
// (ResultFailed, err) after the failure notification is dispatched.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	obs := o.Observer
	if obs == nil {
		obs = NewConsoleObserver()
	}

	resolve := o.ResolveVersion
	if resolve == nil {
		resolve = version.Resolve
	}

	// Both pre-mutation gates halt the run before any cluster call.
	releaseVersion, err := resolve(o.Config.VersionFile)
	if err != nil {
		return o.fail(ctx, obs, nil, "", err)
	}
	obs.Printf("promoting %s to release %s", o.Config.ImageStream, releaseVersion)

	sourceTag, err := o.Gate.SourceTag(ctx, releaseVersion)
	if err != nil {
		return o.fail(ctx, obs, nil, releaseVersion, err)
	}
	obs.Printf("source tag selected: %s", sourceTag)

	pctx := &Context{
		Context:  ctx,
		Config:   o.Config,
		Timeouts: o.Timeouts,
		State:    NewState(releaseVersion, sourceTag),
		Observer: obs,
	}

	// Registry stage group: the existence check and tagging share one
	// registry-scoped session, torn down before production work begins.
	reg, err := o.Sessions.Registry()
	if err != nil {
		return o.fail(ctx, obs, pctx.State, releaseVersion, fmt.Errorf("failed to open registry session: %w", err))
	}

	err = RunPhases(pctx, []Phase{
		&existenceCheckPhase{registry: reg},
		&tagPhase{registry: reg},
	})
	if err != nil {
		if errors.Is(err, ErrArtifactNotFound) {
			return o.abort(ctx, obs, pctx.State, err)
		}
		return o.fail(ctx, obs, pctx.State, releaseVersion, err)
	}

	// Production stage group: apply and rollout share one prod-scoped session.
	prod, err := o.Sessions.Production()
	if err != nil {
		return o.fail(ctx, obs, pctx.State, releaseVersion, fmt.Errorf("failed to open production session: %w", err))
	}

	err = RunPhases(pctx, []Phase{
		&applyBasePhase{prod: prod},
		&applyAppPhase{prod: prod, render: o.Render},
		&pruneBuildsPhase{prod: prod},
		&rolloutPhase{prod: prod},
	})
	if err != nil {
		return o.fail(ctx, obs, pctx.State, releaseVersion, err)
	}

	return o.release(ctx, obs, pctx.State)
}

func (o *Orchestrator) release(ctx context.Context, obs Observer, state *State) (Result, error) {
	obs.Event(Event{
		Type:    EventRunReleased,
		Message: fmt.Sprintf("%s %s is live in production", o.Config.ImageStream, state.ReleaseVersion),
	})

	o.record(obs, ResultReleased, state)
	o.notify(ctx, obs, notify.Message{
		Outcome:     notify.OutcomeReleased,
		ImageStream: o.Config.ImageStream,
		Version:     state.ReleaseVersion,
		DetailsURL:  o.Config.Notify.DetailsURL,
	})

	return ResultReleased, nil
}

func (o *Orchestrator) abort(ctx context.Context, obs Observer, state *State, cause error) (Result, error) {
	obs.Event(Event{
		Type:    EventRunAborted,
		Message: fmt.Sprintf("nothing to promote: %v", cause),
	})

	o.record(obs, ResultAborted, state)

	if o.Config.Notify.OnAbort {
		o.notify(ctx, obs, notify.Message{
			Outcome:     notify.OutcomeAborted,
			ImageStream: o.Config.ImageStream,
			Version:     state.ReleaseVersion,
			DetailsURL:  o.Config.Notify.DetailsURL,
			Reason:      cause.Error(),
		})
	}

	return ResultAborted, nil
}

func (o *Orchestrator) fail(ctx context.Context, obs Observer, state *State, releaseVersion string, cause error) (Result, error) {
	obs.Event(Event{
		Type:    EventRunFailed,
		Message: cause.Error(),
	})

	o.record(obs, ResultFailed, state)

	if releaseVersion == "" {
		releaseVersion = "unknown"
	}
	o.notify(ctx, obs, notify.Message{
		Outcome:     notify.OutcomeFailed,
		ImageStream: o.Config.ImageStream,
		Version:     releaseVersion,
		DetailsURL:  o.Config.Notify.DetailsURL,
		Reason:      cause.Error(),
	})

	return ResultFailed, cause
}

// record updates run metrics and flushes the textfile when configured.
func (o *Orchestrator) record(obs Observer, result Result, state *State) {
	if o.Metrics == nil {
		return
	}

	o.Metrics.RecordRun(string(result))
	if state != nil && state.RolloutDuration > 0 {
		o.Metrics.ObserveRolloutDuration(state.RolloutDuration)
	}

	if path := o.Config.MetricsTextfile; path != "" {
		if err := o.Metrics.WriteTextfile(path); err != nil {
			obs.Printf("failed to write metrics textfile: %v", err)
		}
	}
}

// notify dispatches the single end-of-run message. Delivery failures are
// logged, never escalated: the run result is already decided.
func (o *Orchestrator) notify(ctx context.Context, obs Observer, msg notify.Message) {
	if o.Notifier == nil {
		return
	}
	if err := o.Notifier.Notify(ctx, msg); err != nil {
		obs.Printf("failed to deliver notification: %v", err)
	}
}
