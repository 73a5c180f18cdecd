package promotion

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/promokit/promotectl/internal/cluster"
	"github.com/promokit/promotectl/internal/template"
)

const buildConfigKind = "BuildConfig"
const deploymentConfigKind = "DeploymentConfig"

// existenceCheckPhase verifies the selected source tag exists before any
// mutation. A missing artifact is "nothing to promote", not a system failure.
type existenceCheckPhase struct {
	registry RegistryClient
}

func (p *existenceCheckPhase) Name() string { return "existence-check" }

func (p *existenceCheckPhase) Run(ctx *Context) error {
	cfg := ctx.Config

	ok, err := p.registry.HasTag(ctx, cfg.Registry.Project, cfg.ImageStream, ctx.State.SourceTag)
	if err != nil {
		return fmt.Errorf("failed to query source registry: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s:%s",
			ErrArtifactNotFound, cfg.Registry.Project, cfg.ImageStream, ctx.State.SourceTag)
	}

	ctx.Observer.Printf("source tag %s:%s found in %s",
		cfg.ImageStream, ctx.State.SourceTag, cfg.Registry.Project)
	return nil
}

// tagPhase makes the source artifact reachable as {ReleaseVersion, latest}.
type tagPhase struct {
	registry RegistryClient
}

func (p *tagPhase) Name() string { return "tag" }

func (p *tagPhase) Run(ctx *Context) error {
	cfg := ctx.Config

	err := p.registry.TagRelease(ctx, cfg.Registry.Project, cfg.ImageStream,
		ctx.State.SourceTag, ctx.State.ReleaseVersion)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTaggingFailed, err)
	}

	ctx.Observer.Printf("tagged %s:%s as {%s, latest}",
		cfg.ImageStream, ctx.State.SourceTag, ctx.State.ReleaseVersion)
	return nil
}

// applyBasePhase upserts the static baseline objects, when configured.
type applyBasePhase struct {
	prod ProductionClient
}

func (p *applyBasePhase) Name() string { return "apply-base" }

func (p *applyBasePhase) Run(ctx *Context) error {
	path := ctx.Config.Prod.BaseManifestPath
	if path == "" {
		ctx.Observer.Printf("no base manifest configured, skipping")
		return nil
	}

	// #nosec G304
	manifests, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read base manifest: %v", ErrApplyFailed, err)
	}

	if _, err := p.prod.ApplyManifests(ctx, manifests); err != nil {
		return fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	return nil
}

// applyAppPhase renders the parameterized template and applies the resulting
// object set, keeping it on the state for kind narrowing.
type applyAppPhase struct {
	prod   ProductionClient
	render RenderFunc
}

func (p *applyAppPhase) Name() string { return "apply-app" }

func (p *applyAppPhase) Run(ctx *Context) error {
	cfg := ctx.Config

	manifests, err := p.render(cfg.Prod.TemplatePath, cfg.ImageStream, cfg.Prod.Project,
		template.Params{
			Tag:             ctx.State.ReleaseVersion,
			ImageStreamTag:  ctx.State.ReleaseVersion,
			Registry:        cfg.Registry.OpenShiftRegistryURI,
			RegistryProject: cfg.Registry.Project,
		})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	applied, err := p.prod.ApplyManifests(ctx, manifests)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	ctx.State.Applied = applied
	ctx.Observer.Printf("applied %d objects to %s", len(applied), cfg.Prod.Project)
	return nil
}

// pruneBuildsPhase deletes build configurations from the applied set.
// Production only runs pre-built, promoted images.
type pruneBuildsPhase struct {
	prod ProductionClient
}

func (p *pruneBuildsPhase) Name() string { return "prune-buildconfigs" }

func (p *pruneBuildsPhase) Run(ctx *Context) error {
	builds := cluster.FilterByKind(ctx.State.Applied, buildConfigKind)
	if len(builds) == 0 {
		return nil
	}

	if err := p.prod.DeleteByKind(ctx, ctx.State.Applied, buildConfigKind); err != nil {
		return fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	ctx.Observer.Printf("pruned %d build configurations", len(builds))
	return nil
}

// rolloutPhase triggers exactly one rollout of the configured deployment and
// waits for it to reach a terminal state within the bound.
type rolloutPhase struct {
	prod ProductionClient
}

func (p *rolloutPhase) Name() string { return "rollout" }

func (p *rolloutPhase) Run(ctx *Context) error {
	cfg := ctx.Config

	if !p.deploymentApplied(ctx) {
		return fmt.Errorf("%w: deployment configuration %q not in rendered objects",
			ErrApplyFailed, cfg.Prod.DCName)
	}

	if err := p.prod.RolloutLatest(ctx, cfg.Prod.Project, cfg.Prod.DCName); err != nil {
		ctx.State.Rollout = RolloutFailed
		return fmt.Errorf("%w: %v", cluster.ErrRolloutFailed, err)
	}
	ctx.State.Rollout = RolloutTriggered

	start := time.Now()
	err := p.prod.WaitForRollout(ctx, cfg.Prod.Project, cfg.Prod.DCName,
		ctx.Timeouts.PollInterval, ctx.Timeouts.Rollout)
	ctx.State.RolloutDuration = time.Since(start)

	switch {
	case err == nil:
		ctx.State.Rollout = RolloutSucceeded
		return nil
	case errors.Is(err, cluster.ErrRolloutTimedOut):
		ctx.State.Rollout = RolloutTimedOut
		return err
	default:
		ctx.State.Rollout = RolloutFailed
		return err
	}
}

// deploymentApplied reports whether the configured deployment name is part of
// the just-applied rendered object set.
func (p *rolloutPhase) deploymentApplied(ctx *Context) bool {
	for _, dc := range cluster.FilterByKind(ctx.State.Applied, deploymentConfigKind) {
		if dc.GetName() == ctx.Config.Prod.DCName {
			return true
		}
	}
	return false
}
