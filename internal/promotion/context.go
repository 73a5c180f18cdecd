package promotion

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/promokit/promotectl/internal/config"
	"github.com/promokit/promotectl/internal/template"
)

// RegistryClient is the registry-scoped capability used by the existence
// check and tagging phases.
type RegistryClient interface {
	HasTag(ctx context.Context, project, stream, tag string) (bool, error)
	TagRelease(ctx context.Context, project, stream, srcTag, releaseVersion string) error
}

// ProductionClient is the production-scoped capability used by the apply and
// rollout phases.
type ProductionClient interface {
	ApplyManifests(ctx context.Context, manifests []byte) ([]unstructured.Unstructured, error)
	DeleteByKind(ctx context.Context, objs []unstructured.Unstructured, kind string) error
	RolloutLatest(ctx context.Context, project, name string) error
	WaitForRollout(ctx context.Context, project, name string, interval, timeout time.Duration) error
}

// Sessions acquires the per-stage-group capability handles. Each stage group
// establishes and tears down its own session; a credential expiring in one
// group cannot affect a group already completed.
type Sessions interface {
	Registry() (RegistryClient, error)
	Production() (ProductionClient, error)
}

// TagResolver resolves the source tag to promote (the approval gate).
type TagResolver interface {
	SourceTag(ctx context.Context, releaseVersion string) (string, error)
}

// RenderFunc renders the application template with the promotion parameters.
type RenderFunc func(chartPath, releaseName, namespace string, params template.Params) ([]byte, error)

// State holds the shared results of pipeline phases.
// It is progressively populated as each phase completes and is passed to
// subsequent phases that need earlier results.
type State struct {
	// ReleaseVersion is the destination tag read from the tracked file.
	ReleaseVersion string

	// SourceTag is the tag selected by the approval gate.
	SourceTag string

	// Applied is the rendered object set applied to production, used for
	// kind narrowing (build-config pruning, rollout target selection).
	Applied []unstructured.Unstructured

	// Rollout tracks the rollout sub-machine.
	Rollout RolloutState

	// RolloutDuration is how long the rollout verification wait took.
	RolloutDuration time.Duration
}

// NewState creates the initial run state.
func NewState(releaseVersion, sourceTag string) *State {
	return &State{
		ReleaseVersion: releaseVersion,
		SourceTag:      sourceTag,
		Rollout:        RolloutNotStarted,
	}
}

// Context wraps all dependencies and state needed by a pipeline phase.
type Context struct {
	context.Context
	Config   *config.Config
	Timeouts *config.Timeouts
	State    *State
	Observer Observer
}
