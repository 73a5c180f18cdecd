// Package promotion drives the release-promotion pipeline.
//
// A run is a fixed sequence of phases: resolve the release version, obtain
// the source tag through the approval gate, verify the tag exists in the
// source registry, re-tag it as {version, latest}, apply the production
// topology, prune build configurations, trigger exactly one rollout and wait
// for it to finish. Each phase strictly follows the previous one's successful
// completion; a missing artifact aborts the run cleanly, every other failure
// is fatal and surfaces to the notification step.
package promotion
