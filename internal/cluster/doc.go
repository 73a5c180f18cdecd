// Package cluster talks to the production OpenShift cluster.
//
// It applies rendered manifests with server-side apply, prunes objects by
// kind, and drives deployment config rollouts: triggering a new deployment
// via the instantiate subresource and polling the Progressing condition
// until the rollout succeeds, fails, or exceeds its deadline.
package cluster
