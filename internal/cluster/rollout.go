package cluster

import (
	"context"
	"errors"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/wait"
)

// ErrRolloutFailed indicates the rollout reached a terminal failed state.
var ErrRolloutFailed = errors.New("rollout failed")

// ErrRolloutTimedOut indicates the rollout did not reach a terminal state
// within the configured bound.
var ErrRolloutTimedOut = errors.New("rollout timed out")

const (
	progressingCondition = "Progressing"
	newRCAvailableReason = "NewReplicationControllerAvailable"
)

// deploymentConfigGVR addresses deployment configurations in the apps API group.
var deploymentConfigGVR = schema.GroupVersionResource{
	Group:    "apps.openshift.io",
	Version:  "v1",
	Resource: "deploymentconfigs",
}

// RolloutLatest triggers a new rollout of the named deployment configuration
// to its latest revision. The trigger is not idempotent: each call starts a
// fresh rollout, so the pipeline issues exactly one per run.
func (c *Client) RolloutLatest(ctx context.Context, project, name string) error {
	req := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "apps.openshift.io/v1",
		"kind":       "DeploymentRequest",
		"name":       name,
		"latest":     true,
		"force":      true,
	}}

	_, err := c.dynamic.Resource(deploymentConfigGVR).Namespace(project).
		Create(ctx, req, metav1.CreateOptions{}, "instantiate")
	if err != nil {
		return fmt.Errorf("failed to trigger rollout of %s/%s: %w", project, name, err)
	}

	return nil
}

// WaitForRollout polls the deployment configuration until its rollout reaches
// a terminal state or the timeout elapses. Success and failure are observed
// from the Progressing condition, never inferred.
func (c *Client) WaitForRollout(ctx context.Context, project, name string, interval, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true,
		func(ctx context.Context) (bool, error) {
			dc, err := c.dynamic.Resource(deploymentConfigGVR).Namespace(project).
				Get(ctx, name, metav1.GetOptions{})
			if err != nil {
				// Transient read errors keep the poll going.
				return false, nil
			}

			status, reason := progressingStatus(dc)
			switch {
			case status == "True" && reason == newRCAvailableReason:
				return true, nil
			case status == "False":
				return false, fmt.Errorf("%w: %s/%s: %s", ErrRolloutFailed, project, name, reason)
			default:
				return false, nil
			}
		})

	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRolloutFailed) {
		return err
	}

	return fmt.Errorf("%w: %s/%s did not finish within %v", ErrRolloutTimedOut, project, name, timeout)
}

// progressingStatus extracts the status and reason of the Progressing
// condition from a deployment configuration.
func progressingStatus(dc *unstructured.Unstructured) (status, reason string) {
	conditions, found, err := unstructured.NestedSlice(dc.Object, "status", "conditions")
	if err != nil || !found {
		return "", ""
	}

	for _, c := range conditions {
		cond, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if cond["type"] != progressingCondition {
			continue
		}
		status, _ = cond["status"].(string)
		reason, _ = cond["reason"].(string)
		return status, reason
	}

	return "", ""
}
