// Package registry queries and tags image streams in the source registry.
//
// All calls go through the dynamic client so the tool does not depend on the
// OpenShift typed API surface; image stream tags are small, stable objects
// that are comfortable to handle unstructured.
package registry

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"
)

// LatestTag is the floating destination tag applied alongside the release
// version on every promotion.
const LatestTag = "latest"

// imageStreamTagGVR addresses image stream tags in the image API group.
var imageStreamTagGVR = schema.GroupVersionResource{
	Group:    "image.openshift.io",
	Version:  "v1",
	Resource: "imagestreamtags",
}

// Client performs image stream tag operations against the registry cluster.
type Client struct {
	dynamic dynamic.Interface
}

// NewFromKubeconfig creates a Client from a kubeconfig file scoped to the
// registry cluster. The session lives only for the stage group using it.
func NewFromKubeconfig(kubeconfigPath string) (*Client, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry kubeconfig: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry client: %w", err)
	}

	return &Client{dynamic: dynamicClient}, nil
}

// New creates a Client from an existing dynamic interface. Used by tests.
func New(dyn dynamic.Interface) *Client {
	return &Client{dynamic: dyn}
}

// HasTag reports whether stream:tag exists in the given project.
// It is a pure read and safe to retry.
func (c *Client) HasTag(ctx context.Context, project, stream, tag string) (bool, error) {
	name := fmt.Sprintf("%s:%s", stream, tag)

	_, err := c.dynamic.Resource(imageStreamTagGVR).Namespace(project).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up image stream tag %s/%s: %w", project, name, err)
	}

	return true, nil
}

// Tag makes the artifact behind stream:srcTag reachable as stream:dstTag.
// Tagging to an identical target is a safe no-op repeat, which makes the
// operation retryable across full pipeline re-runs.
func (c *Client) Tag(ctx context.Context, project, stream, srcTag, dstTag string) error {
	name := fmt.Sprintf("%s:%s", stream, dstTag)

	ist := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "image.openshift.io/v1",
		"kind":       "ImageStreamTag",
		"metadata": map[string]any{
			"name":      name,
			"namespace": project,
		},
		"tag": map[string]any{
			"name": dstTag,
			"from": map[string]any{
				"kind":      "ImageStreamTag",
				"name":      fmt.Sprintf("%s:%s", stream, srcTag),
				"namespace": project,
			},
			"referencePolicy": map[string]any{
				"type": "Source",
			},
		},
	}}

	_, err := c.dynamic.Resource(imageStreamTagGVR).Namespace(project).
		Create(ctx, ist, metav1.CreateOptions{})
	if err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create tag %s/%s: %w", project, name, err)
		}

		// Re-point an existing destination tag at the selected source.
		_, err = c.dynamic.Resource(imageStreamTagGVR).Namespace(project).
			Update(ctx, ist, metav1.UpdateOptions{})
		if err != nil {
			return fmt.Errorf("failed to update tag %s/%s: %w", project, name, err)
		}
	}

	return nil
}

// TagRelease applies both destination tags {releaseVersion, latest} to the
// artifact behind srcTag. A failure on either leaves the run failed; there is
// no partial-completion tracking, re-runs repeat both calls safely.
func (c *Client) TagRelease(ctx context.Context, project, stream, srcTag, releaseVersion string) error {
	for _, dst := range []string{releaseVersion, LatestTag} {
		if err := c.Tag(ctx, project, stream, srcTag, dst); err != nil {
			return err
		}
	}
	return nil
}
