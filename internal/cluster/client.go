package cluster

import (
	"bytes"
	"context"
	"fmt"
	"io"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// FieldManager identifies this tool in server-side apply operations.
const FieldManager = "promotectl"

// Client performs production cluster operations through the dynamic client.
type Client struct {
	dynamic dynamic.Interface
	mapper  meta.RESTMapper
}

// NewFromKubeconfig creates a Client from a kubeconfig file scoped to the
// production cluster. The session lives only for the stage group using it.
func NewFromKubeconfig(kubeconfigPath string) (*Client, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build production kubeconfig: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return nil, fmt.Errorf("failed to discover API groups: %w", err)
	}

	return &Client{
		dynamic: dynamicClient,
		mapper:  restmapper.NewDiscoveryRESTMapper(groupResources),
	}, nil
}

// New creates a Client from existing interfaces. Used by tests.
func New(dyn dynamic.Interface, mapper meta.RESTMapper) *Client {
	return &Client{dynamic: dyn, mapper: mapper}
}

// ApplyManifests applies multi-document YAML using Server-Side Apply and
// returns the set of objects that were applied, in document order. Apply is
// an idempotent upsert; re-running the same manifests is safe.
func (c *Client) ApplyManifests(ctx context.Context, manifests []byte) ([]unstructured.Unstructured, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifests), 4096)

	var applied []unstructured.Unstructured
	docIndex := 0
	for {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode manifest document %d: %w", docIndex, err)
		}

		// Skip empty documents (common in multi-doc YAML)
		if len(obj.Object) == 0 {
			docIndex++
			continue
		}

		if err := c.applyObject(ctx, &obj); err != nil {
			return nil, fmt.Errorf("failed to apply %s %s/%s: %w",
				obj.GetKind(), obj.GetNamespace(), obj.GetName(), err)
		}

		applied = append(applied, obj)
		docIndex++
	}

	return applied, nil
}

// applyObject applies a single unstructured object using Server-Side Apply.
func (c *Client) applyObject(ctx context.Context, obj *unstructured.Unstructured) error {
	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" {
		return fmt.Errorf("object has no kind set")
	}

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
	}

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal object to JSON: %w", err)
	}

	opts := metav1.PatchOptions{FieldManager: FieldManager}

	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		namespace := obj.GetNamespace()
		if namespace == "" {
			namespace = "default"
		}
		_, err = c.dynamic.Resource(mapping.Resource).Namespace(namespace).
			Patch(ctx, obj.GetName(), types.ApplyPatchType, data, opts)
	} else {
		_, err = c.dynamic.Resource(mapping.Resource).
			Patch(ctx, obj.GetName(), types.ApplyPatchType, data, opts)
	}

	if err != nil {
		return fmt.Errorf("server-side apply failed: %w", err)
	}

	return nil
}

// DeleteByKind deletes every object of the given kind from the applied set.
// Production never builds images locally, so build configurations carried by
// the template are pruned right after apply. NotFound is tolerated.
func (c *Client) DeleteByKind(ctx context.Context, objs []unstructured.Unstructured, kind string) error {
	for i := range objs {
		obj := &objs[i]
		if obj.GetKind() != kind {
			continue
		}

		gvk := obj.GroupVersionKind()
		mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
		if err != nil {
			return fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
		}

		namespace := obj.GetNamespace()
		if namespace == "" && mapping.Scope.Name() == meta.RESTScopeNameNamespace {
			namespace = "default"
		}

		err = c.dynamic.Resource(mapping.Resource).Namespace(namespace).
			Delete(ctx, obj.GetName(), metav1.DeleteOptions{})
		if err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete %s %s/%s: %w", kind, namespace, obj.GetName(), err)
		}
	}

	return nil
}

// FilterByKind returns the objects of the given kind from the applied set.
func FilterByKind(objs []unstructured.Unstructured, kind string) []unstructured.Unstructured {
	var out []unstructured.Unstructured
	for _, obj := range objs {
		if obj.GetKind() == kind {
			out = append(out, obj)
		}
	}
	return out
}
