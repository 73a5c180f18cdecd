package cluster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	clienttesting "k8s.io/client-go/testing"
)

var (
	dcGVK = schema.GroupVersionKind{Group: "apps.openshift.io", Version: "v1", Kind: "DeploymentConfig"}
	bcGVK = schema.GroupVersionKind{Group: "build.openshift.io", Version: "v1", Kind: "BuildConfig"}
)

func newFakeCluster(t *testing.T, objs ...runtime.Object) (*Client, *dynamicfake.FakeDynamicClient) {
	t.Helper()

	fake := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
		runtime.NewScheme(),
		map[schema.GroupVersionResource]string{
			deploymentConfigGVR: "DeploymentConfigList",
			{Group: "build.openshift.io", Version: "v1", Resource: "buildconfigs"}: "BuildConfigList",
		},
		objs...,
	)

	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(dcGVK, meta.RESTScopeNamespace)
	mapper.Add(bcGVK, meta.RESTScopeNamespace)

	return New(fake, mapper), fake
}

const appManifests = `apiVersion: apps.openshift.io/v1
kind: DeploymentConfig
metadata:
  name: myapp
  namespace: myproject
---
apiVersion: build.openshift.io/v1
kind: BuildConfig
metadata:
  name: myapp-build
  namespace: myproject
`

func TestApplyManifests_AppliesEachDocument(t *testing.T) {
	client, fake := newFakeCluster(t)

	var patched []string
	fake.PrependReactor("patch", "*", func(action clienttesting.Action) (bool, runtime.Object, error) {
		patch := action.(clienttesting.PatchAction)
		patched = append(patched, patch.GetResource().Resource+"/"+patch.GetName())
		return true, &unstructured.Unstructured{}, nil
	})

	applied, err := client.ApplyManifests(context.Background(), []byte(appManifests))
	require.NoError(t, err)

	require.Len(t, applied, 2)
	assert.Equal(t, "DeploymentConfig", applied[0].GetKind())
	assert.Equal(t, "BuildConfig", applied[1].GetKind())
	assert.Equal(t, []string{"deploymentconfigs/myapp", "buildconfigs/myapp-build"}, patched)
}

func TestApplyManifests_SkipsEmptyDocuments(t *testing.T) {
	client, fake := newFakeCluster(t)
	fake.PrependReactor("patch", "*", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, &unstructured.Unstructured{}, nil
	})

	applied, err := client.ApplyManifests(context.Background(), []byte("---\n\n---\n"+appManifests))
	require.NoError(t, err)
	assert.Len(t, applied, 2)
}

func TestApplyManifests_UnknownKind(t *testing.T) {
	client, _ := newFakeCluster(t)

	_, err := client.ApplyManifests(context.Background(), []byte(`apiVersion: v1
kind: Widget
metadata:
  name: w
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REST mapping")
}

func TestDeleteByKind_DeletesOnlyMatchingKind(t *testing.T) {
	client, fake := newFakeCluster(t)
	fake.PrependReactor("patch", "*", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, &unstructured.Unstructured{}, nil
	})

	var deleted []string
	fake.PrependReactor("delete", "*", func(action clienttesting.Action) (bool, runtime.Object, error) {
		del := action.(clienttesting.DeleteAction)
		deleted = append(deleted, del.GetResource().Resource+"/"+del.GetName())
		return true, nil, nil
	})

	applied, err := client.ApplyManifests(context.Background(), []byte(appManifests))
	require.NoError(t, err)

	require.NoError(t, client.DeleteByKind(context.Background(), applied, "BuildConfig"))
	assert.Equal(t, []string{"buildconfigs/myapp-build"}, deleted)
}

func TestFilterByKind(t *testing.T) {
	objs := []unstructured.Unstructured{
		{Object: map[string]any{"kind": "DeploymentConfig", "metadata": map[string]any{"name": "a"}}},
		{Object: map[string]any{"kind": "BuildConfig", "metadata": map[string]any{"name": "b"}}},
		{Object: map[string]any{"kind": "Service", "metadata": map[string]any{"name": "c"}}},
	}

	dcs := FilterByKind(objs, "DeploymentConfig")
	require.Len(t, dcs, 1)
	assert.Equal(t, "a", dcs[0].GetName())

	assert.Empty(t, FilterByKind(objs, "Route"))
}
