// Package template renders the parameterized application template into
// deployable manifests using the helm engine.
package template

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"
)

// Params are the values bound into the application template for a promotion.
type Params struct {
	// Tag is the destination release version the deployment references.
	Tag string

	// ImageStreamTag is the image stream tag the deployment tracks.
	ImageStreamTag string

	// Registry is the internal registry address images are pulled from.
	Registry string

	// RegistryProject is the registry namespace holding the image stream.
	RegistryProject string
}

// values exposes the parameters to chart templates under .Values.
func (p Params) values() chartutil.Values {
	return chartutil.Values{
		"tag":             p.Tag,
		"imageStreamTag":  p.ImageStreamTag,
		"registry":        p.Registry,
		"registryProject": p.RegistryProject,
	}
}

// Render loads the chart at chartPath and renders it with the promotion
// parameters, returning combined multi-document YAML.
func Render(chartPath, releaseName, namespace string, params Params) ([]byte, error) {
	loadedChart, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load template chart: %w", err)
	}

	manifests, err := renderChart(loadedChart, releaseName, namespace, params.values())
	if err != nil {
		return nil, fmt.Errorf("failed to render template chart: %w", err)
	}

	return manifests, nil
}

// renderChart uses the helm engine to render the chart with values.
func renderChart(ch *chart.Chart, releaseName, namespace string, values chartutil.Values) ([]byte, error) {
	releaseOptions := chartutil.ReleaseOptions{
		Name:      releaseName,
		Namespace: namespace,
		IsInstall: true,
	}

	valuesToRender, err := chartutil.ToRenderValues(ch, values, releaseOptions, chartutil.DefaultCapabilities.Copy())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare values: %w", err)
	}

	eng := engine.Engine{}
	rendered, err := eng.Render(ch, valuesToRender)
	if err != nil {
		return nil, fmt.Errorf("failed to render templates: %w", err)
	}

	names := make([]string, 0, len(rendered))
	for name := range rendered {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined bytes.Buffer
	for _, name := range names {
		if filepath.Base(name) == "NOTES.txt" {
			continue
		}

		trimmed := strings.TrimSpace(rendered[name])
		if trimmed == "" {
			continue
		}

		if combined.Len() > 0 {
			combined.WriteString("\n---\n")
		}
		combined.WriteString(trimmed)
		combined.WriteString("\n")
	}

	return combined.Bytes(), nil
}
