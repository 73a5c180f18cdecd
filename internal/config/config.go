// Package config loads and validates the promotion configuration.
//
// Configuration comes from a YAML file (promotectl.yaml by default) and
// describes the source registry, the production target, and the notification
// settings for a promotion run. Timeout tuning lives in timeouts.go and is
// read from environment variables.
package config

// Config is the top-level promotion configuration.
type Config struct {
	// VersionFile is the tracked file containing the release version token.
	VersionFile string `yaml:"version_file"`

	// ReleaseVersionTag optionally pre-supplies the source tag to promote.
	// When empty the operator is prompted interactively.
	ReleaseVersionTag string `yaml:"release_version_tag"`

	// ImageStream is the image stream being promoted.
	ImageStream string `yaml:"image_stream"`

	Registry Registry `yaml:"registry"`
	Prod     Prod     `yaml:"prod"`
	Notify   Notify   `yaml:"notify"`

	// MetricsTextfile is an optional path where run metrics are written in
	// Prometheus text exposition format (node-exporter textfile collector).
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Registry identifies the source registry cluster and project.
type Registry struct {
	// URI is the registry cluster API endpoint.
	URI string `yaml:"uri"`

	// OpenShiftRegistryURI is the internal registry address templates
	// reference when pulling promoted images.
	OpenShiftRegistryURI string `yaml:"openshift_registry_uri"`

	// Project is the registry namespace holding the image stream.
	Project string `yaml:"project"`

	// Secret is the path to the kubeconfig granting registry-scoped access.
	Secret string `yaml:"secret"`
}

// Prod identifies the production cluster, project and deployment topology.
type Prod struct {
	// URI is the production cluster API endpoint.
	URI string `yaml:"uri"`

	// Project is the production namespace.
	Project string `yaml:"project"`

	// Secret is the path to the kubeconfig granting production-scoped access.
	Secret string `yaml:"secret"`

	// DCName is the deployment configuration rolled out after apply.
	DCName string `yaml:"dc_name"`

	// TemplatePath is the chart directory rendered with the release
	// parameters to produce the application objects.
	TemplatePath string `yaml:"template_path"`

	// BaseManifestPath optionally points at a static manifest applied
	// before the rendered template (namespaces, quotas, shared objects).
	BaseManifestPath string `yaml:"base_manifest_path"`
}

// Notify configures the post-run notification.
type Notify struct {
	EmailList []string `yaml:"email_list"`
	From      string   `yaml:"from"`
	ReplyTo   string   `yaml:"reply_to"`

	// SMTPAddr is the host:port of the mail relay. Mail is skipped when empty.
	SMTPAddr string `yaml:"smtp_addr"`

	// SlackWebhookURL optionally mirrors the notification to Slack.
	SlackWebhookURL string `yaml:"slack_webhook_url"`

	// DetailsURL links the notification to the run details (CI job, logs).
	DetailsURL string `yaml:"details_url"`

	// OnAbort controls whether a clean abort (nothing to promote) sends a
	// notification of its own. Defaults to false.
	OnAbort bool `yaml:"on_abort"`
}
