package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		VersionFile: DefaultVersionFile,
		ImageStream: "myapp",
		Registry: Registry{
			URI:     "https://registry.example.com:8443",
			Project: "myproject",
			Secret:  "/secrets/registry.kubeconfig",
		},
		Prod: Prod{
			URI:          "https://prod.example.com:8443",
			Project:      "myproject",
			Secret:       "/secrets/prod.kubeconfig",
			DCName:       "myapp",
			TemplatePath: "deploy/app",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no image stream", func(c *Config) { c.ImageStream = "" }, "image_stream"},
		{"no registry project", func(c *Config) { c.Registry.Project = "" }, "registry.project"},
		{"no registry secret", func(c *Config) { c.Registry.Secret = "" }, "registry.secret"},
		{"no prod project", func(c *Config) { c.Prod.Project = "" }, "prod.project"},
		{"no prod secret", func(c *Config) { c.Prod.Secret = "" }, "prod.secret"},
		{"no dc name", func(c *Config) { c.Prod.DCName = "" }, "prod.dc_name"},
		{"no template path", func(c *Config) { c.Prod.TemplatePath = "" }, "prod.template_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_SMTPRequiresRecipients(t *testing.T) {
	cfg := validConfig()
	cfg.Notify.SMTPAddr = "mail.example.com:25"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email_list")

	cfg.Notify.EmailList = []string{"team@example.com"}
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "notify.from")

	cfg.Notify.From = "releases@example.com"
	assert.NoError(t, cfg.Validate())
}
