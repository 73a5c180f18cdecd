package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
image_stream: myapp
registry:
  uri: https://registry.example.com:8443
  openshift_registry_uri: 172.30.1.1:5000
  project: myproject
  secret: /secrets/registry.kubeconfig
prod:
  uri: https://prod.example.com:8443
  project: myproject
  secret: /secrets/prod.kubeconfig
  dc_name: myapp
  template_path: deploy/app
  base_manifest_path: deploy/base.yaml
notify:
  email_list: [team@example.com]
  from: releases@example.com
  reply_to: noreply@example.com
  smtp_addr: mail.example.com:25
  details_url: https://ci.example.com/job/promote
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "promotectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Valid(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "myapp", cfg.ImageStream)
	assert.Equal(t, "myproject", cfg.Registry.Project)
	assert.Equal(t, "myapp", cfg.Prod.DCName)
	assert.Equal(t, []string{"team@example.com"}, cfg.Notify.EmailList)
	assert.False(t, cfg.Notify.OnAbort)
}

func TestLoadFile_DefaultVersionFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersionFile, cfg.VersionFile)
}

func TestLoadFile_ExplicitVersionFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "version_file: release/VERSION\n"+validYAML))
	require.NoError(t, err)
	assert.Equal(t, "release/VERSION", cfg.VersionFile)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "image_stream: [broken"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestLoadFile_ValidationFailure(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "image_stream: myapp\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
