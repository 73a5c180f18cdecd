package config

import (
	"fmt"
	"strings"
)

// Validate checks that all fields required to drive a promotion run are set.
// Notification settings are intentionally optional: a run without a mail
// relay still promotes, it just logs the outcome locally.
func (c *Config) Validate() error {
	var missing []string

	if c.ImageStream == "" {
		missing = append(missing, "image_stream")
	}
	if c.Registry.Project == "" {
		missing = append(missing, "registry.project")
	}
	if c.Registry.Secret == "" {
		missing = append(missing, "registry.secret")
	}
	if c.Prod.Project == "" {
		missing = append(missing, "prod.project")
	}
	if c.Prod.Secret == "" {
		missing = append(missing, "prod.secret")
	}
	if c.Prod.DCName == "" {
		missing = append(missing, "prod.dc_name")
	}
	if c.Prod.TemplatePath == "" {
		missing = append(missing, "prod.template_path")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if c.Notify.SMTPAddr != "" {
		if len(c.Notify.EmailList) == 0 {
			return fmt.Errorf("notify.smtp_addr is set but notify.email_list is empty")
		}
		if c.Notify.From == "" {
			return fmt.Errorf("notify.smtp_addr is set but notify.from is empty")
		}
	}

	return nil
}
