// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of the CLI
// framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/promokit/promotectl/internal/approval"
	"github.com/promokit/promotectl/internal/cluster"
	"github.com/promokit/promotectl/internal/config"
	"github.com/promokit/promotectl/internal/metrics"
	"github.com/promokit/promotectl/internal/notify"
	"github.com/promokit/promotectl/internal/promotion"
	"github.com/promokit/promotectl/internal/registry"
	"github.com/promokit/promotectl/internal/template"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file.
	findConfigFile = config.FindConfigFile

	// loadTimeouts loads timeout configuration from the environment.
	loadTimeouts = config.LoadTimeouts

	// newSessions creates the per-stage-group session factory.
	newSessions = func(cfg *config.Config) promotion.Sessions {
		return &clusterSessions{cfg: cfg}
	}

	// renderTemplate renders the application template.
	renderTemplate promotion.RenderFunc = template.Render
)

// Promote drives a full promotion run.
//
// The source tag comes from (highest precedence first) the --tag flag, the
// release_version_tag config field, or the interactive approval prompt. The
// run result maps to the exit status: released and a clean abort both exit
// zero, any fatal error exits non-zero.
func Promote(ctx context.Context, configPath, sourceTag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if sourceTag != "" {
		cfg.ReleaseVersionTag = sourceTag
	}

	timeouts := loadTimeouts()

	orchestrator := &promotion.Orchestrator{
		Config:   cfg,
		Timeouts: timeouts,
		Sessions: newSessions(cfg),
		Gate: &approval.Gate{
			Preset:  cfg.ReleaseVersionTag,
			Timeout: timeouts.Approval,
		},
		Render:   renderTemplate,
		Notifier: buildNotifier(cfg),
		Metrics:  metrics.NewRecorder(),
		Observer: promotion.NewConsoleObserver(),
	}

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("promotion failed: %w", err)
	}

	switch result {
	case promotion.ResultAborted:
		log.Printf("promotion aborted cleanly: nothing to promote")
	default:
		log.Printf("promotion complete: %s is live in production", cfg.ImageStream)
	}

	return nil
}

// loadConfig resolves and loads the promotion configuration.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w (create %s or pass --config)",
				err, config.DefaultConfigFile)
		}
		configPath = found
	}

	return loadConfigFile(configPath)
}

// buildNotifier assembles the notification sinks from config.
// Returns nil when no sink is configured.
func buildNotifier(cfg *config.Config) notify.Notifier {
	var sinks notify.Multi

	if cfg.Notify.SMTPAddr != "" {
		sinks = append(sinks, &notify.Mailer{
			Addr:    cfg.Notify.SMTPAddr,
			From:    cfg.Notify.From,
			ReplyTo: cfg.Notify.ReplyTo,
			To:      cfg.Notify.EmailList,
		})
	}

	if cfg.Notify.SlackWebhookURL != "" {
		sinks = append(sinks, &notify.Slack{WebhookURL: cfg.Notify.SlackWebhookURL})
	}

	if len(sinks) == 0 {
		return nil
	}
	return sinks
}

// clusterSessions acquires scoped capability handles per stage group.
type clusterSessions struct {
	cfg *config.Config
}

func (s *clusterSessions) Registry() (promotion.RegistryClient, error) {
	return registry.NewFromKubeconfig(s.cfg.Registry.Secret)
}

func (s *clusterSessions) Production() (promotion.ProductionClient, error) {
	return cluster.NewFromKubeconfig(s.cfg.Prod.Secret)
}
