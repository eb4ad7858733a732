package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
	"github.com/Resonia-Health/veilmail-go/internal/retry"
)

// app is the state shared by every subcommand once the root command has
// initialized.
type app struct {
	cfg    *Config
	logger zerolog.Logger
	client *veilmail.Client
	retry  *retry.Config

	// flags
	cfgFile  string
	apiKey   string
	baseURL  string
	logLevel string
	output   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "veilmail",
		Short: "Command line client for the VeilMail email API",
		Long: `veilmail sends email, manages domains and templates, validates
addresses and reads the audit log of a VeilMail account.

Configuration is read from ./veilmail.yaml or ~/.config/veilmail/veilmail.yaml,
then .env, then VEILMAIL_* environment variables, then flags.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.initialize,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./veilmail.yaml)")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides VEILMAIL_API_KEY)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format: text or json")

	root.AddCommand(
		newSendCmd(a),
		newDomainsCmd(a),
		newTemplatesCmd(a),
		newValidateCmd(a),
		newAuditLogsCmd(a),
		newInboundCmd(a),
	)
	return root
}

// initialize loads configuration and builds the client.
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = a.apiKey
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if a.output != "text" && a.output != "json" {
		return fmt.Errorf("invalid output format: %s", a.output)
	}
	if err := validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())

	a.client, err = veilmail.New(cfg.APIKey,
		veilmail.WithBaseURL(cfg.BaseURL),
		veilmail.WithTimeout(cfg.Timeout),
		veilmail.WithUserAgent("veilmail-cli/"+version),
		veilmail.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	a.retry = retry.DefaultConfig()
	a.retry.MaxRetries = cfg.Retry.MaxRetries
	a.retry.BaseDelay = cfg.Retry.BaseDelay
	a.retry.MaxDelay = cfg.Retry.MaxDelay

	if a.client.IsTestMode() {
		a.logger.Info().Msg("Using a test key; sends are accepted but not delivered")
	}
	return nil
}

// do runs fn under the configured retry policy, logging each retryable failure.
func (a *app) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, a.retry, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && a.retry.ShouldRetry(attempt, err) {
			a.logger.Warn().Err(err).Str("op", op).Int("attempt", attempt+1).Msg("Retrying")
		}
		attempt++
		return err
	})
}

// jsonOutput reports whether results should be printed as JSON.
func (a *app) jsonOutput() bool {
	return a.output == "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
