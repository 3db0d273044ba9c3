package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/sandbox-teardown/internal/config"
	"github.com/imamik/sandbox-teardown/internal/logging"
	"github.com/imamik/sandbox-teardown/internal/metrics"
	"github.com/imamik/sandbox-teardown/internal/platform/orchestration"
	"github.com/imamik/sandbox-teardown/internal/platform/s3"
	"github.com/imamik/sandbox-teardown/internal/teardown"
	"github.com/imamik/sandbox-teardown/internal/ui"
)

// TeardownOptions holds the teardown command flags. Set flags override the
// configuration file and environment.
type TeardownOptions struct {
	ConfigPath    string
	ReservationID string
	DryRun        bool
	Yes           bool
	LogFormat     string
	LogLevel      string
}

// ArtifactStore lists and purges reservation artifacts.
type ArtifactStore interface {
	teardown.ArtifactPurger
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Factory function variables for teardown - can be replaced in tests.
var (
	loadConfig   = config.Load
	loadTimeouts = config.LoadTimeouts
	newLogger    = logging.New

	// newAPIClient creates the orchestration API client.
	newAPIClient = func(cfg *config.Config, timeouts *config.Timeouts, log logr.Logger) orchestration.API {
		return orchestration.NewRealClient(orchestration.Options{
			BaseURL:            cfg.API.URL,
			Token:              cfg.API.Token,
			Domain:             cfg.API.Domain,
			Timeout:            timeouts.APIRequest,
			InsecureSkipVerify: cfg.API.InsecureSkipVerify,
			Logger:             log,
		})
	}

	// newArtifactStore creates the object storage client for artifact purges.
	newArtifactStore = func(cfg config.ArtifactsConfig) (ArtifactStore, error) {
		client, err := s3.NewClient(cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// confirmTeardown asks the user before a destructive run.
	confirmTeardown = confirmInteractive

	// isInteractive reports whether a user can answer a prompt.
	isInteractive = func() bool {
		return isTTY(os.Stdin) && isTTY(os.Stdout)
	}

	pushMetrics = metrics.Push

	// output receives the rendered report.
	output io.Writer = os.Stdout
)

// Teardown handles the teardown command.
//
// It loads the configuration, asks for confirmation when running
// interactively, tears the reservation down and prints a summary. Metrics
// are pushed when a Pushgateway is configured.
func Teardown(ctx context.Context, opts TeardownOptions) error {
	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeouts, err := loadTimeouts(ctx)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	log = log.WithValues("reservation", cfg.ReservationID)

	dryRun := cfg.Teardown.DryRun
	if !opts.Yes && !dryRun && isInteractive() {
		ok, err := confirmTeardown(ctx, cfg.ReservationID)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("Teardown cancelled")
			return nil
		}
	}

	if timeouts.Run > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeouts.Run)
		defer cancel()
	}

	coordinator, err := buildCoordinator(cfg, timeouts, log)
	if err != nil {
		return err
	}

	log.Info("Starting teardown", "dryRun", dryRun)
	report, runErr := coordinator.Execute(ctx)

	fmt.Fprint(output, ui.RenderReport(report, ui.RenderOptions{DryRun: dryRun, Err: runErr}))

	if cfg.Metrics.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.MetricsPush)
		defer cancel()
		if err := pushMetrics(pushCtx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, cfg.ReservationID); err != nil {
			// Don't fail the teardown for metrics issues
			log.Error(err, "Failed to push metrics")
		}
	}

	if runErr != nil {
		return fmt.Errorf("teardown failed: %w", runErr)
	}
	return nil
}

func applyFlags(cfg *config.Config, opts TeardownOptions) {
	if opts.ReservationID != "" {
		cfg.ReservationID = opts.ReservationID
	}
	if opts.DryRun {
		cfg.Teardown.DryRun = true
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

func buildCoordinator(cfg *config.Config, timeouts *config.Timeouts, log logr.Logger) (*teardown.Coordinator, error) {
	api := newAPIClient(cfg, timeouts, log.WithName("api"))
	if cfg.Teardown.DryRun {
		api = orchestration.NewDryRunClient(api, log.WithName("api"))
	}

	opts := []teardown.Option{
		teardown.WithObserver(teardown.NewLogObserver(log.WithName("teardown"))),
		teardown.WithWorkers(cfg.Teardown.Workers),
		teardown.WithPowerOffCommand(cfg.Teardown.PowerOffCommand, cfg.Teardown.PowerOffTag),
	}

	if cfg.Artifacts.Enabled {
		store, err := newArtifactStore(cfg.Artifacts)
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact store: %w", err)
		}
		var purger teardown.ArtifactPurger = store
		if cfg.Teardown.DryRun {
			purger = &dryRunPurger{store: store, log: log.WithName("artifacts")}
		}
		opts = append(opts, teardown.WithArtifactPurge(purger, cfg.Artifacts.Bucket, cfg.Artifacts.Prefix, timeouts.ArtifactPurge))
	}

	return teardown.NewCoordinator(api, cfg.ReservationID, opts...), nil
}

// dryRunPurger lists the artifacts a purge would delete without deleting
// them.
type dryRunPurger struct {
	store ArtifactStore
	log   logr.Logger
}

func (p *dryRunPurger) PurgePrefix(ctx context.Context, bucket, prefix string) (int, error) {
	keys, err := p.store.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return 0, err
	}
	p.log.Info("would purge artifacts", "bucket", bucket, "prefix", prefix, "objects", len(keys))
	return 0, nil
}

func confirmInteractive(ctx context.Context, reservationID string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Tear down reservation %s?", reservationID)).
				Description("Routes are disconnected and deployed apps are powered off or deleted.").
				Affirmative("Tear down").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return confirmed, nil
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
