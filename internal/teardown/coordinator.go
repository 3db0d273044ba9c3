package teardown

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/sandbox-teardown/internal/platform/orchestration"
)

// Phase names.
const (
	PhaseDetails      = "details"
	PhaseRoutes       = "routes"
	PhaseResources    = "resources"
	PhaseConnectivity = "connectivity"
	PhaseArtifacts    = "artifacts"
)

const (
	defaultPowerOffCommand = "PowerOff"
	defaultPowerOffTag     = "power"
)

// ArtifactPurger deletes stored objects under a key prefix.
type ArtifactPurger interface {
	PurgePrefix(ctx context.Context, bucket, prefix string) (int, error)
}

// Coordinator tears down one reservation.
type Coordinator struct {
	api           orchestration.API
	reservationID string
	observer      Observer

	workers         int
	powerOffCommand string
	powerOffTag     string

	artifacts       ArtifactPurger
	artifactBucket  string
	artifactPrefix  string
	artifactTimeout time.Duration
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver sets the observer receiving logs and events.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observer = o
	}
}

// WithWorkers bounds the number of resources processed in parallel.
// Zero or less uses one worker per usable CPU.
func WithWorkers(n int) Option {
	return func(c *Coordinator) {
		c.workers = n
	}
}

// WithPowerOffCommand overrides the connected command used to power off
// resources that are kept.
func WithPowerOffCommand(name, tag string) Option {
	return func(c *Coordinator) {
		if name != "" {
			c.powerOffCommand = name
		}
		if tag != "" {
			c.powerOffTag = tag
		}
	}
}

// WithArtifactPurge enables the artifact purge phase. Objects under
// <prefix><reservation id>/ in bucket are deleted. A positive timeout bounds
// the phase.
func WithArtifactPurge(p ArtifactPurger, bucket, prefix string, timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.artifacts = p
		c.artifactBucket = bucket
		c.artifactPrefix = prefix
		c.artifactTimeout = timeout
	}
}

// NewCoordinator creates a coordinator for reservationID.
func NewCoordinator(api orchestration.API, reservationID string, opts ...Option) *Coordinator {
	c := &Coordinator{
		api:             api,
		reservationID:   reservationID,
		observer:        NewLogObserver(logr.Discard()),
		powerOffCommand: defaultPowerOffCommand,
		powerOffTag:     defaultPowerOffTag,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type phase struct {
	name string
	fn   func(context.Context) error
}

// run holds the state of a single Execute call.
type run struct {
	*Coordinator
	obs       Observer
	details   *orchestration.ReservationDetails
	announcer *announcer
	report    *Report
}

// Execute runs the teardown. Each phase completes before the next one
// starts. Tolerated failures are logged and written to the reservation
// output; the returned error is set only when a phase could not complete.
// The report is never nil.
func (c *Coordinator) Execute(ctx context.Context) (*Report, error) {
	start := time.Now()
	r := &run{
		Coordinator: c,
		obs:         c.observer.WithFields(map[string]string{"reservation": c.reservationID}),
		report:      &Report{ReservationID: c.reservationID},
	}
	r.announcer = newAnnouncer(r.write)

	err := r.execute(ctx)
	r.report.Duration = time.Since(start)
	recordRun(err)
	return r.report, err
}

func (r *run) execute(ctx context.Context) error {
	if err := r.runPhase(ctx, PhaseDetails, r.fetchDetails); err != nil {
		return err
	}

	if err := r.write(ctx, MsgBeginning); err != nil {
		return err
	}

	phases := []phase{
		{PhaseRoutes, r.disconnectRoutes},
		{PhaseResources, r.powerOffAndDeleteResources},
		{PhaseConnectivity, r.cleanupConnectivity},
	}
	if r.artifacts != nil {
		phases = append(phases, phase{PhaseArtifacts, r.purgeArtifacts})
	}

	for _, p := range phases {
		if err := r.runPhase(ctx, p.name, p.fn); err != nil {
			return err
		}
	}

	r.obs.Printf("Teardown for reservation %s completed", r.reservationID)
	return r.write(ctx, MsgFinished)
}

func (r *run) runPhase(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	LogPhaseStart(r.obs, name)

	err := fn(ctx)
	duration := time.Since(start)
	recordPhase(name, duration)
	r.report.Phases = append(r.report.Phases, PhaseResult{Name: name, Duration: duration, Err: err})

	if err != nil {
		LogPhaseFailed(r.obs, name, err)
		return fmt.Errorf("%s phase failed: %w", name, err)
	}
	LogPhaseComplete(r.obs, name, duration)
	return nil
}

func (r *run) fetchDetails(ctx context.Context) error {
	details, err := r.api.GetReservationDetails(ctx, r.reservationID)
	if orchestration.IsNotFound(err) {
		return fmt.Errorf("reservation %s not found: %w", r.reservationID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to get reservation details: %w", err)
	}
	r.details = details
	return nil
}

// write sends message to the reservation output.
func (r *run) write(ctx context.Context, message string) error {
	if err := r.api.WriteMessageToReservationOutput(ctx, r.reservationID, message); err != nil {
		return fmt.Errorf("failed to write to reservation output: %w", err)
	}
	return nil
}

// reportWarning writes a tolerated error to the reservation output and keeps it as
// a warning. A failing write is only logged.
func (r *run) reportWarning(ctx context.Context, message string) {
	r.report.Warnings = append(r.report.Warnings, message)
	if err := r.write(ctx, message); err != nil {
		r.obs.Printf("Could not report warning %q: %v", message, err)
	}
}
