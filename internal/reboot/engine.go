package reboot

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jordangarrison/aws-tools/internal/config"
	"github.com/jordangarrison/aws-tools/internal/ec2"
)

// rebootableStates are the states a reboot call can act on. Anything else
// draws a warning before we try anyway.
var rebootableStates = map[string]bool{
	"running":  true,
	"stopping": true,
	"stopped":  true,
}

// instanceService is the part of the EC2 layer the engine uses.
type instanceService interface {
	ResolveName(ctx context.Context, name string) (string, error)
	Describe(ctx context.Context, instanceID string) (*ec2.Instance, error)
	Reboot(ctx context.Context, instanceID string) error
	StatusOK(ctx context.Context, instanceID string) (bool, error)
}

// Target identifies the instance to reboot, by ID or by Name tag.
type Target struct {
	InstanceID string
	Name       string
}

// Engine coordinates target resolution, the reboot call, and the optional
// wait for status checks.
type Engine struct {
	logger  zerolog.Logger
	cfg     *config.RebootConfig
	service instanceService
	waiter  *Waiter
	dryRun  bool
	wait    bool
}

// NewEngine creates a reboot engine. With dryRun set it resolves and
// describes the target but never reboots it.
func NewEngine(logger zerolog.Logger, cfg *config.RebootConfig, service instanceService, dryRun, wait bool) *Engine {
	return &Engine{
		logger:  logger,
		cfg:     cfg,
		service: service,
		waiter:  NewWaiter(logger, service, cfg.PollInterval, cfg.WaitTimeout),
		dryRun:  dryRun,
		wait:    wait,
	}
}

// Run resolves the target, reboots it, and optionally waits for it to come
// back healthy.
func (e *Engine) Run(ctx context.Context, target Target) error {
	if target.InstanceID == "" && target.Name == "" {
		return errors.New("no instance ID or name given")
	}

	instanceID := target.InstanceID
	if target.Name != "" {
		id, err := e.service.ResolveName(ctx, target.Name)
		if err != nil {
			return err
		}
		instanceID = id
	}

	instance, err := e.service.Describe(ctx, instanceID)
	if err != nil {
		return err
	}

	logger := e.logger.With().Str("instance_id", instance.ID).Logger()
	logger.Info().
		Str("name", instance.Name).
		Str("state", instance.State).
		Str("type", instance.Type).
		Str("az", instance.AZ).
		Msg("Resolved instance")
	if !rebootableStates[instance.State] {
		logger.Warn().Msgf("Instance is in %q state, reboot may not work as expected", instance.State)
	}

	if e.dryRun {
		logger.Info().Msg("DRY RUN: would reboot instance")
		return nil
	}

	if err := e.service.Reboot(ctx, instanceID); err != nil {
		return err
	}
	logger.Info().Msg("Reboot initiated")

	if !e.wait {
		return nil
	}
	return e.waiter.Wait(ctx, instanceID)
}
