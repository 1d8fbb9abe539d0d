package upload

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jordangarrison/aws-tools/internal/config"
	"github.com/jordangarrison/aws-tools/internal/dns"
	"github.com/jordangarrison/aws-tools/internal/route53"
)

// recordStore is the part of the Route 53 layer the engine uses.
type recordStore interface {
	ResolveZone(ctx context.Context, zone string) (string, error)
	Upsert(ctx context.Context, zoneID string, row dns.Row) error
}

// Engine pushes validated CSV rows into Route 53 one at a time.
type Engine struct {
	logger zerolog.Logger
	cfg    *config.UploadConfig
	store  recordStore
	dryRun bool
}

// NewEngine creates an upload engine. With dryRun set it previews every
// change and never calls AWS.
func NewEngine(logger zerolog.Logger, cfg *config.UploadConfig, store recordStore, dryRun bool) *Engine {
	return &Engine{
		logger: logger,
		cfg:    cfg,
		store:  store,
		dryRun: dryRun,
	}
}

// Run uploads every row, continuing past per-row failures so one bad row
// never blocks the rest of the file. Validation failures from the CSV read
// are folded into the summary up front. The returned error is non-nil only
// when the context is cancelled mid-run.
func (e *Engine) Run(ctx context.Context, rows []dns.Row, rowErrs []dns.RowError) (*Summary, error) {
	summary := &Summary{}

	for _, rowErr := range rowErrs {
		e.logger.Error().Err(&rowErr).Msgf("Skipping invalid row %d", rowErr.Line)
		summary.fail(rowErr.Line, rowErr.Error())
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		e.logger.Info().Msgf("Processing row %d: %s %s", row.Line, row.Env, row.Render())

		if e.dryRun {
			e.logger.Info().
				Str("zone", row.Zone).
				Str("fqdn", route53.FQDN(row.Name, row.Zone)).
				Str("type", string(row.Type)).
				Str("value", row.Value).
				Int64("ttl", row.TTL).
				Msg("DRY RUN: would upsert record")
			summary.Succeeded++
			continue
		}

		zoneID, err := e.store.ResolveZone(ctx, row.Zone)
		if err != nil {
			e.logger.Error().Err(err).Msgf("Failed row %d", row.Line)
			summary.fail(row.Line, err.Error())
			continue
		}

		if err := e.store.Upsert(ctx, zoneID, row); err != nil {
			e.logger.Error().Err(err).Msgf("Failed row %d", row.Line)
			summary.fail(row.Line, err.Error())
		} else {
			e.logger.Info().Msgf("Upserted %s", row.Render())
			summary.Succeeded++
		}

		// Small delay between change submissions to stay clear of API
		// rate limits. Nothing follows the last row, so no sleep there.
		if i < len(rows)-1 {
			if err := e.pause(ctx); err != nil {
				return summary, err
			}
		}
	}

	e.logger.Info().Msgf("Upload complete: %s", summary.Render())
	return summary, nil
}

func (e *Engine) pause(ctx context.Context) error {
	if e.cfg.RequestDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(e.cfg.RequestDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
