// Command outbox inspects and prunes the Spanner outbox_events table.
//
//	outbox list [-limit n] [-aggregate rebate-id]
//	outbox cleanup [-completed-retention days] [-failed-retention days] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/repo"
	"github.com/light-bringer/rebate-service/internal/config"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: outbox <list|cleanup> [flags]")
		os.Exit(2)
	}

	log, err := logger.New("info", "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(context.Background(), log, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("outbox command failed")
	}
}

func run(ctx context.Context, log zerolog.Logger, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database := cfg.SpannerDB
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	fs.StringVar(&database, "database", database, "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)")

	switch command {
	case "list":
		limit := fs.Int64("limit", 10, "number of recent events to show")
		aggregate := fs.String("aggregate", "", "only events of this rebate")
		if err := fs.Parse(args); err != nil {
			return err
		}
		outbox, closeFn, err := openOutbox(ctx, database)
		if err != nil {
			return err
		}
		defer closeFn()
		return list(ctx, outbox, *limit, *aggregate)

	case "cleanup":
		completedDays := fs.Int("completed-retention", 30, "retention days for completed events")
		failedDays := fs.Int("failed-retention", 90, "retention days for failed events")
		dryRun := fs.Bool("dry-run", false, "show what would be deleted without deleting")
		if err := fs.Parse(args); err != nil {
			return err
		}
		outbox, closeFn, err := openOutbox(ctx, database)
		if err != nil {
			return err
		}
		defer closeFn()
		cutoffs := retentionCutoffs(clock.NewRealClock().Now(), *completedDays, *failedDays)
		return cleanup(ctx, log, outbox, cutoffs, *dryRun)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func openOutbox(ctx context.Context, database string) (*repo.OutboxRepo, func(), error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	return repo.NewOutboxRepo(client), client.Close, nil
}

func retentionCutoffs(now time.Time, completedDays, failedDays int) repo.RetentionCutoffs {
	return repo.RetentionCutoffs{
		CompletedBefore: now.AddDate(0, 0, -completedDays),
		FailedBefore:    now.AddDate(0, 0, -failedDays),
	}
}

func list(ctx context.Context, outbox *repo.OutboxRepo, limit int64, aggregate string) error {
	var (
		events []*contracts.OutboxEvent
		err    error
	)
	if aggregate != "" {
		events, err = outbox.ListByAggregate(ctx, aggregate)
	} else {
		events, err = outbox.ListRecent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}
	for i, e := range events {
		fmt.Printf("%d. %s %s (aggregate: %s, status: %s)\n   %s\n", i+1, e.EventType, e.EventID, e.AggregateID, e.Status, e.Payload)
	}
	fmt.Printf("\nTotal: %d events\n", len(events))
	return nil
}

func cleanup(ctx context.Context, log zerolog.Logger, outbox *repo.OutboxRepo, cutoffs repo.RetentionCutoffs, dryRun bool) error {
	log.Info().
		Time("completed_cutoff", cutoffs.CompletedBefore).
		Time("failed_cutoff", cutoffs.FailedBefore).
		Bool("dry_run", dryRun).
		Msg("starting outbox cleanup")

	if dryRun {
		counts, err := outbox.CountExpired(ctx, cutoffs)
		if err != nil {
			return err
		}
		var total int64
		for status, n := range counts {
			log.Info().Str("status", status).Int64("count", n).Msg("would delete")
			total += n
		}
		log.Info().Int64("total", total).Msg("dry run complete")
		return nil
	}

	deleted, err := outbox.DeleteExpired(ctx, cutoffs)
	if err != nil {
		return err
	}
	log.Info().Int64("deleted", deleted).Msg("cleanup complete")
	return nil
}
