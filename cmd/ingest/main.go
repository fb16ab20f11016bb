// Command ingest is the ClutchRank data ingestion CLI.
//
// Usage:
//
//	clutchrank-ingest matches --csv tournament_matches.csv --recompute
//	clutchrank-ingest recompute --normalize
//	clutchrank-ingest export --out ranking.json
//	clutchrank-ingest render --url https://rankings.example.com --out page.html
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clutchrank/clutchrank/internal/config"
	"github.com/clutchrank/clutchrank/internal/db"
	"github.com/clutchrank/clutchrank/internal/ingest"
	"github.com/clutchrank/clutchrank/internal/render"
	"github.com/clutchrank/clutchrank/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "clutchrank-ingest",
		Short: "ClutchRank data ingestion CLI",
	}

	root.AddCommand(matchesCmd())
	root.AddCommand(recomputeCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(renderCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// matches command
// --------------------------------------------------------------------------

func matchesCmd() *cobra.Command {
	var csvPath string
	var recompute, normalize bool
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Load a CSV match log into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()

				matches, parseResult, err := ingest.ParseMatchesFile(csvPath)
				if err != nil {
					return err
				}

				storeResult := ingest.StoreMatches(ctx, pool.Pool, matches)
				parseResult.Add(storeResult)

				if recompute {
					_, recomputeResult, err := ingest.Recompute(ctx, pool.Pool, normalize, logger)
					if err != nil {
						return err
					}
					parseResult.TeamsUpserted = recomputeResult.TeamsUpserted
					parseResult.Errors = append(parseResult.Errors, recomputeResult.Errors...)
				}

				logger.Info("Match ingest finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", parseResult.Summary())
				for _, e := range parseResult.Errors {
					logger.Error("ingest error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the CSV match log (required)")
	cmd.Flags().BoolVar(&recompute, "recompute", false, "Recompute rankings after loading")
	cmd.Flags().BoolVar(&normalize, "normalize", true, "Run the normalization pass during recompute")
	cmd.MarkFlagRequired("csv")
	return cmd
}

// --------------------------------------------------------------------------
// recompute command
// --------------------------------------------------------------------------

func recomputeCmd() *cobra.Command {
	var normalize bool
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Replay the stored match log and save a ranking snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				rankings, result, err := ingest.Recompute(ctx, pool.Pool, normalize, logger)
				if err != nil {
					return err
				}
				logger.Info("Recompute finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"teams", len(rankings),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("recompute error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&normalize, "normalize", true, "Run the normalization pass")
	return cmd
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the latest ranking snapshot to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				payload, takenAt, err := store.LatestSnapshot(ctx, pool.Pool)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, payload, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				logger.Info("Ranking exported", "path", out, "taken_at", takenAt)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "ranking.json", "Output path")
	return cmd
}

// --------------------------------------------------------------------------
// render command
// --------------------------------------------------------------------------

func renderCmd() *cobra.Command {
	var srcURL, srcFile, out string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a ranking.json into a standalone HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			var source render.Source
			switch {
			case srcURL != "":
				source = render.NewHTTPSource(srcURL, timeout)
			case srcFile != "":
				source = render.FileSource{Path: srcFile}
			default:
				return fmt.Errorf("one of --url or --file is required")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			pipeline := render.NewPipeline(source, logger)
			if err := pipeline.RunPage(ctx, f); err != nil {
				return err
			}
			logger.Info("Ranking page rendered", "path", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&srcURL, "url", "", "Base URL or direct URL of ranking.json")
	cmd.Flags().StringVar(&srcFile, "file", "", "Local ranking.json path")
	cmd.Flags().StringVar(&out, "out", "ranking.html", "Output HTML path")
	cmd.Flags().DurationVar(&timeout, "timeout", render.DefaultFetchTimeout, "Fetch timeout for --url")
	return cmd
}

// --------------------------------------------------------------------------
// shared runner
// --------------------------------------------------------------------------

// runWithDB loads config, connects a pool, and runs fn with interrupt
// handling. Migrations run first so a fresh database works out of the box.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
