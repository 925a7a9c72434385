// Command dugout-ingest reconciles historical league workbooks into Postgres.
//
// Usage:
//
//	dugout-ingest import --file archives/2024.xlsx --year 2024
//	dugout-ingest import --file archives/2015.xlsx --year 2015 --dry-run
//	dugout-ingest inspect --file archives/2011.xlsx --year 2011
//	dugout-ingest kb
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

	"github.com/dugoutclub/dugout-data/internal/archive"
	"github.com/dugoutclub/dugout-data/internal/config"
	"github.com/dugoutclub/dugout-data/internal/db"
	"github.com/dugoutclub/dugout-data/internal/store"
	"github.com/dugoutclub/dugout-data/internal/workbook"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "dugout-ingest",
		Short: "Historical league archive reconciliation CLI",
	}

	root.AddCommand(importCmd())
	root.AddCommand(inspectCmd())
	root.AddCommand(kbCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var (
		file     string
		year     int
		dryRun   bool
		verbose  bool
		auditDir string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import one season workbook into the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || year == 0 {
				return fmt.Errorf("--file and --year are required")
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				wb, err := workbook.OpenFile(file)
				if err != nil {
					return fmt.Errorf("open workbook: %w", err)
				}
				defer wb.Close()

				if auditDir == "" {
					auditDir = cfg.AuditDir
				}
				engine := &archive.Engine{
					Teams:    archive.NewTeamResolver(archive.DefaultAliases),
					Store:    st,
					Logger:   logger,
					LeagueID: cfg.LeagueID,
					AuditDir: auditDir,
					DryRun:   dryRun,
				}

				start := time.Now()
				res := engine.Run(ctx, wb, year)
				logger.Info("import finished",
					"file", file, "year", year,
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", res.Summary())

				if verbose {
					for _, m := range res.Messages {
						fmt.Println(m)
					}
				}
				if !res.Success {
					return fmt.Errorf("import of %s failed: %s", file, res.Summary())
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the season workbook (.xlsx)")
	cmd.Flags().IntVar(&year, "year", 0, "Season year the workbook covers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve and audit without writing to the database")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the full decision log")
	cmd.Flags().StringVar(&auditDir, "audit-dir", "", "Audit output directory (default AUDIT_DIR)")
	return cmd
}

// --------------------------------------------------------------------------
// inspect command
// --------------------------------------------------------------------------

// inspect runs classification, period resolution, and layout detection
// without a database. Useful for eyeballing a workbook before importing it.
func inspectCmd() *cobra.Command {
	var (
		file string
		year int
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Classify a workbook's sheets and resolve periods without importing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || year == 0 {
				return fmt.Errorf("--file and --year are required")
			}
			wb, err := workbook.OpenFile(file)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer wb.Close()

			res := &archive.Result{Success: true}
			teams := archive.NewTeamResolver(archive.DefaultAliases)

			cls := archive.ClassifySheets(wb.SheetNames(), year)
			fmt.Printf("draft sheet:     %q\n", cls.DraftSheet)
			fmt.Printf("standings sheet: %q\n", cls.StandingsSheet)
			fmt.Printf("ignored:         %v\n", cls.Ignored)

			periods := archive.ResolvePeriods(cls, year, res)
			fmt.Printf("\nperiods (%d):\n", len(periods))
			for _, p := range periods {
				fmt.Printf("  %d: %s .. %s  (sheet %q)\n",
					p.Number, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.SourceSheet)
			}

			fmt.Println("\nlayouts:")
			for _, p := range periods {
				rows, err := wb.Rows(p.SourceSheet)
				if err != nil {
					fmt.Printf("  %q: read error: %v\n", p.SourceSheet, err)
					continue
				}
				if layout, ok := archive.DetectGridLayout(rows, teams, p.SourceSheet == cls.DraftSheet, res); ok {
					fmt.Printf("  %q: %s (%d team columns)\n", p.SourceSheet, layout.Mode, len(layout.TeamColumns))
				} else if headerRow, ok := archive.FindVerticalHeader(rows); ok {
					fmt.Printf("  %q: vertical (header row %d)\n", p.SourceSheet, headerRow+1)
				} else {
					fmt.Printf("  %q: no layout detected\n", p.SourceSheet)
				}
			}

			fmt.Println("\ndecision log:")
			for _, m := range res.Messages {
				fmt.Println("  " + m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the season workbook (.xlsx)")
	cmd.Flags().IntVar(&year, "year", 0, "Season year the workbook covers")
	return cmd
}

// --------------------------------------------------------------------------
// kb command
// --------------------------------------------------------------------------

func kbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Dump the player identity knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				identities, err := st.LoadKnowledgeBase(ctx, cfg.LeagueID)
				if err != nil {
					return fmt.Errorf("load knowledge base: %w", err)
				}
				for _, id := range identities {
					kind := "hitter"
					if id.Pitcher {
						kind = "pitcher"
					}
					fmt.Printf("%-30s -> %-30s %-8s %-4s %s\n",
						id.RawName, id.FullName, id.Position, id.TeamCode, kind)
				}
				logger.Info("knowledge base dumped", "league", cfg.LeagueID, "identities", len(identities))
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, DB connection, and context cancellation.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, st *store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, store.New(pool))
}
