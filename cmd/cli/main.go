package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/internal/config"
	"github.com/emmalawson/stagecall/pkg/clients/sheetsclient"
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/csvstore"
	"github.com/emmalawson/stagecall/pkg/db"
	"github.com/emmalawson/stagecall/pkg/postgres"
	"github.com/emmalawson/stagecall/pkg/reporting"
	"github.com/emmalawson/stagecall/pkg/services"
	"github.com/emmalawson/stagecall/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg       *config.Config
	store     db.ProductionStore
	schedules db.ScheduleStore
	pg        *postgres.DB
	logger    *zap.Logger
	ctx       context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagecall",
		Short: "Stagecall CLI - Schedule dance rehearsals around availability constraints",
		Long:  `A CLI tool for validating availability constraints, analyzing conflicts, and generating rehearsal schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.pg != nil {
				app.pg.Close()
			}
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(conflictsCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(prioritiesCmd())
	rootCmd.AddCommand(analyzeTimeCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(expandSlotsCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the storage backend
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	return initStores()
}

// initStores picks the storage backend. PostgreSQL serves the whole
// pipeline including schedule history; the Sheets and CSV backends
// serve the input tables only, so schedule runs are not persisted.
func initStores() error {
	switch {
	case app.cfg.DatabaseURL != "":
		app.logger.Info("Connecting to PostgreSQL")
		pg, err := postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.pg = pg
		app.store = pg
		app.schedules = pg
		app.logger.Debug("Database connection established")

	case app.cfg.SchedulingSheetID != "":
		app.logger.Info("Initializing sheets client",
			zap.String("spreadsheet_id", app.cfg.SchedulingSheetID))
		client, err := sheetsclient.NewClient(app.ctx, app.cfg.CredentialsPath)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.store = sheetsclient.NewStore(client, app.cfg.SchedulingSheetID, sheetsclient.Tabs{
			Persons: app.cfg.SheetTabs.Persons,
			Groups:  app.cfg.SheetTabs.Groups,
			Slots:   app.cfg.SheetTabs.Slots,
		})
		app.logger.Debug("Sheets client initialized successfully")

	case app.cfg.CSVDir != "":
		app.logger.Info("Using CSV backend", zap.String("dir", app.cfg.CSVDir))
		persons, groups, slots := app.cfg.CSVPaths()
		app.store = csvstore.New(persons, groups, slots)

	default:
		return errors.New("config must set one of databaseURL, schedulingSheetID, or csvDir")
	}
	return nil
}

// Command definitions

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every person's availability constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.ValidateConstraints(app.ctx, app.store, app.logger, app.cfg.ProductionYear)
			if err != nil {
				return err
			}

			reporting.RenderValidation(os.Stdout, report)

			if report.Stats.HasErrors() {
				return fmt.Errorf("%d availability tokens failed to parse", report.Stats.Invalid)
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <token>",
		Short: "Check a single availability token against the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			app.logger.Debug("check command", zap.String("token", token))

			parser := grammar.NewParser(grammar.Options{ProductionYear: app.cfg.ProductionYear})
			constraint, err := parser.ParseToken(token)
			reporting.RenderTokenCheck(os.Stdout, token, constraint, err)

			if err != nil {
				return errors.New("token is invalid")
			}
			return nil
		},
	}
}

func conflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Show which slots each person cannot attend and why",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := services.AnalyzeConflicts(app.ctx, app.store, app.logger, app.cfg.ProductionYear)
			if err != nil {
				return err
			}

			reporting.RenderConflicts(os.Stdout, analysis)
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Classify every group against every slot and rank the groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.BuildCatalog(app.ctx, app.store, app.logger, app.cfg.ProductionYear, app.cfg.Epsilon)
			if err != nil {
				return err
			}

			reporting.RenderCatalog(os.Stdout, result)
			return nil
		},
	}
}

func prioritiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priorities",
		Short: "Rank the groups by scheduling priority, most constrained first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.BuildCatalog(app.ctx, app.store, app.logger, app.cfg.ProductionYear, app.cfg.Epsilon)
			if err != nil {
				return err
			}

			reporting.RenderPriorities(os.Stdout, result.Ranked, result.Analysis.Data.Production.Groups)
			return nil
		},
	}
}

func analyzeTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyzeTime",
		Short: "Compare requested rehearsal minutes with available venue time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := services.AnalyzeTime(app.ctx, app.store, app.logger)
			if err != nil {
				return err
			}

			reporting.RenderTimeAnalysis(os.Stdout, analysis)

			if analysis.HasDeficit() {
				return fmt.Errorf("venue time is %d minutes short of the requests", analysis.Deficit)
			}
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a rehearsal schedule from the current data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.logger.Info("schedule command", zap.Bool("dry_run", dryRun))

			schedules := app.schedules
			if dryRun {
				schedules = nil
			}

			result, err := services.GenerateSchedule(app.ctx, app.store, schedules, app.logger, app.cfg.ProductionYear, app.cfg.Epsilon)
			if err != nil {
				return err
			}

			reporting.RenderSchedule(os.Stdout, result)

			if result.Persisted {
				fmt.Printf("\n✓ Schedule persisted (run %s)\n", result.RunID)
			} else {
				fmt.Println("\nSchedule was not persisted; configure databaseURL to keep run history")
			}

			if len(result.Outcome.ValidationErrors) > 0 {
				return fmt.Errorf("generated schedule failed %d internal checks", len(result.Outcome.ValidationErrors))
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Generate without persisting the run")

	return cmd
}

func expandSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expandSlots",
		Short: "Expand recurring venue templates into dated slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ExpandVenueSlots(app.ctx, app.store, app.logger, app.cfg)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Expanded %d venue slots\n\n", len(result.Slots))
			for i, slot := range result.Slots {
				fmt.Printf("  %2d. %s\n", i+1, slot.ID)
			}
			fmt.Println()

			return nil
		},
	}
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs [run_id]",
		Short: "List persisted schedule runs (pass a run ID to see its entries)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.schedules == nil {
				return errors.New("run history requires databaseURL in the config")
			}

			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			history, err := services.ViewScheduleRuns(app.ctx, app.schedules, app.logger, runID)
			if err != nil {
				return err
			}

			reporting.RenderRunHistory(os.Stdout, history)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.pg == nil {
				return errors.New("migrate requires databaseURL in the config")
			}

			if err := app.pg.RunMigrations(app.ctx); err != nil {
				return err
			}

			fmt.Println("✓ Migrations applied")
			return nil
		},
	}
}
