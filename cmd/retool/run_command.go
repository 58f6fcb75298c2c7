package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"retool/internal/clonelist"
	"retool/internal/config"
	"retool/internal/history"
	"retool/internal/logging"
	"retool/internal/pipeline"
	"retool/internal/report"
)

type runFlags struct {
	output          string
	cloneLists      string
	filterLanguages bool
	noApplications  bool
	noDemos         bool
	noPreproduction bool
	noUnlicensed    bool
	noPirate        bool
	noBadDumps      bool
	noCompilations  bool
	legacy          bool
	keepRemove      bool
	workers         int
	noHistory       bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <dat-or-folder>",
		Short: "Create 1G1R dats from a dat file or a folder of dats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logging.NewComponentLogger(logger, "cli")

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var store *history.Store
			if cfg.Processing.RecordHistory {
				store, err = history.Open(runCtx, cfg.Paths.HistoryPath)
				if err != nil {
					logging.WarnWithContext(logger, "run history disabled", "history_unavailable",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "delete or move the history database"),
					)
					store = nil
				} else {
					defer store.Close()
				}
			}

			runner := pipeline.NewRunner(pipeline.OptionsFromConfig(cfg), pipeline.RunnerOptions{
				OutputDir:  cfg.Paths.OutputDir,
				KeepRemove: cfg.Options.KeepRemove,
				CloneLists: clonelist.NewStore(cfg.Paths.CloneListsDir, logger),
				History:    store,
			}, logger)

			outcomes, runErr := runner.Run(runCtx, args[0])
			out := cmd.OutOrStdout()
			if len(outcomes) > 0 {
				report.Write(out, outcomes, report.ShouldColorize(out))
			}
			if runErr != nil {
				return runErr
			}
			if failed := countFailed(outcomes); failed > 0 {
				return fmt.Errorf("%d of %d catalogs failed", failed, len(outcomes))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Folder for output dats (default: next to the input)")
	f.StringVar(&flags.cloneLists, "clone-lists", "", "Folder holding clone list JSON files")
	f.BoolVarP(&flags.filterLanguages, "languages", "l", false, "Filter by the configured language list")
	f.BoolVarP(&flags.noApplications, "no-applications", "a", false, "Remove applications")
	f.BoolVarP(&flags.noDemos, "no-demos", "d", false, "Remove demos and samples")
	f.BoolVarP(&flags.noPreproduction, "no-preproduction", "b", false, "Remove betas and prototypes")
	f.BoolVarP(&flags.noUnlicensed, "no-unlicensed", "u", false, "Remove unlicensed titles")
	f.BoolVarP(&flags.noPirate, "no-pirate", "p", false, "Remove pirate titles")
	f.BoolVarP(&flags.noBadDumps, "no-bad-dumps", "r", false, "Remove bad dumps")
	f.BoolVarP(&flags.noCompilations, "no-compilations", "c", false, "Remove compilations whose titles are all present")
	f.BoolVarP(&flags.legacy, "legacy", "x", false, "Keep clones in the output with cloneof")
	f.BoolVarP(&flags.keepRemove, "keep-remove", "y", false, "Write keep and remove list files")
	f.IntVar(&flags.workers, "workers", 0, "Parallel region passes (default from config)")
	f.BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history database")

	return cmd
}

// apply layers the command-line switches over cfg. Switches only turn
// options on; config values stay when a switch is absent.
func (f runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if out := strings.TrimSpace(f.output); out != "" {
		expanded, err := config.ExpandPath(out)
		if err != nil {
			return fmt.Errorf("resolve output folder: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if dir := strings.TrimSpace(f.cloneLists); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve clone list folder: %w", err)
		}
		cfg.Paths.CloneListsDir = expanded
	}
	opts := &cfg.Options
	opts.FilterLanguages = opts.FilterLanguages || f.filterLanguages
	opts.NoApplications = opts.NoApplications || f.noApplications
	opts.NoDemos = opts.NoDemos || f.noDemos
	opts.NoPreproduction = opts.NoPreproduction || f.noPreproduction
	opts.NoUnlicensed = opts.NoUnlicensed || f.noUnlicensed
	opts.NoPirate = opts.NoPirate || f.noPirate
	opts.NoBadDumps = opts.NoBadDumps || f.noBadDumps
	opts.NoCompilations = opts.NoCompilations || f.noCompilations
	opts.Legacy = opts.Legacy || f.legacy
	opts.KeepRemove = opts.KeepRemove || f.keepRemove
	if cmd.Flags().Changed("workers") {
		cfg.Processing.Workers = f.workers
	}
	if f.noHistory {
		cfg.Processing.RecordHistory = false
	}
	return cfg.Validate()
}

func countFailed(outcomes []pipeline.Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if o.Status == history.StatusFailed {
			failed++
		}
	}
	return failed
}
