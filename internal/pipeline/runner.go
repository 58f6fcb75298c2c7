package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"retool/internal/audit"
	"retool/internal/catalog"
	"retool/internal/clonelist"
	"retool/internal/datfile"
	"retool/internal/history"
	"retool/internal/logging"
)

const lockFileName = ".retool.lock"

// ErrOutputLocked reports an output folder held by another run.
var ErrOutputLocked = errors.New("output folder is locked by another retool run")

// RunnerOptions configures a batch runner.
type RunnerOptions struct {
	// OutputDir receives the reduced dats. Empty writes next to each input.
	OutputDir string
	// KeepRemove also writes the audit list files.
	KeepRemove bool
	// CloneLists loads per-catalog overrides. Nil means no overrides.
	CloneLists *clonelist.Store
	// History records one row per catalog. Nil disables recording.
	History *history.Store
}

// Outcome is the result of one dat file.
type Outcome struct {
	RunID     string
	Source    string
	Catalog   string
	Output    string
	ListFiles []string
	Stats     Stats
	Warnings  []audit.Warning
	Status    history.Status
	Err       error
	Started   time.Time
	Finished  time.Time
}

// Runner processes dat files and writes their reduced forms.
type Runner struct {
	processor *Processor
	procOpts  Options
	opts      RunnerOptions
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner returns a runner that reduces catalogs with procOpts.
func NewRunner(procOpts Options, opts RunnerOptions, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		processor: NewProcessor(procOpts, logger),
		procOpts:  procOpts,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "runner"),
		now:       time.Now,
	}
}

// Run processes input, a dat file or a folder of dat files. A single file
// that fails returns its error. In folder mode failing catalogs are logged
// and skipped, and cancellation stops the batch between files.
func (r *Runner) Run(ctx context.Context, input string) ([]Outcome, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("inspect input: %w", err)
	}
	files := []string{input}
	inputDir := filepath.Dir(input)
	if info.IsDir() {
		inputDir = input
		files, err = DatFiles(input)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no dat files in %s", input)
		}
	}

	outputDir := r.opts.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = inputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, outputDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release output lock", logging.Error(err))
		}
		_ = os.Remove(lock.Path())
	}()

	batchID := history.NewID()
	outcomes := make([]Outcome, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome := r.processFile(ctx, path, outputDir)
		r.record(ctx, batchID, &outcome)
		outcomes = append(outcomes, outcome)
		if outcome.Err == nil {
			continue
		}
		if !info.IsDir() {
			return outcomes, outcome.Err
		}
		r.logger.Error("catalog failed, continuing with next file",
			logging.String("source", path),
			logging.Error(outcome.Err),
		)
	}
	return outcomes, nil
}

// DatFiles lists the dat files of dir in natural name order.
func DatFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dat") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) processFile(ctx context.Context, path, outputDir string) (outcome Outcome) {
	outcome = Outcome{RunID: history.NewID(), Source: path, Status: history.StatusOK, Started: r.now()}
	defer func() { outcome.Finished = r.now() }()
	logger := r.logger.With(logging.String("source", path))

	cat, err := datfile.ReadFile(ctx, path)
	if err != nil {
		outcome.fail(err)
		return outcome
	}
	outcome.Catalog = cat.Header.Name
	logger = logger.With(logging.String(logging.FieldCatalog, cat.Header.Name))

	list, found, err := r.opts.CloneLists.Load(ctx, cat.Header.Name)
	if err != nil {
		outcome.fail(err)
		return outcome
	}
	if !found {
		logger.Debug("no clone list for catalog")
	}

	res, err := r.processor.Process(ctx, cat, list)
	if res != nil {
		outcome.Stats = res.Stats
		outcome.Warnings = res.Warnings
	}
	if errors.Is(err, ErrNoTitles) {
		outcome.Status = history.StatusNoTitles
		logging.WarnWithContext(logger, "no titles left, skipping output", "no_titles",
			logging.String(logging.FieldErrorHint, "check the region order and filter options"))
		return outcome
	}
	if err != nil {
		outcome.fail(err)
		return outcome
	}

	if err := r.writeOutputs(res, cat.Header, outputDir, &outcome); err != nil {
		outcome.fail(err)
		return outcome
	}
	logger.Info("wrote reduced dat",
		logging.String("output", outcome.Output),
		logging.Int("titles", res.Stats.FinalTitleCount),
	)
	return outcome
}

func (r *Runner) writeOutputs(res *Result, header catalog.Header, outputDir string, outcome *Outcome) error {
	name := datfile.OutputName(header, res.Stats.FinalTitleCount, r.procOpts.FlagString(r.opts.KeepRemove), r.now())
	outPath := filepath.Join(outputDir, name)
	if err := datfile.WriteFile(outPath, res.Document()); err != nil {
		return err
	}
	outcome.Output = outPath
	if !r.opts.KeepRemove {
		return nil
	}
	written, err := audit.WriteListFiles(outPath, res.Families(), res.Removed)
	if err != nil {
		return fmt.Errorf("write audit lists: %w", err)
	}
	outcome.ListFiles = written
	return nil
}

func (o *Outcome) fail(err error) {
	o.Status = history.StatusFailed
	o.Err = err
}

func (r *Runner) record(ctx context.Context, batchID string, outcome *Outcome) {
	if r.opts.History == nil {
		return
	}
	run := history.Run{
		ID:           outcome.RunID,
		BatchID:      batchID,
		Catalog:      outcome.Catalog,
		SourcePath:   outcome.Source,
		OutputPath:   outcome.Output,
		Options:      strings.TrimSpace(r.procOpts.FlagString(r.opts.KeepRemove)),
		Status:       outcome.Status,
		Total:        outcome.Stats.Total,
		Removed:      outcome.Stats.Removed,
		Duplicates:   outcome.Stats.Duplicates,
		Parents:      outcome.Stats.Parents,
		Clones:       outcome.Stats.Clones,
		Compilations: outcome.Stats.Compilations,
		FinalCount:   outcome.Stats.FinalTitleCount,
		Warnings:     len(outcome.Warnings),
		StartedAt:    outcome.Started,
		FinishedAt:   outcome.Finished,
	}
	if outcome.Err != nil {
		run.ErrorMessage = outcome.Err.Error()
	}
	if _, err := r.opts.History.Record(ctx, run); err != nil {
		r.logger.Warn("failed to record run history", logging.Error(err))
	}
}
