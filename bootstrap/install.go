package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/dotfiles/assets"
	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/process"
)

// Step names in execution order.
const (
	StepCreateDirs      = "create-dirs"
	StepSyncRepos       = "sync-repos"
	StepInstallPackages = "install-packages"
	StepExtractAssets   = "extract-assets"
)

// Executor runs commands. *process.Runner satisfies it.
type Executor interface {
	Run(ctx context.Context, cmd process.Command) (*process.Result, error)
	Stream(ctx context.Context, cmd process.Command) (*process.Handle, error)
}

// Step is one unit of the install flow.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepReport records how one step ended.
type StepReport struct {
	Name     string
	Status   string
	Duration time.Duration
	Err      error
}

// Report collects the step outcomes of one Install call.
type Report struct {
	Steps    []StepReport
	Duration time.Duration
	DryRun   bool
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == observability.StepStatusFailed {
			return true
		}
	}
	return false
}

// Count returns the number of steps that ended with status.
func (r *Report) Count(status string) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Installer runs the install flow: create directories, sync the package
// database, install packages and extract assets. Steps run in order and the
// first failure skips the rest.
type Installer struct {
	Config  *config.Config
	Exec    Executor
	Assets  *assets.Catalog
	Metrics *observability.Metrics
	Logger  *logger.Logger
	// DryRun logs every action without touching the filesystem or running
	// commands.
	DryRun bool
	// HomeDir resolves the directory that configured paths are relative to.
	HomeDir func() (string, error)
}

// NewInstaller creates an Installer over the bundled asset catalog.
func NewInstaller(cfg *config.Config, exec Executor) *Installer {
	return &Installer{
		Config:  cfg,
		Exec:    exec,
		Assets:  assets.Default(),
		Logger:  logger.Get("bootstrap"),
		HomeDir: os.UserHomeDir,
	}
}

// Steps returns the install flow in execution order.
func (i *Installer) Steps() []Step {
	return []Step{
		{Name: StepCreateDirs, Run: i.createDirs},
		{Name: StepSyncRepos, Run: i.syncRepos},
		{Name: StepInstallPackages, Run: i.installPackages},
		{Name: StepExtractAssets, Run: i.extractAssets},
	}
}

// Install runs every step and returns the report together with the first
// step error. A canceled context skips the remaining steps.
func (i *Installer) Install(ctx context.Context) (*Report, error) {
	report := &Report{DryRun: i.DryRun}
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	var firstErr error
	for _, step := range i.Steps() {
		if firstErr == nil && ctx.Err() != nil {
			firstErr = errors.Canceled(ctx.Err())
		}
		if firstErr != nil {
			report.Steps = append(report.Steps, StepReport{Name: step.Name, Status: observability.StepStatusSkipped})
			i.Metrics.RecordStep(ctx, step.Name, observability.StepStatusSkipped)
			continue
		}
		sr := i.runStep(ctx, step)
		report.Steps = append(report.Steps, sr)
		if sr.Err != nil {
			firstErr = sr.Err
		}
	}
	return report, firstErr
}

func (i *Installer) runStep(ctx context.Context, step Step) StepReport {
	oc := observability.NewOperationContext(config.ServiceName, step.Name, i.Metrics)
	ctx, span := oc.Start(ctx, observability.SpanBootstrapStep)
	span.SetAttributes(attribute.String(observability.AttrStep, step.Name))

	log := i.log().WithContext(ctx)
	log.Info("Running step "+step.Name, logger.Fields(logger.FieldStep, step.Name))

	err := step.Run(ctx)
	status := observability.StepStatusOK
	if err != nil {
		status = observability.StepStatusFailed
		log.Error("Step failed", logger.MergeWithError(logger.Fields(logger.FieldStep, step.Name), err))
	}
	oc.End(ctx, span, status, err)
	return StepReport{Name: step.Name, Status: status, Duration: oc.Duration(), Err: err}
}

func (i *Installer) createDirs(ctx context.Context) error {
	home, err := i.home()
	if err != nil {
		return err
	}
	for _, dir := range i.Config.Directories {
		path := filepath.Join(home, dir)
		if i.DryRun {
			i.log().Info("dry run: create directory "+path, logger.Fields(logger.FieldPath, path))
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return errors.Storage(path, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return errors.Storage(path, err)
		}
		if !info.IsDir() {
			return errors.Storage(path, fmt.Errorf("%s is not a directory", path))
		}
		i.log().Info("created directory: "+path, logger.Fields(logger.FieldPath, path))
	}
	return nil
}

func (i *Installer) syncRepos(ctx context.Context) error {
	pm, err := LookupPackageManager(i.Config.PackageManager)
	if err != nil {
		return err
	}
	i.log().Info("Synchronizing package db.")
	return i.run(ctx, pm.SyncCommand())
}

func (i *Installer) installPackages(ctx context.Context) error {
	if len(i.Config.Packages) == 0 {
		i.log().Info("No packages configured.")
		return nil
	}
	pm, err := LookupPackageManager(i.Config.PackageManager)
	if err != nil {
		return err
	}
	i.log().Info("Installing packages.", logger.Fields("packages", i.Config.Packages))
	return i.run(ctx, pm.InstallCommand(i.Config.Packages...))
}

func (i *Installer) extractAssets(ctx context.Context) error {
	if len(i.Config.Assets) == 0 {
		return nil
	}
	home, err := i.home()
	if err != nil {
		return err
	}
	for _, link := range i.Config.Assets {
		if err := ctx.Err(); err != nil {
			return errors.Canceled(err)
		}
		dest := filepath.Join(home, link.Target)
		if i.DryRun {
			if _, err := i.Assets.Get(link.Name); err != nil {
				return assetError(link.Name, err)
			}
			i.log().Info("dry run: extract "+link.Name+" to "+dest, logger.Fields(logger.FieldPath, dest))
			continue
		}
		if err := i.Assets.Extract(link.Name, dest, 0); err != nil {
			return assetError(link.Name, err)
		}
		i.log().Info("extracted asset "+link.Name, logger.Fields(logger.FieldPath, dest))
	}
	return nil
}

// run executes cmd, logs its output and turns an unsuccessful exit into a
// COMMAND_FAILED error.
func (i *Installer) run(ctx context.Context, cmd process.Command) error {
	if i.DryRun {
		i.log().Info("dry run: "+cmd.String(), logger.Fields(logger.FieldProgram, cmd.Program()))
		return nil
	}
	res, err := i.Exec.Run(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Canceled(err)
		}
		return errors.ExecutionFailed(cmd.Program(), err)
	}
	res.Log(i.log())
	if !res.Success() {
		return errors.CommandFailed(cmd.String(), res.Status).
			WithDetail("stderr", res.Stderr)
	}
	return nil
}

func assetError(name string, err error) error {
	if errors.Is(err, assets.ErrNotFound) {
		return errors.NotFound("asset", name).WithCause(err)
	}
	return err
}

func (i *Installer) home() (string, error) {
	homeDir := i.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil {
		return "", errors.NotFound("home directory", "").WithCause(err)
	}
	if home == "" {
		return "", errors.NotFound("home directory", "")
	}
	return home, nil
}

func (i *Installer) log() *logger.Logger {
	if i.Logger == nil {
		return logger.Get("bootstrap")
	}
	return i.Logger
}
