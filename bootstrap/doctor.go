package bootstrap

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"strconv"

	"github.com/kbukum/dotfiles/assets"
	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/confstore"
	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/observability"
)

// Doctor checks whether the machine can run the install flow and the probe
// with the given settings.
type Doctor struct {
	Config    *config.Config
	Assets    *assets.Catalog
	StorePath string
	Version   string
	LookPath  func(file string) (string, error)
	HomeDir   func() (string, error)
}

// NewDoctor creates a Doctor that inspects the real environment.
func NewDoctor(cfg *config.Config, storePath, version string) *Doctor {
	return &Doctor{
		Config:    cfg,
		Assets:    assets.Default(),
		StorePath: storePath,
		Version:   version,
		LookPath:  exec.LookPath,
		HomeDir:   os.UserHomeDir,
	}
}

// Check runs every check and aggregates the results.
func (d *Doctor) Check(ctx context.Context) *observability.ServiceHealth {
	return observability.NewServiceHealth(d.Config.Name, d.Version).Check(ctx,
		observability.HealthCheckFunc(d.checkHome),
		observability.HealthCheckFunc(d.checkPackageManager),
		observability.HealthCheckFunc(d.checkProbe),
		observability.HealthCheckFunc(d.checkAssets),
		observability.HealthCheckFunc(d.checkStore),
	)
}

func (d *Doctor) checkHome(context.Context) observability.Health {
	h := observability.Health{Name: "home"}
	home, err := d.HomeDir()
	if err != nil || home == "" {
		h.Status = observability.HealthStatusDown
		h.Message = "home directory cannot be resolved"
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details = map[string]string{"path": home}
	return h
}

func (d *Doctor) checkPackageManager(context.Context) observability.Health {
	h := observability.Health{Name: "package-manager"}
	pm, err := LookupPackageManager(d.Config.PackageManager)
	if err != nil {
		h.Status = observability.HealthStatusDown
		h.Message = err.Error()
		return h
	}
	return d.lookup(h, pm.Program, observability.HealthStatusDown)
}

func (d *Doctor) checkProbe(context.Context) observability.Health {
	return d.lookup(observability.Health{Name: "probe"}, d.Config.Probe.Program, observability.HealthStatusDegraded)
}

func (d *Doctor) lookup(h observability.Health, program string, missing observability.HealthStatus) observability.Health {
	path, err := d.LookPath(program)
	if err != nil {
		h.Status = missing
		h.Message = program + " not found in PATH"
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details = map[string]string{"path": path}
	return h
}

func (d *Doctor) checkAssets(context.Context) observability.Health {
	h := observability.Health{Name: "assets", Status: observability.HealthStatusUp}
	for _, link := range d.Config.Assets {
		if _, err := d.Assets.Get(link.Name); err != nil {
			h.Status = observability.HealthStatusDown
			h.Message = "asset " + link.Name + " is not bundled"
			return h
		}
	}
	return h
}

func (d *Doctor) checkStore(context.Context) observability.Health {
	h := observability.Health{Name: "store"}
	if d.StorePath == "" {
		h.Status = observability.HealthStatusDegraded
		h.Message = "no store path"
		return h
	}
	cfg, err := confstore.Read(d.StorePath)
	if errors.Is(err, fs.ErrNotExist) {
		h.Status = observability.HealthStatusDegraded
		h.Message = "store not initialized, run: dotfiles config init"
		return h
	}
	if err != nil {
		h.Status = observability.HealthStatusDown
		h.Message = err.Error()
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details = map[string]string{"path": d.StorePath, "version": strconv.Itoa(cfg.Version)}
	return h
}
