package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logW      io.Writer
	appConfig *Config
	logger    *slog.Logger
	registry  *registry.Registry
	config    *config.Model
	table     *capability.Table
	boot      *bootstrap.Registry
	transport bootstrap.Transport
	// comm is the application's private communicator, duplicated from the
	// world group during bootstrap.
	comm *bootstrap.ProcessGroup
}

// NewApp is the constructor for the main application. It loads the
// configuration, registers the backend modules (coreModules when none are
// given) and validates the capability table. It returns an error when the
// configuration cannot be used.
//
// Spectra and the capability listing go to outW; logs and trace spans go to
// logW so the printed output stays stable.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "spectra", len(cfgModel.Spectra), "units", len(cfgModel.Units))

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.Load(ctx, modules...)

	table, err := reg.Validate(ctx, cfgModel.Units...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	transport, err := newTransport(cfgModel.Bootstrap, appConfig)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:      outW,
		logW:      logW,
		appConfig: appConfig,
		logger:    logger,
		registry:  reg,
		config:    cfgModel,
		table:     table,
		boot:      bootstrap.NewRegistry(),
		transport: transport,
	}
	if err := a.boot.Register("app.communicator", a.duplicateWorld); err != nil {
		return nil, err
	}
	return a, nil
}

// duplicateWorld gives the application a communicator of its own so its
// collectives never interleave with those of other libraries on the world
// group.
func (a *App) duplicateWorld(ctx context.Context, world *bootstrap.ProcessGroup) error {
	comm, err := world.Duplicate(ctx)
	if err != nil {
		return err
	}
	a.comm = comm
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Bootstrap returns the application's start-up registry.
func (a *App) Bootstrap() *bootstrap.Registry {
	return a.boot
}

// Table returns the validated capability table.
func (a *App) Table() *capability.Table {
	return a.table
}

// SetTransport replaces the process group transport chosen from the
// configuration. It must be called before Run.
func (a *App) SetTransport(t bootstrap.Transport) {
	a.transport = t
}

// Communicator returns the application's private communicator, or nil
// before Run has bootstrapped the process group.
func (a *App) Communicator() *bootstrap.ProcessGroup {
	return a.comm
}
