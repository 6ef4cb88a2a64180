package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/doeshing/hateshield/internal/application/analysis"
	"github.com/doeshing/hateshield/internal/application/doctor"
	"github.com/doeshing/hateshield/internal/application/history"
	"github.com/doeshing/hateshield/internal/application/settings"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/backend"
	"github.com/doeshing/hateshield/internal/infrastructure/config"
	"github.com/doeshing/hateshield/internal/infrastructure/storage"
	"github.com/doeshing/hateshield/internal/pkg/filesystem"
	"github.com/doeshing/hateshield/internal/pkg/logger"
	"github.com/doeshing/hateshield/internal/ports"
)

// Options control how the container is built.
type Options struct {
	Verbose    bool
	Ephemeral  bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Store          ports.KeyValueStore
	Settings       *settings.Store
	History        *history.Cache
	Analyzers      *backend.Factory
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log, err := logger.New(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	driver := cfg.GetStorageDriver()
	if opts.Ephemeral {
		driver = domain.StorageDriverMemory
	}
	store := storage.Open(driver, cfg.GetDataDir(filesystem.UserHomeDir()), log)

	settingsStore := settings.NewStore(store, log)
	historyCache := history.NewCache(store, settingsStore, log)
	factory := backend.NewFactory(log)

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Store:          store,
		Settings:       settingsStore,
		PingBackend: func(ctx context.Context, baseURL string) (string, error) {
			return backend.NewRESTClient(baseURL, &http.Client{Timeout: domain.DefaultHealthTimeout}).Health(ctx)
		},
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Store:          store,
		Settings:       settingsStore,
		History:        historyCache,
		Analyzers:      factory,
		DoctorService:  doctorService,
	}, nil
}

// Analyzer resolves the analyzer for mode, or the persisted run mode when mode is empty.
func (c *Container) Analyzer(ctx context.Context, mode domain.RunMode) (ports.Analyzer, error) {
	if mode == "" {
		mode = c.Settings.RunMode(ctx)
	}
	return c.Analyzers.ForMode(mode, c.Settings.GetSettings(ctx), c.Config)
}

// NewFlow builds an analysis flow for mode that records into the history cache.
func (c *Container) NewFlow(ctx context.Context, mode domain.RunMode, notifier ports.Notifier) (*analysis.Flow, ports.Analyzer, error) {
	analyzer, err := c.Analyzer(ctx, mode)
	if err != nil {
		return nil, nil, err
	}
	return analysis.NewFlow(analyzer, c.Settings, c.History, notifier, c.Logger), analyzer, nil
}

// Close releases the store and flushes the logger.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	return c.Store.Close()
}
