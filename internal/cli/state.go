package cli

import (
	"github.com/HartBrook/promptwizard/internal/config"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/gemini"
	"github.com/HartBrook/promptwizard/internal/genconfig"
	"github.com/HartBrook/promptwizard/internal/history"
	"github.com/HartBrook/promptwizard/internal/kv"
	"github.com/HartBrook/promptwizard/internal/logging"
	"github.com/HartBrook/promptwizard/internal/wizard"
	"github.com/rs/zerolog"
)

// state is the per-invocation storage and settings, opened on first use.
type state struct {
	settings *config.Settings
	logger   zerolog.Logger
	kv       kv.Store
	configs  *genconfig.Store
	history  *history.Store
}

func (a *App) open() (*state, error) {
	if a.state != nil {
		return a.state, nil
	}

	settings, err := config.LoadFrom(a.Paths.ConfigFile)
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.verbose {
		level = "debug"
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	logger := logging.New(a.Err, lvl)

	store, err := openStore(settings.Storage.Backend, a.Paths)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("backend", settings.Storage.Backend).Msg("Opened local storage")

	configs := genconfig.NewStore(store, genconfig.WithLogger(logger))
	if _, err := configs.Bootstrap(a.Paths.ResolveBootstrap(settings.Bootstrap)); err != nil {
		_ = store.Close()
		return nil, err
	}
	if _, err := configs.Load(); err != nil {
		_ = store.Close()
		return nil, err
	}

	a.state = &state{
		settings: settings,
		logger:   logger,
		kv:       store,
		configs:  configs,
		history:  history.NewStore(store, history.WithLogger(logger), history.WithClock(a.Now)),
	}
	return a.state, nil
}

func openStore(backend string, paths *config.Paths) (kv.Store, error) {
	switch backend {
	case config.BackendSQLite:
		store, err := kv.OpenSQLite(paths.StorageDB)
		if err != nil {
			return nil, errors.StorageFailed("open", err)
		}
		return store, nil
	default:
		return kv.NewFileStore(paths.StorageDir), nil
	}
}

func (a *App) close() {
	if a.state == nil {
		return
	}
	_ = a.state.kv.Close()
	a.state = nil
}

func (a *App) optimizer(st *state) *wizard.Optimizer {
	opts := []gemini.ClientOption{gemini.WithLogger(st.logger)}
	if a.HTTPClient != nil {
		opts = append(opts, gemini.WithHTTPClient(a.HTTPClient))
	}
	markers, vocab := wizard.TablesFor(st.settings.Vocabulary)
	return wizard.NewOptimizer(
		gemini.NewClient(opts...),
		st.configs,
		st.history,
		wizard.WithTables(markers, vocab),
		wizard.WithLogger(st.logger),
	)
}
