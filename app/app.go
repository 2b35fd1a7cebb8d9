package app

import (
	"github.com/tendermint/tendermint/libs/log"

	"github.com/trustbond/emissionsd/emissions"
	"github.com/trustbond/emissionsd/param"
	"github.com/trustbond/emissionsd/store"
)

// App owns the checkpoint store and the emissions controller built from
// it. The first start applies the genesis schedule as checkpoint 0; later
// starts replay the persisted history.
type App struct {
	config *param.AppConfig
	logger log.Logger
	kv     store.KVStore
	ctrl   *emissions.Controller
}

func NewApp(config *param.AppConfig, logger log.Logger) (*App, error) {
	kv, err := store.OpenPebble(config.AppDataPath)
	if err != nil {
		return nil, err
	}
	a, err := newAppWithKV(config, logger, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return a, nil
}

// NewAppWithStore is NewApp over a caller-supplied store, used by tests
// and one-shot tooling.
func NewAppWithStore(config *param.AppConfig, logger log.Logger, kv store.KVStore) (*App, error) {
	return newAppWithKV(config, logger, kv)
}

func newAppWithKV(config *param.AppConfig, logger log.Logger, kv store.KVStore) (*App, error) {
	ctrl, err := emissions.LoadController(kv)
	if err != nil {
		return nil, err
	}
	if ctrl.NumCheckpoints() == 0 {
		gen, err := LoadGenesisSchedule(config.GenesisSchedulePath)
		if err != nil {
			return nil, err
		}
		init, err := gen.ToCheckpointInit()
		if err != nil {
			return nil, err
		}
		cp, err := emissions.BuildCheckpoint(nil, init)
		if err != nil {
			return nil, err
		}
		if err := emissions.SaveCheckpoint(kv, 0, cp); err != nil {
			return nil, err
		}
		if err := ctrl.Append(cp); err != nil {
			return nil, err
		}
		logger.Info("applied genesis emission schedule",
			"start", cp.StartTimestamp,
			"epochLength", cp.EpochLength,
			"reductionCliff", cp.ReductionCliff,
			"reductionBasisPoints", cp.ReductionBasisPoints)
	} else {
		logger.Info("loaded emission schedule",
			"checkpoints", ctrl.NumCheckpoints(),
			"epochLength", ctrl.EpochLength())
	}
	return &App{
		config: config,
		logger: logger,
		kv:     kv,
		ctrl:   ctrl,
	}, nil
}

func (a *App) Config() *param.AppConfig {
	return a.config
}

func (a *App) Controller() *emissions.Controller {
	return a.ctrl
}

func (a *App) KV() store.KVStore {
	return a.kv
}

func (a *App) Stop() {
	if err := a.kv.Close(); err != nil {
		a.logger.Error("error closing checkpoint store", "err", err)
	}
}
