package api

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tendermint/tendermint/libs/log"

	sbapi "github.com/trustbond/emissionsd/api"
)

var _ EmissionsAPI = (*emissionsAPI)(nil)

// EmissionsAPI is the public read surface of the schedule. A consumer
// pulling tokens each epoch needs nothing beyond these calls.
type EmissionsAPI interface {
	EpochLength() hexutil.Uint64
	EpochAtTimestamp(ts hexutil.Uint64) (hexutil.Uint64, error)
	EpochStartTimestamp(epoch hexutil.Uint64) (hexutil.Uint64, error)
	EpochEndTimestamp(epoch hexutil.Uint64) (hexutil.Uint64, error)
	EmissionsAtEpoch(epoch hexutil.Uint64) (*hexutil.Big, error)
	CurrentEpoch() (hexutil.Uint64, error)
	PreviousEpoch() (hexutil.Uint64, error)
	EmissionsForCurrentEpoch() (*hexutil.Big, error)
	Checkpoints() ([]*CheckpointInfo, error)
}

type emissionsAPI struct {
	backend sbapi.BackendService
	logger  log.Logger
}

func newEmissionsAPI(backend sbapi.BackendService, logger log.Logger) EmissionsAPI {
	return &emissionsAPI{
		backend: backend,
		logger:  logger,
	}
}

func (api *emissionsAPI) EpochLength() hexutil.Uint64 {
	api.logger.Debug("emissions_epochLength")
	return hexutil.Uint64(api.backend.EpochLength())
}

func (api *emissionsAPI) EpochAtTimestamp(ts hexutil.Uint64) (hexutil.Uint64, error) {
	api.logger.Debug("emissions_epochAtTimestamp", "ts", uint64(ts))
	t, err := toInt64(ts)
	if err != nil {
		return 0, err
	}
	epoch, err := api.backend.EpochAtTimestamp(t)
	if err != nil {
		return 0, err
	}
	return hexutil.Uint64(epoch), nil
}

func (api *emissionsAPI) EpochStartTimestamp(epoch hexutil.Uint64) (hexutil.Uint64, error) {
	api.logger.Debug("emissions_epochStartTimestamp", "epoch", uint64(epoch))
	n, err := toInt64(epoch)
	if err != nil {
		return 0, err
	}
	start, err := api.backend.EpochStartTimestamp(n)
	if err != nil {
		return 0, err
	}
	return hexutil.Uint64(start), nil
}

func (api *emissionsAPI) EpochEndTimestamp(epoch hexutil.Uint64) (hexutil.Uint64, error) {
	api.logger.Debug("emissions_epochEndTimestamp", "epoch", uint64(epoch))
	n, err := toInt64(epoch)
	if err != nil {
		return 0, err
	}
	end, err := api.backend.EpochEndTimestamp(n)
	if err != nil {
		return 0, err
	}
	return hexutil.Uint64(end), nil
}

func (api *emissionsAPI) EmissionsAtEpoch(epoch hexutil.Uint64) (*hexutil.Big, error) {
	api.logger.Debug("emissions_emissionsAtEpoch", "epoch", uint64(epoch))
	n, err := toInt64(epoch)
	if err != nil {
		return nil, err
	}
	amt, err := api.backend.EmissionsAtEpoch(n)
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(amt.ToBig()), nil
}

func (api *emissionsAPI) CurrentEpoch() (hexutil.Uint64, error) {
	api.logger.Debug("emissions_currentEpoch")
	epoch, err := api.backend.CurrentEpoch()
	if err != nil {
		return 0, err
	}
	return hexutil.Uint64(epoch), nil
}

func (api *emissionsAPI) PreviousEpoch() (hexutil.Uint64, error) {
	api.logger.Debug("emissions_previousEpoch")
	epoch, err := api.backend.PreviousEpoch()
	if err != nil {
		return 0, err
	}
	return hexutil.Uint64(epoch), nil
}

func (api *emissionsAPI) EmissionsForCurrentEpoch() (*hexutil.Big, error) {
	api.logger.Debug("emissions_emissionsForCurrentEpoch")
	amt, err := api.backend.EmissionsForCurrentEpoch()
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(amt.ToBig()), nil
}

func (api *emissionsAPI) Checkpoints() ([]*CheckpointInfo, error) {
	api.logger.Debug("emissions_checkpoints")
	cps := api.backend.Checkpoints()
	infos := make([]*CheckpointInfo, len(cps))
	for i := range cps {
		infos[i] = checkpointToInfo(&cps[i])
	}
	return infos, nil
}
