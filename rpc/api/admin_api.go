package api

import (
	"crypto/subtle"
	"errors"

	"github.com/tendermint/tendermint/libs/log"

	sbapi "github.com/trustbond/emissionsd/api"
)

var errBadAdminToken = errors.New("bad admin token")

var _ AdminAPI = (*adminAPI)(nil)

// AdminAPI is the privileged write surface of the schedule.
type AdminAPI interface {
	AppendCheckpoint(token string, args CheckpointArgs) (*CheckpointInfo, error)
}

type adminAPI struct {
	backend sbapi.BackendService
	logger  log.Logger
	token   string
}

func newAdminAPI(backend sbapi.BackendService, logger log.Logger, token string) AdminAPI {
	return &adminAPI{
		backend: backend,
		logger:  logger,
		token:   token,
	}
}

func (api *adminAPI) AppendCheckpoint(token string, args CheckpointArgs) (*CheckpointInfo, error) {
	if subtle.ConstantTimeCompare([]byte(token), []byte(api.token)) != 1 {
		api.logger.Info("admin_appendCheckpoint rejected: bad token")
		return nil, errBadAdminToken
	}
	init, err := args.toInit()
	if err != nil {
		return nil, err
	}
	cp, err := api.backend.AppendCheckpoint(init)
	if err != nil {
		api.logger.Info("admin_appendCheckpoint rejected", "err", err)
		return nil, err
	}
	api.logger.Info("schedule revised",
		"start", cp.StartTimestamp,
		"epochLength", cp.EpochLength,
		"reductionCliff", cp.ReductionCliff,
		"reductionBasisPoints", cp.ReductionBasisPoints)
	return checkpointToInfo(cp), nil
}
