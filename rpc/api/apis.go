package api

import (
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tendermint/tendermint/libs/log"

	sbapi "github.com/trustbond/emissionsd/api"
)

const (
	namespaceEmissions = "emissions"
	namespaceAdmin     = "admin"

	apiVersion = "1.0"
)

// GetAPIs returns the JSON-RPC APIs served by the daemon. The admin
// namespace is only registered when an admin token is configured.
func GetAPIs(backend sbapi.BackendService, logger log.Logger, adminToken string) []rpc.API {
	logger = logger.With("module", "json-rpc")
	apis := []rpc.API{
		{
			Namespace: namespaceEmissions,
			Version:   apiVersion,
			Service:   newEmissionsAPI(backend, logger),
			Public:    true,
		},
	}
	if adminToken != "" {
		apis = append(apis, rpc.API{
			Namespace: namespaceAdmin,
			Version:   apiVersion,
			Service:   newAdminAPI(backend, logger, adminToken),
			Public:    false,
		})
	}
	return apis
}
