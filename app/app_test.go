package app_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/trustbond/emissionsd/app"
	"github.com/trustbond/emissionsd/param"
	"github.com/trustbond/emissionsd/store"
)

func testConfig(t *testing.T) *param.AppConfig {
	t.Helper()
	dir := t.TempDir()
	config := param.DefaultAppConfigWithHome(dir)
	config.GenesisSchedulePath = filepath.Join(dir, "genesis_schedule.json")
	require.NoError(t, app.SaveGenesisSchedule(config.GenesisSchedulePath, &app.GenesisSchedule{
		StartTimestamp:       0,
		EpochLength:          param.DefaultEpochLength,
		EmissionsPerEpoch:    "1000000",
		ReductionCliff:       4,
		ReductionBasisPoints: 1000,
	}))
	return config
}

func TestNewAppAppliesGenesis(t *testing.T) {
	config := testConfig(t)
	kv := store.NewMemStore()
	defer kv.Close()

	a, err := app.NewAppWithStore(config, log.NewNopLogger(), kv)
	require.NoError(t, err)
	require.Equal(t, 1, a.Controller().NumCheckpoints())
	require.Equal(t, param.DefaultEpochLength, a.Controller().EpochLength())

	amt, err := a.Controller().EmissionsAtEpoch(4)
	require.NoError(t, err)
	require.Equal(t, uint64(900_000), amt.Uint64())
}

func TestNewAppReplaysPersistedHistory(t *testing.T) {
	config := testConfig(t)
	kv := store.NewMemStore()
	defer kv.Close()

	a, err := app.NewAppWithStore(config, log.NewNopLogger(), kv)
	require.NoError(t, err)
	require.Equal(t, 1, a.Controller().NumCheckpoints())

	// a second start must not re-apply genesis
	a, err = app.NewAppWithStore(config, log.NewNopLogger(), kv)
	require.NoError(t, err)
	require.Equal(t, 1, a.Controller().NumCheckpoints())
}

func TestNewAppRejectsBadGenesisAmount(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, app.SaveGenesisSchedule(config.GenesisSchedulePath, &app.GenesisSchedule{
		EpochLength:       param.DefaultEpochLength,
		EmissionsPerEpoch: "one million",
	}))
	kv := store.NewMemStore()
	defer kv.Close()

	_, err := app.NewAppWithStore(config, log.NewNopLogger(), kv)
	require.ErrorIs(t, err, app.ErrBadEmissionsAmount)
}
