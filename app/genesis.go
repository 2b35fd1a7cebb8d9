package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/trustbond/emissionsd/emissions/types"
	"github.com/trustbond/emissionsd/internal/bigutils"
)

// GenesisSchedule is the declared checkpoint 0 of the emission program,
// written by `emissionsd init` and applied on first start.
type GenesisSchedule struct {
	StartTimestamp       int64  `json:"start_timestamp"`
	EpochLength          int64  `json:"epoch_length"`
	EmissionsPerEpoch    string `json:"emissions_per_epoch"` // decimal or 0x-hex
	ReductionCliff       int64  `json:"reduction_cliff"`
	ReductionBasisPoints int64  `json:"reduction_basis_points"`
}

var ErrBadEmissionsAmount = errors.New("genesis emissions_per_epoch is not a valid 256-bit amount")

func (g *GenesisSchedule) ToCheckpointInit() (types.CheckpointInit, error) {
	amount, ok := bigutils.ParseU256(g.EmissionsPerEpoch)
	if !ok {
		return types.CheckpointInit{}, ErrBadEmissionsAmount
	}
	return types.CheckpointInit{
		StartTimestamp:       g.StartTimestamp,
		EpochLength:          g.EpochLength,
		EmissionsPerEpoch:    amount,
		ReductionCliff:       g.ReductionCliff,
		ReductionBasisPoints: g.ReductionBasisPoints,
	}, nil
}

func LoadGenesisSchedule(path string) (*GenesisSchedule, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read genesis schedule: %w", err)
	}
	var g GenesisSchedule
	if err := json.Unmarshal(bz, &g); err != nil {
		return nil, fmt.Errorf("cannot parse genesis schedule: %w", err)
	}
	return &g, nil
}

func SaveGenesisSchedule(path string, g *GenesisSchedule) error {
	bz, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(bz, '\n'), 0644)
}
