package api

import (
	"errors"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/trustbond/emissionsd/emissions/types"
)

var (
	errValueTooLarge  = errors.New("value exceeds 63 bits")
	errAmountRequired = errors.New("emissionsPerEpoch is required")
	errAmountTooLarge = errors.New("emissionsPerEpoch exceeds 256 bits")
)

// CheckpointInfo is the wire form of one schedule revision.
type CheckpointInfo struct {
	StartTimestamp       hexutil.Uint64 `json:"startTimestamp"`
	EpochLength          hexutil.Uint64 `json:"epochLength"`
	EmissionsPerEpoch    *hexutil.Big   `json:"emissionsPerEpoch"`
	ReductionCliff       hexutil.Uint64 `json:"reductionCliff"`
	ReductionBasisPoints hexutil.Uint64 `json:"reductionBasisPoints"`
	RetentionFactor      hexutil.Uint64 `json:"retentionFactor"`
}

// CheckpointArgs are the caller-supplied fields of admin_appendCheckpoint.
type CheckpointArgs struct {
	StartTimestamp       hexutil.Uint64 `json:"startTimestamp"`
	EpochLength          hexutil.Uint64 `json:"epochLength"`
	EmissionsPerEpoch    *hexutil.Big   `json:"emissionsPerEpoch"`
	ReductionCliff       hexutil.Uint64 `json:"reductionCliff"`
	ReductionBasisPoints hexutil.Uint64 `json:"reductionBasisPoints"`
}

func (args *CheckpointArgs) toInit() (types.CheckpointInit, error) {
	start, err := toInt64(args.StartTimestamp)
	if err != nil {
		return types.CheckpointInit{}, err
	}
	length, err := toInt64(args.EpochLength)
	if err != nil {
		return types.CheckpointInit{}, err
	}
	cliff, err := toInt64(args.ReductionCliff)
	if err != nil {
		return types.CheckpointInit{}, err
	}
	bp, err := toInt64(args.ReductionBasisPoints)
	if err != nil {
		return types.CheckpointInit{}, err
	}
	if args.EmissionsPerEpoch == nil {
		return types.CheckpointInit{}, errAmountRequired
	}
	amount, overflow := uint256.FromBig(args.EmissionsPerEpoch.ToInt())
	if overflow {
		return types.CheckpointInit{}, errAmountTooLarge
	}
	return types.CheckpointInit{
		StartTimestamp:       start,
		EpochLength:          length,
		EmissionsPerEpoch:    amount,
		ReductionCliff:       cliff,
		ReductionBasisPoints: bp,
	}, nil
}

func checkpointToInfo(cp *types.EmissionsCheckpoint) *CheckpointInfo {
	return &CheckpointInfo{
		StartTimestamp:       hexutil.Uint64(cp.StartTimestamp),
		EpochLength:          hexutil.Uint64(cp.EpochLength),
		EmissionsPerEpoch:    (*hexutil.Big)(cp.EmissionsPerEpochU256().ToBig()),
		ReductionCliff:       hexutil.Uint64(cp.ReductionCliff),
		ReductionBasisPoints: hexutil.Uint64(cp.ReductionBasisPoints),
		RetentionFactor:      hexutil.Uint64(cp.RetentionFactor),
	}
}

func toInt64(v hexutil.Uint64) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, errValueTooLarge
	}
	return int64(v), nil
}
