package types

import (
	"errors"

	"github.com/holiman/uint256"
)

// BasisPointDenominator is the scale of all basis-point values. A
// RetentionFactor of 9000 over this denominator keeps 90% of the
// previous emission amount per decay interval.
const BasisPointDenominator int64 = 10_000

var (
	ErrInvalidEpochLength   = errors.New("checkpoint epoch length must be positive")
	ErrInvalidBasisPoints   = errors.New("reduction basis points above denominator")
	ErrInvalidRetention     = errors.New("retention factor above denominator")
	ErrNegativeCliff        = errors.New("reduction cliff must not be negative")
	ErrStartBeforePrevious  = errors.New("checkpoint starts before previous checkpoint")
	ErrMisalignedCheckpoint = errors.New("checkpoint start not on an epoch boundary of previous checkpoint")
	ErrNegativeStart        = errors.New("checkpoint start must not be negative")
	ErrNilEmissionsPerEpoch = errors.New("emissions per epoch not set")
)

// CheckpointInit is the caller-supplied part of a schedule revision.
// The retention factor is always derived at append time, never supplied.
type CheckpointInit struct {
	StartTimestamp       int64
	EpochLength          int64
	EmissionsPerEpoch    *uint256.Int
	ReductionCliff       int64
	ReductionBasisPoints int64
}

// EmissionsCheckpoint is one immutable schedule revision. It is effective
// from StartTimestamp until superseded by a later checkpoint. The struct
// is persisted as-is; RetentionFactor is pinned when the checkpoint is
// built so that replaying history never recomputes it.
type EmissionsCheckpoint struct {
	StartTimestamp       int64    `msg:"start_timestamp"`
	EpochLength          int64    `msg:"epoch_length"`
	EmissionsPerEpoch    [32]byte `msg:"emissions_per_epoch"`
	ReductionCliff       int64    `msg:"reduction_cliff"`
	ReductionBasisPoints int64    `msg:"reduction_basis_points"`
	RetentionFactor      int64    `msg:"retention_factor"`
}

// EmissionsPerEpochU256 returns the base per-epoch emission amount.
func (cp *EmissionsCheckpoint) EmissionsPerEpochU256() *uint256.Int {
	return uint256.NewInt(0).SetBytes32(cp.EmissionsPerEpoch[:])
}

// Init returns the caller-supplied subset of the checkpoint.
func (cp *EmissionsCheckpoint) Init() CheckpointInit {
	return CheckpointInit{
		StartTimestamp:       cp.StartTimestamp,
		EpochLength:          cp.EpochLength,
		EmissionsPerEpoch:    cp.EmissionsPerEpochU256(),
		ReductionCliff:       cp.ReductionCliff,
		ReductionBasisPoints: cp.ReductionBasisPoints,
	}
}

// Validate checks the fields every stored checkpoint must satisfy,
// regardless of its position in the sequence.
func (cp *EmissionsCheckpoint) Validate() error {
	if cp.StartTimestamp < 0 {
		return ErrNegativeStart
	}
	if cp.EpochLength <= 0 {
		return ErrInvalidEpochLength
	}
	if cp.ReductionCliff < 0 {
		return ErrNegativeCliff
	}
	if cp.ReductionBasisPoints < 0 || cp.ReductionBasisPoints > BasisPointDenominator {
		return ErrInvalidBasisPoints
	}
	if cp.RetentionFactor < 0 || cp.RetentionFactor > BasisPointDenominator {
		return ErrInvalidRetention
	}
	return nil
}
