package emissions

import (
	"errors"
	"math"
	"sort"

	"github.com/holiman/uint256"

	"github.com/trustbond/emissionsd/emissions/types"
)

var (
	ErrNoCheckpointBefore   = errors.New("no checkpoint at or before the given timestamp")
	ErrTimestampBeforeStart = errors.New("timestamp precedes the emission schedule start")
	ErrEpochBeforeStart     = errors.New("epoch precedes the emission schedule start")
	ErrEpochOutOfRange      = errors.New("epoch number out of range")
	ErrAmountOverflow       = errors.New("emission amount overflows 256 bits")
)

// Controller answers the three conjugate schedule questions — which epoch a
// timestamp falls in, when an epoch ends, and how much is emitted during an
// epoch — as pure functions over an append-only checkpoint history.
//
// Each checkpoint owns a contiguous block of global epoch numbers sized by
// the wall-clock window it governed divided by its own epoch length, so
// epoch numbering never resets or skips when governance revises the
// schedule. Only the latest checkpoint extrapolates forward without bound.
//
// All methods except Append are read-only; the caller serializes Append
// against reads.
type Controller struct {
	checkpoints []*types.EmissionsCheckpoint
	offsets     []int64 // first global epoch number governed by each checkpoint
}

func NewController() *Controller {
	return &Controller{}
}

// BuildCheckpoint validates init against the previous checkpoint (nil for
// the genesis checkpoint) and derives the retention factor. It does not
// mutate anything: callers persist the result before appending it, so a
// failed write never leaves a half-visible revision.
//
// A non-genesis checkpoint must start on an epoch boundary of its
// predecessor. Accepting mid-epoch starts would either truncate the
// in-progress epoch or leave a numbering gap; we reject them instead.
func BuildCheckpoint(prev *types.EmissionsCheckpoint, init types.CheckpointInit) (*types.EmissionsCheckpoint, error) {
	if init.EmissionsPerEpoch == nil {
		return nil, types.ErrNilEmissionsPerEpoch
	}
	cp := &types.EmissionsCheckpoint{
		StartTimestamp:       init.StartTimestamp,
		EpochLength:          init.EpochLength,
		EmissionsPerEpoch:    init.EmissionsPerEpoch.Bytes32(),
		ReductionCliff:       init.ReductionCliff,
		ReductionBasisPoints: init.ReductionBasisPoints,
	}
	cp.RetentionFactor = types.BasisPointDenominator - init.ReductionBasisPoints
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	if err := checkSuccessor(prev, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

func checkSuccessor(prev, next *types.EmissionsCheckpoint) error {
	if prev == nil {
		return nil
	}
	if next.StartTimestamp < prev.StartTimestamp {
		return types.ErrStartBeforePrevious
	}
	if (next.StartTimestamp-prev.StartTimestamp)%prev.EpochLength != 0 {
		return types.ErrMisalignedCheckpoint
	}
	return nil
}

// Append adds a fully built checkpoint to the history. The checkpoint's
// pinned RetentionFactor is taken as-is; it is not re-derived, so replaying
// a persisted history reproduces exactly the rounding in effect when each
// revision was appended.
func (c *Controller) Append(cp *types.EmissionsCheckpoint) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	if err := checkSuccessor(c.Latest(), cp); err != nil {
		return err
	}
	offset := int64(0)
	if n := len(c.checkpoints); n > 0 {
		prev := c.checkpoints[n-1]
		offset = c.offsets[n-1] +
			(cp.StartTimestamp-prev.StartTimestamp)/prev.EpochLength
	}
	cpCopy := *cp
	c.checkpoints = append(c.checkpoints, &cpCopy)
	c.offsets = append(c.offsets, offset)
	return nil
}

// AppendInit builds a checkpoint from init and appends it.
func (c *Controller) AppendInit(init types.CheckpointInit) (*types.EmissionsCheckpoint, error) {
	cp, err := BuildCheckpoint(c.Latest(), init)
	if err != nil {
		return nil, err
	}
	if err := c.Append(cp); err != nil {
		return nil, err
	}
	return cp, nil
}

func (c *Controller) NumCheckpoints() int {
	return len(c.checkpoints)
}

// Latest returns the most recently appended checkpoint, nil when the
// history is empty.
func (c *Controller) Latest() *types.EmissionsCheckpoint {
	if len(c.checkpoints) == 0 {
		return nil
	}
	return c.checkpoints[len(c.checkpoints)-1]
}

// Checkpoints returns a copy of the full history in append order.
func (c *Controller) Checkpoints() []types.EmissionsCheckpoint {
	out := make([]types.EmissionsCheckpoint, len(c.checkpoints))
	for i, cp := range c.checkpoints {
		out[i] = *cp
	}
	return out
}

// FindCheckpoint returns the checkpoint with the greatest start timestamp
// at or before ts.
func (c *Controller) FindCheckpoint(ts int64) (*types.EmissionsCheckpoint, error) {
	idx, err := c.find(ts)
	if err != nil {
		return nil, err
	}
	return c.checkpoints[idx], nil
}

func (c *Controller) find(ts int64) (int, error) {
	if len(c.checkpoints) == 0 || ts < c.checkpoints[0].StartTimestamp {
		return 0, ErrNoCheckpointBefore
	}
	// first index whose start is strictly after ts, minus one
	idx := sort.Search(len(c.checkpoints), func(i int) bool {
		return c.checkpoints[i].StartTimestamp > ts
	})
	return idx - 1, nil
}

// EpochLength returns the epoch length of the latest checkpoint, the
// currently operative value. Zero when the history is empty.
func (c *Controller) EpochLength() int64 {
	cp := c.Latest()
	if cp == nil {
		return 0
	}
	return cp.EpochLength
}

// EpochAtTimestamp maps ts to its global epoch number.
func (c *Controller) EpochAtTimestamp(ts int64) (int64, error) {
	idx, err := c.find(ts)
	if err != nil {
		return 0, ErrTimestampBeforeStart
	}
	cp := c.checkpoints[idx]
	return c.offsets[idx] + (ts-cp.StartTimestamp)/cp.EpochLength, nil
}

// EpochStartTimestamp returns the timestamp at which the given epoch
// begins. Epochs past the last checkpoint's governed window extrapolate
// with the latest epoch length.
func (c *Controller) EpochStartTimestamp(epoch int64) (int64, error) {
	cp, local, err := c.segmentForEpoch(epoch)
	if err != nil {
		return 0, err
	}
	return epochBoundary(cp, local)
}

// EpochEndTimestamp returns the first timestamp after the given epoch,
// i.e. the start of epoch+1.
func (c *Controller) EpochEndTimestamp(epoch int64) (int64, error) {
	cp, local, err := c.segmentForEpoch(epoch)
	if err != nil {
		return 0, err
	}
	return epochBoundary(cp, local+1)
}

func epochBoundary(cp *types.EmissionsCheckpoint, local int64) (int64, error) {
	if local > (math.MaxInt64-cp.StartTimestamp)/cp.EpochLength {
		return 0, ErrEpochOutOfRange
	}
	return cp.StartTimestamp + local*cp.EpochLength, nil
}

// segmentForEpoch locates the checkpoint owning a global epoch number and
// the epoch's local index within it. When several checkpoints share an
// offset (a revision superseded before its first epoch elapsed), the
// latest one owns the number.
func (c *Controller) segmentForEpoch(epoch int64) (*types.EmissionsCheckpoint, int64, error) {
	if epoch < 0 {
		return nil, 0, ErrEpochOutOfRange
	}
	if len(c.checkpoints) == 0 {
		return nil, 0, ErrNoCheckpointBefore
	}
	idx := sort.Search(len(c.offsets), func(i int) bool {
		return c.offsets[i] > epoch
	}) - 1
	return c.checkpoints[idx], epoch - c.offsets[idx], nil
}

// EmissionsAtEpoch computes the amount emitted during the given epoch
// under the checkpoint that governs it, decay included.
//
// Decay is geometric with the checkpoint's pinned retention factor: one
// reduction when the local epoch index reaches the cliff, another for
// every further cliff-length interval. Each step multiplies by
// retention/10000 in 256-bit integer arithmetic, truncating toward zero,
// so the sequence is non-increasing and can never over-issue from
// accumulated rounding.
func (c *Controller) EmissionsAtEpoch(epoch int64) (*uint256.Int, error) {
	if epoch < 0 {
		return nil, ErrEpochBeforeStart
	}
	cp, local, err := c.segmentForEpoch(epoch)
	if err != nil {
		return nil, err
	}
	amount := cp.EmissionsPerEpochU256()
	if local < cp.ReductionCliff {
		return amount, nil
	}
	if cp.ReductionBasisPoints == 0 {
		// retention is 10000/10000; flat schedule
		return amount, nil
	}
	var intervals int64
	if cp.ReductionCliff > 0 {
		intervals = (local - cp.ReductionCliff) / cp.ReductionCliff
	} else {
		intervals = local
	}
	retention := uint256.NewInt(uint64(cp.RetentionFactor))
	denominator := uint256.NewInt(uint64(types.BasisPointDenominator))
	product := uint256.NewInt(0)
	for i := int64(0); i <= intervals; i++ {
		if amount.IsZero() {
			break
		}
		if _, overflow := product.MulOverflow(amount, retention); overflow {
			return nil, ErrAmountOverflow
		}
		amount.Div(product, denominator)
	}
	return amount, nil
}
