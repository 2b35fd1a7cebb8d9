package emissions_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/trustbond/emissionsd/emissions"
	"github.com/trustbond/emissionsd/emissions/types"
)

const (
	oneWeek  int64 = 7 * 24 * 3600
	twoWeeks int64 = 14 * 24 * 3600
)

func weeklySchedule() types.CheckpointInit {
	return types.CheckpointInit{
		StartTimestamp:       0,
		EpochLength:          oneWeek,
		EmissionsPerEpoch:    uint256.NewInt(1_000_000),
		ReductionCliff:       4,
		ReductionBasisPoints: 1000,
	}
}

func newWeeklyController(t *testing.T) *emissions.Controller {
	t.Helper()
	ctrl := emissions.NewController()
	_, err := ctrl.AppendInit(weeklySchedule())
	require.NoError(t, err)
	return ctrl
}

func TestBuildCheckpointDerivesRetention(t *testing.T) {
	cp, err := emissions.BuildCheckpoint(nil, weeklySchedule())
	require.NoError(t, err)
	require.Equal(t, int64(9000), cp.RetentionFactor)
	require.Equal(t, uint64(1_000_000), cp.EmissionsPerEpochU256().Uint64())
}

func TestBuildCheckpointValidation(t *testing.T) {
	init := weeklySchedule()
	init.EpochLength = 0
	_, err := emissions.BuildCheckpoint(nil, init)
	require.ErrorIs(t, err, types.ErrInvalidEpochLength)

	init = weeklySchedule()
	init.ReductionBasisPoints = 10_001
	_, err = emissions.BuildCheckpoint(nil, init)
	require.ErrorIs(t, err, types.ErrInvalidBasisPoints)

	init = weeklySchedule()
	init.ReductionCliff = -1
	_, err = emissions.BuildCheckpoint(nil, init)
	require.ErrorIs(t, err, types.ErrNegativeCliff)

	init = weeklySchedule()
	init.EmissionsPerEpoch = nil
	_, err = emissions.BuildCheckpoint(nil, init)
	require.ErrorIs(t, err, types.ErrNilEmissionsPerEpoch)
}

func TestBuildCheckpointSuccessorRules(t *testing.T) {
	genesis, err := emissions.BuildCheckpoint(nil, weeklySchedule())
	require.NoError(t, err)

	next := weeklySchedule()
	next.StartTimestamp = -oneWeek
	_, err = emissions.BuildCheckpoint(genesis, next)
	require.ErrorIs(t, err, types.ErrNegativeStart)

	// one second past the epoch 4 boundary
	next = weeklySchedule()
	next.StartTimestamp = 4*oneWeek + 1
	_, err = emissions.BuildCheckpoint(genesis, next)
	require.ErrorIs(t, err, types.ErrMisalignedCheckpoint)

	next = weeklySchedule()
	next.StartTimestamp = 4 * oneWeek
	cp, err := emissions.BuildCheckpoint(genesis, next)
	require.NoError(t, err)
	require.Equal(t, 4*oneWeek, cp.StartTimestamp)
}

func TestStartBeforePrevious(t *testing.T) {
	ctrl := emissions.NewController()
	init := weeklySchedule()
	init.StartTimestamp = 8 * oneWeek
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	init.StartTimestamp = 7 * oneWeek
	_, err = ctrl.AppendInit(init)
	require.ErrorIs(t, err, types.ErrStartBeforePrevious)
}

func TestEpochAtTimestamp(t *testing.T) {
	ctrl := newWeeklyController(t)

	epoch, err := ctrl.EpochAtTimestamp(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), epoch)

	epoch, err = ctrl.EpochAtTimestamp(oneWeek - 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), epoch)

	epoch, err = ctrl.EpochAtTimestamp(oneWeek)
	require.NoError(t, err)
	require.Equal(t, int64(1), epoch)

	_, err = ctrl.EpochAtTimestamp(-1)
	require.ErrorIs(t, err, emissions.ErrTimestampBeforeStart)
}

func TestEpochBoundaries(t *testing.T) {
	ctrl := newWeeklyController(t)

	end, err := ctrl.EpochEndTimestamp(0)
	require.NoError(t, err)
	require.Equal(t, oneWeek, end)

	start, err := ctrl.EpochStartTimestamp(3)
	require.NoError(t, err)
	require.Equal(t, 3*oneWeek, start)

	// far-future epochs extrapolate with the latest epoch length
	end, err = ctrl.EpochEndTimestamp(1000)
	require.NoError(t, err)
	require.Equal(t, 1001*oneWeek, end)

	_, err = ctrl.EpochEndTimestamp(-1)
	require.ErrorIs(t, err, emissions.ErrEpochOutOfRange)

	// a boundary that cannot be represented in 64 bits
	_, err = ctrl.EpochEndTimestamp(int64(1) << 62)
	require.ErrorIs(t, err, emissions.ErrEpochOutOfRange)
}

func TestEmissionsDecaySchedule(t *testing.T) {
	ctrl := newWeeklyController(t)

	for epoch := int64(0); epoch < 4; epoch++ {
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.Equal(t, uint64(1_000_000), amt.Uint64(), "epoch %d", epoch)
	}

	// first reduction at the cliff, held for a full cliff interval
	for epoch := int64(4); epoch < 8; epoch++ {
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.Equal(t, uint64(900_000), amt.Uint64(), "epoch %d", epoch)
	}

	amt, err := ctrl.EmissionsAtEpoch(8)
	require.NoError(t, err)
	require.Equal(t, uint64(810_000), amt.Uint64())

	amt, err = ctrl.EmissionsAtEpoch(12)
	require.NoError(t, err)
	require.Equal(t, uint64(729_000), amt.Uint64())

	_, err = ctrl.EmissionsAtEpoch(-1)
	require.ErrorIs(t, err, emissions.ErrEpochBeforeStart)
}

func TestEmissionsNonIncreasing(t *testing.T) {
	ctrl := newWeeklyController(t)
	prev, err := ctrl.EmissionsAtEpoch(0)
	require.NoError(t, err)
	for epoch := int64(1); epoch <= 200; epoch++ {
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.True(t, amt.Cmp(prev) <= 0, "epoch %d emits more than epoch %d", epoch, epoch-1)
		prev = amt
	}
}

func TestEmissionsZeroCliffDecaysEveryEpoch(t *testing.T) {
	ctrl := emissions.NewController()
	init := weeklySchedule()
	init.ReductionCliff = 0
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	want := []uint64{900_000, 810_000, 729_000}
	for epoch, amount := range want {
		amt, err := ctrl.EmissionsAtEpoch(int64(epoch))
		require.NoError(t, err)
		require.Equal(t, amount, amt.Uint64(), "epoch %d", epoch)
	}
}

func TestEmissionsFlatScheduleNeverDecays(t *testing.T) {
	ctrl := emissions.NewController()
	init := weeklySchedule()
	init.ReductionBasisPoints = 0
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	for _, epoch := range []int64{0, 4, 1000, 1 << 40} {
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.Equal(t, uint64(1_000_000), amt.Uint64(), "epoch %d", epoch)
	}
}

func TestEmissionsFullReductionDropsToZero(t *testing.T) {
	ctrl := emissions.NewController()
	init := weeklySchedule()
	init.ReductionBasisPoints = 10_000
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	amt, err := ctrl.EmissionsAtEpoch(3)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), amt.Uint64())

	amt, err = ctrl.EmissionsAtEpoch(4)
	require.NoError(t, err)
	require.True(t, amt.IsZero())
}

func TestEmissionsDeepDecayTerminates(t *testing.T) {
	ctrl := emissions.NewController()
	init := weeklySchedule()
	init.ReductionCliff = 1
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	// 10,000 decay intervals: the amount bottoms out at zero, never negative
	amt, err := ctrl.EmissionsAtEpoch(10_000)
	require.NoError(t, err)
	require.True(t, amt.IsZero())
}

func TestEmissionsOverflow(t *testing.T) {
	ctrl := emissions.NewController()
	huge := uint256.NewInt(1)
	huge.Lsh(huge, 255)
	init := weeklySchedule()
	init.EmissionsPerEpoch = huge
	_, err := ctrl.AppendInit(init)
	require.NoError(t, err)

	_, err = ctrl.EmissionsAtEpoch(4)
	require.ErrorIs(t, err, emissions.ErrAmountOverflow)
}

func appendFortnightly(t *testing.T, ctrl *emissions.Controller) {
	t.Helper()
	_, err := ctrl.AppendInit(types.CheckpointInit{
		StartTimestamp:       4 * oneWeek, // epoch 4 boundary
		EpochLength:          twoWeeks,
		EmissionsPerEpoch:    uint256.NewInt(500_000),
		ReductionCliff:       2,
		ReductionBasisPoints: 2000,
	})
	require.NoError(t, err)
}

func TestAppendPreservesHistory(t *testing.T) {
	ctrl := newWeeklyController(t)

	type answer struct {
		epoch int64
		end   int64
		emit  uint64
	}
	before := make([]answer, 4)
	for i := range before {
		ts := int64(i) * oneWeek
		epoch, err := ctrl.EpochAtTimestamp(ts)
		require.NoError(t, err)
		end, err := ctrl.EpochEndTimestamp(epoch)
		require.NoError(t, err)
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		before[i] = answer{epoch, end, amt.Uint64()}
	}

	appendFortnightly(t, ctrl)

	for i, want := range before {
		ts := int64(i) * oneWeek
		epoch, err := ctrl.EpochAtTimestamp(ts)
		require.NoError(t, err)
		require.Equal(t, want.epoch, epoch)
		end, err := ctrl.EpochEndTimestamp(epoch)
		require.NoError(t, err)
		require.Equal(t, want.end, end)
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.Equal(t, want.emit, amt.Uint64())
	}
}

func TestEpochNumberingAcrossCheckpoints(t *testing.T) {
	ctrl := newWeeklyController(t)
	appendFortnightly(t, ctrl)

	// history strictly before the revision still answers under 7-day epochs
	epoch, err := ctrl.EpochAtTimestamp(oneWeek)
	require.NoError(t, err)
	require.Equal(t, int64(1), epoch)

	// the revision's first epoch continues the numbering at offset 4
	epoch, err = ctrl.EpochAtTimestamp(4 * oneWeek)
	require.NoError(t, err)
	require.Equal(t, int64(4), epoch)

	epoch, err = ctrl.EpochAtTimestamp(4*oneWeek + twoWeeks - 1)
	require.NoError(t, err)
	require.Equal(t, int64(4), epoch)

	epoch, err = ctrl.EpochAtTimestamp(4*oneWeek + twoWeeks)
	require.NoError(t, err)
	require.Equal(t, int64(5), epoch)

	// epoch 3 ends where the revision begins; epoch 4 is 14 days long
	end, err := ctrl.EpochEndTimestamp(3)
	require.NoError(t, err)
	require.Equal(t, 4*oneWeek, end)

	end, err = ctrl.EpochEndTimestamp(4)
	require.NoError(t, err)
	require.Equal(t, 4*oneWeek+twoWeeks, end)

	// the operative epoch length is the latest checkpoint's
	require.Equal(t, twoWeeks, ctrl.EpochLength())
}

func TestEmissionsUnderNewCheckpoint(t *testing.T) {
	ctrl := newWeeklyController(t)
	appendFortnightly(t, ctrl)

	// local epochs 0 and 1 of the revision sit before its cliff of 2
	for _, epoch := range []int64{4, 5} {
		amt, err := ctrl.EmissionsAtEpoch(epoch)
		require.NoError(t, err)
		require.Equal(t, uint64(500_000), amt.Uint64(), "epoch %d", epoch)
	}

	// 20% reduction at the cliff
	amt, err := ctrl.EmissionsAtEpoch(6)
	require.NoError(t, err)
	require.Equal(t, uint64(400_000), amt.Uint64())

	amt, err = ctrl.EmissionsAtEpoch(8)
	require.NoError(t, err)
	require.Equal(t, uint64(320_000), amt.Uint64())
}

func TestRoundTripConsistency(t *testing.T) {
	ctrl := newWeeklyController(t)
	appendFortnightly(t, ctrl)

	for _, ts := range []int64{0, 1, oneWeek - 1, oneWeek, 3*oneWeek + 12345,
		4 * oneWeek, 4*oneWeek + 1, 5 * oneWeek, 10 * oneWeek} {
		epoch, err := ctrl.EpochAtTimestamp(ts)
		require.NoError(t, err)
		end, err := ctrl.EpochEndTimestamp(epoch)
		require.NoError(t, err)
		back, err := ctrl.EpochAtTimestamp(end - 1)
		require.NoError(t, err)
		require.Equal(t, epoch, back, "ts %d", ts)
	}
}

func TestEpochContiguity(t *testing.T) {
	ctrl := newWeeklyController(t)
	appendFortnightly(t, ctrl)

	for epoch := int64(0); epoch < 20; epoch++ {
		end, err := ctrl.EpochEndTimestamp(epoch)
		require.NoError(t, err)
		nextStart, err := ctrl.EpochStartTimestamp(epoch + 1)
		require.NoError(t, err)
		require.Equal(t, end, nextStart, "epoch %d", epoch)
	}
}

func TestImmediateSupersede(t *testing.T) {
	// a revision with the same start instantly replaces its predecessor:
	// the old revision governs zero epochs
	ctrl := newWeeklyController(t)
	_, err := ctrl.AppendInit(types.CheckpointInit{
		StartTimestamp:       0,
		EpochLength:          twoWeeks,
		EmissionsPerEpoch:    uint256.NewInt(250_000),
		ReductionCliff:       4,
		ReductionBasisPoints: 1000,
	})
	require.NoError(t, err)

	epoch, err := ctrl.EpochAtTimestamp(twoWeeks - 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), epoch)

	amt, err := ctrl.EmissionsAtEpoch(0)
	require.NoError(t, err)
	require.Equal(t, uint64(250_000), amt.Uint64())
}

func TestFindCheckpoint(t *testing.T) {
	ctrl := newWeeklyController(t)
	appendFortnightly(t, ctrl)

	cp, err := ctrl.FindCheckpoint(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), cp.StartTimestamp)

	cp, err = ctrl.FindCheckpoint(4*oneWeek - 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), cp.StartTimestamp)

	cp, err = ctrl.FindCheckpoint(4 * oneWeek)
	require.NoError(t, err)
	require.Equal(t, 4*oneWeek, cp.StartTimestamp)

	_, err = ctrl.FindCheckpoint(-1)
	require.ErrorIs(t, err, emissions.ErrNoCheckpointBefore)
}

func TestEmptyController(t *testing.T) {
	ctrl := emissions.NewController()
	require.Nil(t, ctrl.Latest())
	require.Equal(t, int64(0), ctrl.EpochLength())
	_, err := ctrl.EpochAtTimestamp(0)
	require.ErrorIs(t, err, emissions.ErrTimestampBeforeStart)
}
