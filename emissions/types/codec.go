package types

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// MessagePack field names. The wire layout is pinned: persisted
// checkpoints must decode bit-for-bit across releases.
const (
	fieldStartTimestamp       = "start_timestamp"
	fieldEpochLength          = "epoch_length"
	fieldEmissionsPerEpoch    = "emissions_per_epoch"
	fieldReductionCliff       = "reduction_cliff"
	fieldReductionBasisPoints = "reduction_basis_points"
	fieldRetentionFactor      = "retention_factor"
)

// MarshalMsg implements msgp.Marshaler.
func (cp *EmissionsCheckpoint) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.Require(b, cp.Msgsize())
	o = msgp.AppendMapHeader(o, 6)
	o = msgp.AppendString(o, fieldStartTimestamp)
	o = msgp.AppendInt64(o, cp.StartTimestamp)
	o = msgp.AppendString(o, fieldEpochLength)
	o = msgp.AppendInt64(o, cp.EpochLength)
	o = msgp.AppendString(o, fieldEmissionsPerEpoch)
	o = msgp.AppendBytes(o, cp.EmissionsPerEpoch[:])
	o = msgp.AppendString(o, fieldReductionCliff)
	o = msgp.AppendInt64(o, cp.ReductionCliff)
	o = msgp.AppendString(o, fieldReductionBasisPoints)
	o = msgp.AppendInt64(o, cp.ReductionBasisPoints)
	o = msgp.AppendString(o, fieldRetentionFactor)
	o = msgp.AppendInt64(o, cp.RetentionFactor)
	return o, nil
}

// UnmarshalMsg implements msgp.Unmarshaler. Unknown fields are skipped
// so that older binaries can read records written by newer ones.
func (cp *EmissionsCheckpoint) UnmarshalMsg(bts []byte) ([]byte, error) {
	sz, bts, err := msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return bts, err
	}
	for i := uint32(0); i < sz; i++ {
		var field []byte
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return bts, err
		}
		switch string(field) {
		case fieldStartTimestamp:
			cp.StartTimestamp, bts, err = msgp.ReadInt64Bytes(bts)
		case fieldEpochLength:
			cp.EpochLength, bts, err = msgp.ReadInt64Bytes(bts)
		case fieldEmissionsPerEpoch:
			var raw []byte
			raw, bts, err = msgp.ReadBytesBytes(bts, nil)
			if err == nil {
				if len(raw) != len(cp.EmissionsPerEpoch) {
					return bts, fmt.Errorf("emissions_per_epoch: expected %d bytes, got %d",
						len(cp.EmissionsPerEpoch), len(raw))
				}
				copy(cp.EmissionsPerEpoch[:], raw)
			}
		case fieldReductionCliff:
			cp.ReductionCliff, bts, err = msgp.ReadInt64Bytes(bts)
		case fieldReductionBasisPoints:
			cp.ReductionBasisPoints, bts, err = msgp.ReadInt64Bytes(bts)
		case fieldRetentionFactor:
			cp.RetentionFactor, bts, err = msgp.ReadInt64Bytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			return bts, err
		}
	}
	return bts, nil
}

// Msgsize implements msgp.Sizer.
func (cp *EmissionsCheckpoint) Msgsize() int {
	sz := msgp.MapHeaderSize
	sz += msgp.StringPrefixSize + len(fieldStartTimestamp) + msgp.Int64Size
	sz += msgp.StringPrefixSize + len(fieldEpochLength) + msgp.Int64Size
	sz += msgp.StringPrefixSize + len(fieldEmissionsPerEpoch) + msgp.BytesPrefixSize + len(cp.EmissionsPerEpoch)
	sz += msgp.StringPrefixSize + len(fieldReductionCliff) + msgp.Int64Size
	sz += msgp.StringPrefixSize + len(fieldReductionBasisPoints) + msgp.Int64Size
	sz += msgp.StringPrefixSize + len(fieldRetentionFactor) + msgp.Int64Size
	return sz
}
