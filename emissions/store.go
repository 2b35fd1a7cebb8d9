package emissions

import (
	"encoding/binary"
	"fmt"

	"github.com/trustbond/emissionsd/emissions/types"
	"github.com/trustbond/emissionsd/store"
)

// Checkpoints are persisted under an 8-byte big-endian index so that a
// plain key-ordered scan replays them in append order.
var (
	checkpointKeyPrefix = []byte{0x01}
	checkpointKeyEnd    = []byte{0x02}
)

func checkpointKey(idx int) []byte {
	key := make([]byte, 9)
	key[0] = checkpointKeyPrefix[0]
	binary.BigEndian.PutUint64(key[1:], uint64(idx))
	return key
}

// SaveCheckpoint writes the checkpoint at the given history index. The
// caller persists before making the checkpoint visible to readers.
func SaveCheckpoint(kv store.KVStore, idx int, cp *types.EmissionsCheckpoint) error {
	bz, err := cp.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return kv.Put(checkpointKey(idx), bz)
}

// LoadController rebuilds a controller by replaying the persisted
// checkpoint log. Pinned retention factors are adopted as stored, never
// re-derived.
func LoadController(kv store.KVStore) (*Controller, error) {
	ctrl := NewController()
	iter, err := kv.NewIterator(checkpointKeyPrefix, checkpointKeyEnd)
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	for iter.Next() {
		bz, err := iter.Value()
		if err != nil {
			return nil, err
		}
		var cp types.EmissionsCheckpoint
		if _, err := cp.UnmarshalMsg(bz); err != nil {
			return nil, fmt.Errorf("corrupt checkpoint record %x: %w", iter.Key(), err)
		}
		if err := ctrl.Append(&cp); err != nil {
			return nil, fmt.Errorf("invalid checkpoint record %x: %w", iter.Key(), err)
		}
	}
	return ctrl, nil
}
