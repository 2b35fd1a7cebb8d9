package api

import (
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/trustbond/emissionsd/app"
	"github.com/trustbond/emissionsd/emissions"
	"github.com/trustbond/emissionsd/emissions/types"
)

var _ BackendService = (*apiBackend)(nil)

// BackendService is the surface the RPC layer talks to. Reads are served
// concurrently; AppendCheckpoint is the single mutating operation and is
// serialized here, so the controller itself stays lock-free.
type BackendService interface {
	EpochLength() int64
	EpochAtTimestamp(ts int64) (int64, error)
	EpochStartTimestamp(epoch int64) (int64, error)
	EpochEndTimestamp(epoch int64) (int64, error)
	EmissionsAtEpoch(epoch int64) (*uint256.Int, error)
	CurrentEpoch() (int64, error)
	PreviousEpoch() (int64, error)
	EmissionsForCurrentEpoch() (*uint256.Int, error)
	Checkpoints() []types.EmissionsCheckpoint
	AppendCheckpoint(init types.CheckpointInit) (*types.EmissionsCheckpoint, error)
}

type apiBackend struct {
	mu  sync.RWMutex
	app *app.App
	now func() int64
}

func NewBackend(a *app.App) BackendService {
	return &apiBackend{
		app: a,
		now: func() int64 { return time.Now().Unix() },
	}
}

func (backend *apiBackend) EpochLength() int64 {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EpochLength()
}

func (backend *apiBackend) EpochAtTimestamp(ts int64) (int64, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EpochAtTimestamp(ts)
}

func (backend *apiBackend) EpochStartTimestamp(epoch int64) (int64, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EpochStartTimestamp(epoch)
}

func (backend *apiBackend) EpochEndTimestamp(epoch int64) (int64, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EpochEndTimestamp(epoch)
}

func (backend *apiBackend) EmissionsAtEpoch(epoch int64) (*uint256.Int, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EmissionsAtEpoch(epoch)
}

func (backend *apiBackend) CurrentEpoch() (int64, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().EpochAtTimestamp(backend.now())
}

// PreviousEpoch returns the last fully elapsed epoch, the one whose
// emissions a consumer may settle. During epoch 0 there is none yet, so
// it reports 0.
func (backend *apiBackend) PreviousEpoch() (int64, error) {
	curr, err := backend.CurrentEpoch()
	if err != nil {
		return 0, err
	}
	if curr == 0 {
		return 0, nil
	}
	return curr - 1, nil
}

func (backend *apiBackend) EmissionsForCurrentEpoch() (*uint256.Int, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	ctrl := backend.app.Controller()
	epoch, err := ctrl.EpochAtTimestamp(backend.now())
	if err != nil {
		return nil, err
	}
	return ctrl.EmissionsAtEpoch(epoch)
}

func (backend *apiBackend) Checkpoints() []types.EmissionsCheckpoint {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return backend.app.Controller().Checkpoints()
}

// AppendCheckpoint validates and persists a schedule revision, then makes
// it visible. The write hits the store before the in-memory append, so a
// failed write never leaves a revision readers can observe but a restart
// would lose.
func (backend *apiBackend) AppendCheckpoint(init types.CheckpointInit) (*types.EmissionsCheckpoint, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	ctrl := backend.app.Controller()
	cp, err := emissions.BuildCheckpoint(ctrl.Latest(), init)
	if err != nil {
		return nil, err
	}
	if err := emissions.SaveCheckpoint(backend.app.KV(), ctrl.NumCheckpoints(), cp); err != nil {
		return nil, err
	}
	if err := ctrl.Append(cp); err != nil {
		return nil, err
	}
	return cp, nil
}
