package bridgestate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xPolygon/msgbridge/db"
	"github.com/0xPolygon/msgbridge/log"
)

// SnapshotStorer is where the persister saves and loads snapshots
type SnapshotStorer interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot, generation uint64) error
	LastSnapshot(ctx context.Context) (*StoredSnapshot, error)
}

// Persister saves the state periodically and restores it on startup. Saves can
// also be forced with Checkpoint, they are serialised with the periodic ones.
type Persister struct {
	logger   *log.Logger
	state    *BridgeState
	storage  SnapshotStorer
	interval time.Duration

	mu        sync.Mutex
	lastSaved uint64
}

func NewPersister(logger *log.Logger, state *BridgeState, storage SnapshotStorer, interval time.Duration) *Persister {
	return &Persister{
		logger:    logger,
		state:     state,
		storage:   storage,
		interval:  interval,
		lastSaved: state.Generation(),
	}
}

// Load restores the last stored snapshot. It returns false if there was nothing stored.
func (p *Persister) Load(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored, err := p.storage.LastSnapshot(ctx)
	if errors.Is(err, db.ErrNotFound) {
		p.logger.Info("no snapshot found, starting from an empty state")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error loading last snapshot: %w", err)
	}
	if err := p.state.Restore(stored.Snapshot); err != nil {
		return false, fmt.Errorf("error restoring snapshot %d: %w", stored.ID, err)
	}
	p.lastSaved = p.state.Generation()
	p.logger.Infof("restored snapshot %d (hash %s) taken at %s: %d nonces, %d incoming, %d outgoing, %d claimable",
		stored.ID, stored.Hash.Hex(), stored.CreatedAt.UTC().Format(time.RFC3339),
		len(stored.Nonces), len(stored.Incoming), len(stored.Outgoing), len(stored.Claimable))
	return true, nil
}

// SaveIfChanged saves the state if it changed since the last save
func (p *Persister) SaveIfChanged(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap, generation := p.state.SnapshotWithGeneration()
	if generation == p.lastSaved {
		return false, nil
	}
	if err := p.storage.SaveSnapshot(ctx, snap, generation); err != nil {
		return false, err
	}
	p.lastSaved = generation
	return true, nil
}

// Checkpoint saves the state now if it changed since the last save
func (p *Persister) Checkpoint(ctx context.Context) error {
	if _, err := p.SaveIfChanged(ctx); err != nil {
		return fmt.Errorf("error saving checkpoint: %w", err)
	}
	return nil
}

// Start saves the state every interval until ctx is done, then saves it one last time
func (p *Persister) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := p.SaveIfChanged(ctx); err != nil {
				p.logger.Errorf("error saving snapshot: %v", err)
			}
		case <-ctx.Done():
			// ctx is already cancelled, the last save gets a fresh one
			if _, err := p.SaveIfChanged(context.Background()); err != nil {
				p.logger.Errorf("error saving final snapshot: %v", err)
				return
			}
			p.logger.Info("final snapshot saved")
			return
		}
	}
}
