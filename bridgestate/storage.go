package bridgestate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/msgbridge/bridgestate/migrations"
	"github.com/0xPolygon/msgbridge/db"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/russross/meddler"
)

const snapshotTable = "snapshot"

// ErrCorruptedSnapshot is returned when the stored data does not match its hash
var ErrCorruptedSnapshot = errors.New("corrupted snapshot")

type snapshotRow struct {
	ID         int64       `meddler:"id,pk"`
	Version    uint64      `meddler:"version"`
	Generation uint64      `meddler:"generation"`
	Hash       common.Hash `meddler:"hash,hash"`
	Data       []byte      `meddler:"data"`
	CreatedAt  int64       `meddler:"created_at"`
}

// StoredSnapshot is a snapshot read back from the storage
type StoredSnapshot struct {
	*Snapshot
	ID         int64
	Generation uint64
	Hash       common.Hash
	CreatedAt  time.Time
}

// Storage keeps the snapshots of the bridge state in a sqlite DB
type Storage struct {
	logger *log.Logger
	db     *sql.DB
	// keep is how many snapshots are retained, older ones are pruned on save
	keep uint64
}

// NewStorage opens the DB at dbPath, running the pending migrations
func NewStorage(logger *log.Logger, dbPath string, keep uint64) (*Storage, error) {
	database, err := db.NewSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(logger, database); err != nil {
		database.Close()
		return nil, err
	}
	if keep == 0 {
		keep = 1
	}
	return &Storage{
		logger: logger,
		db:     database,
		keep:   keep,
	}, nil
}

// SaveSnapshot stores the snapshot and prunes the old ones
func (s *Storage) SaveSnapshot(ctx context.Context, snap *Snapshot, generation uint64) (err error) {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	row := &snapshotRow{
		Version:    snap.Version,
		Generation: generation,
		Hash:       crypto.Keccak256Hash(data),
		Data:       data,
		CreatedAt:  time.Now().Unix(),
	}

	tx, err := db.NewTx(ctx, s.db)
	if err != nil {
		return err
	}
	defer tx.RollbackIfError(s.logger, &err)

	if err = meddler.Insert(tx, snapshotTable, row); err != nil {
		return fmt.Errorf("error inserting snapshot: %w", err)
	}
	if _, err = tx.Exec(`DELETE FROM snapshot WHERE id <= $1;`, row.ID-int64(s.keep)); err != nil {
		return fmt.Errorf("error pruning snapshots: %w", err)
	}
	tx.OnCommit(func() {
		s.logger.Debugf("saved snapshot %d, generation %d, hash %s, %d bytes",
			row.ID, generation, row.Hash.Hex(), len(data))
	})
	return tx.Commit()
}

// LastSnapshot returns the latest stored snapshot or db.ErrNotFound if there is none
func (s *Storage) LastSnapshot(ctx context.Context) (*StoredSnapshot, error) {
	row := &snapshotRow{}
	err := meddler.QueryRow(s.db, row, `SELECT * FROM snapshot ORDER BY id DESC LIMIT 1;`)
	if err != nil {
		return nil, db.ReturnErrNotFound(err)
	}
	if crypto.Keccak256Hash(row.Data) != row.Hash {
		return nil, fmt.Errorf("snapshot %d: %w", row.ID, ErrCorruptedSnapshot)
	}
	snap, err := DecodeSnapshot(row.Data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", row.ID, err)
	}
	return &StoredSnapshot{
		Snapshot:   snap,
		ID:         row.ID,
		Generation: row.Generation,
		Hash:       row.Hash,
		CreatedAt:  time.Unix(row.CreatedAt, 0),
	}, nil
}

// Count returns how many snapshots are stored
func (s *Storage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
