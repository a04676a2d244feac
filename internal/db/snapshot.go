package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot Model: one row per logical table of the application state
type Snapshot struct {
	Name      string    `gorm:"primaryKey;size:64"` // Table name
	Payload   []byte    `gorm:"type:longblob"`      // JSON encoded table
	UpdatedAt time.Time                             // Last save
}

// SnapshotGateway stores table snapshots through GORM
type SnapshotGateway struct {
	db *gorm.DB
}

// NewSnapshotGateway wraps an open connection
func NewSnapshotGateway(db *gorm.DB) *SnapshotGateway {
	return &SnapshotGateway{db: db}
}

// Load returns the payload of a table; found is false when no row exists yet
func (g *SnapshotGateway) Load(ctx context.Context, table string) ([]byte, bool, error) {
	var snap Snapshot
	err := g.db.WithContext(ctx).Where("name = ?", table).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil // Missing record means empty table
	}
	if err != nil {
		return nil, false, err
	}
	return snap.Payload, true, nil
}

// Save upserts a table payload in its own transaction so a failed write
// never touches the rows of other tables
func (g *SnapshotGateway) Save(ctx context.Context, table string, payload []byte) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snap := Snapshot{Name: table, Payload: payload, UpdatedAt: time.Now()}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&snap).Error
	})
}
