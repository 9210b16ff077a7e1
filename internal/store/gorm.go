package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudhire/cloudhire-backend/internal/models"
)

// recordRow mirrors the flat-table shape on SQL: one row per record, the
// loose document kept whole as JSON so arbitrary client fields survive the
// same way they do on DynamoDB.
type recordRow struct {
	ID        string `gorm:"primaryKey"`
	Doc       []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (recordRow) TableName() string { return "records" }

// Gorm is the Postgres-backed RecordStore for self-hosted deployments.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an open gorm connection and runs the schema migration.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("migrate records table: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, id string) (models.Record, error) {
	var row recordRow
	err := g.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select record %q: %w", id, err)
	}
	return decodeDoc(row.Doc)
}

func (g *Gorm) Put(ctx context.Context, rec models.Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", rec.ID(), err)
	}
	row := recordRow{ID: rec.ID(), Doc: doc}
	err = g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert record %q: %w", rec.ID(), err)
	}
	return nil
}

func (g *Gorm) Update(ctx context.Context, id string, fields map[string]any) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recordRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "id = ?", id).Error

		rec := models.Record{"id": id}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Update against a missing id creates the record from the
			// delta, keeping parity with DynamoDB UpdateItem.
		case err != nil:
			return fmt.Errorf("select record %q for update: %w", id, err)
		default:
			if rec, err = decodeDoc(row.Doc); err != nil {
				return err
			}
		}

		for k, v := range fields {
			if k == "id" {
				continue
			}
			rec[k] = v
		}

		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %q: %w", id, err)
		}
		updated := recordRow{ID: id, Doc: doc}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).Create(&updated).Error
	})
}

func (g *Gorm) Delete(ctx context.Context, id string) error {
	err := g.db.WithContext(ctx).Delete(&recordRow{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("delete record %q: %w", id, err)
	}
	return nil
}

func (g *Gorm) Scan(ctx context.Context) ([]models.Record, error) {
	var rows []recordRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeDoc(row.Doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeDoc(doc []byte) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("decode record document: %w", err)
	}
	return rec, nil
}
