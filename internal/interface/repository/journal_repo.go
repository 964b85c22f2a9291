package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormJournalRepository implements the JournalRepository interface
type GormJournalRepository struct {
	db *gorm.DB
}

// Transactions GORM model for database mapping
type Transactions struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement:false;column:seq"`
	TxID      string `gorm:"column:tx_id;uniqueIndex"`
	Operation string `gorm:"column:operation;index"`
	Caller    string `gorm:"column:caller;index"`
	Payload   string `gorm:"column:payload;type:jsonb"`
	AppliedAt time.Time
	CreatedAt time.Time
}

// TableName overrides the default table name
func (Transactions) TableName() string {
	return "t_transactions"
}

// NewGormJournalRepository creates a new GORM journal repository
func NewGormJournalRepository(db *gorm.DB) (repository.JournalRepository, error) {
	if err := db.AutoMigrate(&Transactions{}); err != nil {
		return nil, err
	}
	return &GormJournalRepository{db: db}, nil
}

// newTransactionRow maps a transaction onto its journal row. The payload
// column is jsonb, so a transaction without parameters is stored as the
// JSON null literal, never the empty string Postgres rejects.
func newTransactionRow(tx *entity.Transaction) (Transactions, error) {
	payload := "null"
	if tx.Payload != nil {
		raw, err := json.Marshal(tx.Payload)
		if err != nil {
			return Transactions{}, err
		}
		payload = string(raw)
	}

	return Transactions{
		Seq:       tx.Seq,
		TxID:      tx.ID,
		Operation: tx.Operation,
		Caller:    tx.Caller,
		Payload:   payload,
		AppliedAt: tx.AppliedAt,
	}, nil
}

// Append persists one applied transaction at its sequence position.
func (r *GormJournalRepository) Append(ctx context.Context, tx *entity.Transaction) error {
	row, err := newTransactionRow(tx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// LastSeq returns the highest journaled sequence number, 0 when empty.
func (r *GormJournalRepository) LastSeq(ctx context.Context) (uint64, error) {
	var row Transactions
	result := r.db.WithContext(ctx).Order("seq DESC").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return row.Seq, nil
}
