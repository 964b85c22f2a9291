package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surety-service/internal/domain/entity"
)

func TestNewTransactionRowWithoutPayload(t *testing.T) {
	tx := &entity.Transaction{
		ID:        "tx-1",
		Seq:       7,
		Operation: entity.OpRegisterOracle,
		Caller:    "oracle-1",
		AppliedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}

	row, err := newTransactionRow(tx)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), row.Seq)
	assert.Equal(t, "tx-1", row.TxID)
	assert.Equal(t, entity.OpRegisterOracle, row.Operation)
	assert.Equal(t, "oracle-1", row.Caller)
	assert.Equal(t, "null", row.Payload)
	assert.True(t, json.Valid([]byte(row.Payload)), "payload column must always hold valid JSON")
}

func TestNewTransactionRowSerializesPayload(t *testing.T) {
	tx := &entity.Transaction{
		ID:        "tx-2",
		Seq:       8,
		Operation: entity.OpFund,
		Caller:    "airline-1",
		Payload:   map[string]interface{}{"amount": 10},
		AppliedAt: time.Now().UTC(),
	}

	row, err := newTransactionRow(tx)
	require.NoError(t, err)

	assert.JSONEq(t, `{"amount": 10}`, row.Payload)
}
