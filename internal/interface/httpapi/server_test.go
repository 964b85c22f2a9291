package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"surety-service/internal/ledger"
	"surety-service/internal/usecase"
	"surety-service/pkg/logger"
	"surety-service/pkg/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPayout struct{}

func (nopPayout) Transfer(ctx context.Context, passenger string, amount money.Amount) error {
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *usecase.Executor) {
	t.Helper()
	st := ledger.New("owner", "airline-1")
	executor := usecase.NewExecutor(st, nil, nil, nil, nopPayout{}, nil, logger.NewNopLogger())
	server := httptest.NewServer(NewServer(executor, logger.NewNopLogger()).Handler())
	t.Cleanup(server.Close)
	return server, executor
}

func postTx(t *testing.T, server *httptest.Server, operation, caller string, params interface{}) *http.Response {
	t.Helper()
	envelope := map[string]interface{}{
		"operation": operation,
		"caller":    caller,
	}
	if params != nil {
		envelope["params"] = params
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/tx", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestTransactionSurface(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("funds an airline", func(t *testing.T) {
		resp := postTx(t, server, "fund", "airline-1", map[string]interface{}{
			"amountMicros": ledger.MinFunding.Micros(),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("registers a flight", func(t *testing.T) {
		resp := postTx(t, server, "register_flight", "airline-1", map[string]interface{}{
			"code":      "MU567",
			"timestamp": 1200,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects premium above the cap with 422", func(t *testing.T) {
		resp := postTx(t, server, "buy", "passenger-1", map[string]interface{}{
			"airline":       "airline-1",
			"code":          "MU567",
			"timestamp":     1200,
			"premiumMicros": money.Units(2).Micros(),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("accepts premium at the cap", func(t *testing.T) {
		resp := postTx(t, server, "buy", "passenger-1", map[string]interface{}{
			"airline":       "airline-1",
			"code":          "MU567",
			"timestamp":     1200,
			"premiumMicros": ledger.MaxPremium.Micros(),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects guard flip by non-owner with 403", func(t *testing.T) {
		resp := postTx(t, server, "set_operational_status", "mallory", map[string]interface{}{
			"operational": false,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("rejects unknown operation with 404", func(t *testing.T) {
		resp := postTx(t, server, "mint_money", "mallory", map[string]interface{}{})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("rejects envelope without caller", func(t *testing.T) {
		resp := postTx(t, server, "fund", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReadQueries(t *testing.T) {
	server, executor := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, executor.Fund(ctx, "airline-1", ledger.MinFunding))
	require.NoError(t, executor.RegisterFlight(ctx, "MU567", 1200, "airline-1"))

	t.Run("operational", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/operational")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body["operational"])
	})

	t.Run("airline lookup", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/airlines/airline-1")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = http.Get(server.URL + "/airlines/missing")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("flight lookup", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/flights/airline-1/MU567/%d", server.URL, 1200))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = http.Get(fmt.Sprintf("%s/flights/airline-1/MU999/%d", server.URL, 1200))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("balance lookup defaults to zero", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/balances/passenger-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			AmountMicros int64 `json:"amountMicros"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Zero(t, body.AmountMicros)
	})
}
