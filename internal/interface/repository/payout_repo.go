package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"surety-service/internal/domain/repository"
	"surety-service/pkg/logger"
	"surety-service/pkg/money"
)

// HTTPPayoutGateway sends withdrawal transfers to an external treasury
// service. With no endpoint configured it records transfers in the log
// only, which is the mode used in local development.
type HTTPPayoutGateway struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPPayoutGateway creates a new payout gateway
func NewHTTPPayoutGateway(baseURL, bearerToken string, logger logger.Logger) repository.PayoutGateway {
	return &HTTPPayoutGateway{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type transferRequest struct {
	Passenger    string `json:"passenger"`
	AmountMicros int64  `json:"amountMicros"`
	Amount       string `json:"amount"`
}

// Transfer posts one withdrawal transfer to the treasury endpoint.
func (g *HTTPPayoutGateway) Transfer(ctx context.Context, passenger string, amount money.Amount) error {
	if g.baseURL == "" {
		g.logger.Info("Payout recorded (no treasury endpoint configured)",
			"passenger", passenger, "amount", amount.String())
		return nil
	}

	body, err := json.Marshal(transferRequest{
		Passenger:    passenger,
		AmountMicros: amount.Micros(),
		Amount:       amount.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.bearerToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("treasury request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("treasury returned status %d", resp.StatusCode)
	}

	g.logger.Info("Payout transferred", "passenger", passenger, "amount", amount.String())
	return nil
}
