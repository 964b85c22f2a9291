package httpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"surety-service/internal/domain/entity"
	"surety-service/internal/infrastructure/router"
	"surety-service/internal/usecase"
	"surety-service/pkg/money"
)

// flightKeyParams is the wire form of a flight key inside tx params.
type flightKeyParams struct {
	Airline   string `json:"airline"`
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
}

func (p flightKeyParams) key() entity.FlightKey {
	return entity.FlightKey{Airline: p.Airline, Code: p.Code, Timestamp: p.Timestamp}
}

func decodeParams(req *router.Request, out interface{}) error {
	if len(req.Params) == 0 {
		return fmt.Errorf("missing params for operation %s", req.Operation)
	}
	if err := json.Unmarshal(req.Params, out); err != nil {
		return fmt.Errorf("decode params for %s: %w", req.Operation, err)
	}
	return nil
}

// GuardHandler handles the operational guard operation
type GuardHandler struct {
	executor *usecase.Executor
}

func NewGuardHandler(executor *usecase.Executor) *GuardHandler {
	return &GuardHandler{executor: executor}
}

func (h *GuardHandler) CanHandle(operation string) bool {
	return operation == entity.OpSetOperationalStatus
}

func (h *GuardHandler) Handle(ctx context.Context, req *router.Request) (interface{}, error) {
	var params struct {
		Operational bool `json:"operational"`
	}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	if err := h.executor.SetOperationalStatus(ctx, params.Operational, req.Caller); err != nil {
		return nil, err
	}
	return map[string]bool{"operational": params.Operational}, nil
}

// GovernanceHandler handles funding and airline registration
type GovernanceHandler struct {
	executor *usecase.Executor
}

func NewGovernanceHandler(executor *usecase.Executor) *GovernanceHandler {
	return &GovernanceHandler{executor: executor}
}

func (h *GovernanceHandler) CanHandle(operation string) bool {
	return operation == entity.OpFund || operation == entity.OpRegisterAirline
}

func (h *GovernanceHandler) Handle(ctx context.Context, req *router.Request) (interface{}, error) {
	switch req.Operation {
	case entity.OpFund:
		var params struct {
			AmountMicros int64 `json:"amountMicros"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := h.executor.Fund(ctx, req.Caller, money.Micros(params.AmountMicros)); err != nil {
			return nil, err
		}
		return map[string]bool{"funded": true}, nil
	case entity.OpRegisterAirline:
		var params struct {
			Candidate string `json:"candidate"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		registered, err := h.executor.RegisterAirline(ctx, params.Candidate, req.Caller)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"registered": registered}, nil
	}
	return nil, fmt.Errorf("unhandled operation %s", req.Operation)
}

// RegistryHandler handles flight registration and status fetch
type RegistryHandler struct {
	executor *usecase.Executor
}

func NewRegistryHandler(executor *usecase.Executor) *RegistryHandler {
	return &RegistryHandler{executor: executor}
}

func (h *RegistryHandler) CanHandle(operation string) bool {
	return operation == entity.OpRegisterFlight || operation == entity.OpFetchFlightStatus
}

func (h *RegistryHandler) Handle(ctx context.Context, req *router.Request) (interface{}, error) {
	switch req.Operation {
	case entity.OpRegisterFlight:
		var params struct {
			Code      string `json:"code"`
			Timestamp int64  `json:"timestamp"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := h.executor.RegisterFlight(ctx, params.Code, params.Timestamp, req.Caller); err != nil {
			return nil, err
		}
		key := entity.FlightKey{Airline: req.Caller, Code: params.Code, Timestamp: params.Timestamp}
		return map[string]string{"flight": key.String()}, nil
	case entity.OpFetchFlightStatus:
		var params flightKeyParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := h.executor.FetchFlightStatus(ctx, params.key(), req.Caller); err != nil {
			return nil, err
		}
		return map[string]string{"flight": params.key().String()}, nil
	}
	return nil, fmt.Errorf("unhandled operation %s", req.Operation)
}

// OracleHandler handles oracle enrollment and response submission
type OracleHandler struct {
	executor *usecase.Executor
}

func NewOracleHandler(executor *usecase.Executor) *OracleHandler {
	return &OracleHandler{executor: executor}
}

func (h *OracleHandler) CanHandle(operation string) bool {
	return operation == entity.OpRegisterOracle || operation == entity.OpSubmitOracleResponse
}

func (h *OracleHandler) Handle(ctx context.Context, req *router.Request) (interface{}, error) {
	switch req.Operation {
	case entity.OpRegisterOracle:
		if err := h.executor.RegisterOracle(ctx, req.Caller); err != nil {
			return nil, err
		}
		return map[string]bool{"enrolled": true}, nil
	case entity.OpSubmitOracleResponse:
		var params struct {
			flightKeyParams
			Status int `json:"status"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		status := entity.FlightStatus(params.Status)
		if err := h.executor.SubmitOracleResponse(ctx, req.Caller, params.key(), status); err != nil {
			return nil, err
		}
		return map[string]bool{"accepted": true}, nil
	}
	return nil, fmt.Errorf("unhandled operation %s", req.Operation)
}

// UnderwritingHandler handles insurance purchase and withdrawal
type UnderwritingHandler struct {
	executor *usecase.Executor
}

func NewUnderwritingHandler(executor *usecase.Executor) *UnderwritingHandler {
	return &UnderwritingHandler{executor: executor}
}

func (h *UnderwritingHandler) CanHandle(operation string) bool {
	return operation == entity.OpBuy || operation == entity.OpWithdraw
}

func (h *UnderwritingHandler) Handle(ctx context.Context, req *router.Request) (interface{}, error) {
	switch req.Operation {
	case entity.OpBuy:
		var params struct {
			flightKeyParams
			PremiumMicros int64 `json:"premiumMicros"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := h.executor.Buy(ctx, params.key(), req.Caller, money.Micros(params.PremiumMicros)); err != nil {
			return nil, err
		}
		return map[string]bool{"insured": true}, nil
	case entity.OpWithdraw:
		var params struct {
			AmountMicros int64 `json:"amountMicros"`
		}
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := h.executor.Withdraw(ctx, req.Caller, money.Micros(params.AmountMicros)); err != nil {
			return nil, err
		}
		return map[string]bool{"withdrawn": true}, nil
	}
	return nil, fmt.Errorf("unhandled operation %s", req.Operation)
}
