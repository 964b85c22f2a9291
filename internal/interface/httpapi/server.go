package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"surety-service/internal/domain/entity"
	"surety-service/internal/infrastructure/router"
	"surety-service/internal/ledger"
	"surety-service/internal/usecase"
	"surety-service/pkg/logger"
)

// Server exposes the transaction surface and the read-only queries the
// front-end uses. External callers submit transaction envelopes to POST
// /tx; they never see vote records or oracle submissions.
type Server struct {
	executor *usecase.Executor
	router   *router.OperationRouter
	logger   logger.Logger
}

// NewServer creates a new API server with all operation handlers registered
func NewServer(executor *usecase.Executor, log logger.Logger) *Server {
	opRouter := router.NewOperationRouter(log)
	opRouter.Register(NewGuardHandler(executor))
	opRouter.Register(NewGovernanceHandler(executor))
	opRouter.Register(NewRegistryHandler(executor))
	opRouter.Register(NewOracleHandler(executor))
	opRouter.Register(NewUnderwritingHandler(executor))

	return &Server{
		executor: executor,
		router:   opRouter,
		logger:   log,
	}
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tx", s.handleTransaction)
	mux.HandleFunc("GET /operational", s.handleOperational)
	mux.HandleFunc("GET /airlines/{account}", s.handleAirline)
	mux.HandleFunc("GET /flights", s.handleFlights)
	mux.HandleFunc("GET /flights/{airline}/{code}/{timestamp}", s.handleFlight)
	mux.HandleFunc("GET /policies/{airline}/{code}/{timestamp}/{passenger}", s.handlePolicy)
	mux.HandleFunc("GET /balances/{passenger}", s.handleBalance)
	return mux
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	var req router.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Operation == "" || req.Caller == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("operation and caller are required"))
		return
	}

	handler := s.router.GetHandler(req.Operation)
	if handler == nil {
		s.writeError(w, http.StatusNotFound, errors.New("unknown operation "+req.Operation))
		return
	}

	result, err := handler.Handle(r.Context(), &req)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

func (s *Server) handleOperational(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"operational": s.executor.IsOperational()})
}

func (s *Server) handleAirline(w http.ResponseWriter, r *http.Request) {
	airline, ok := s.executor.AirlineInfo(r.PathValue("account"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("unknown airline"))
		return
	}
	s.writeJSON(w, http.StatusOK, airline)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.executor.Flights())
}

func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	key, err := pathFlightKey(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	flight, ok := s.executor.FlightInfo(key)
	if !ok {
		s.writeError(w, http.StatusNotFound, ledger.ErrUnknownFlight)
		return
	}
	s.writeJSON(w, http.StatusOK, flight)
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	key, err := pathFlightKey(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	policy, ok := s.executor.PolicyInfo(key, r.PathValue("passenger"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("no policy for passenger"))
		return
	}
	s.writeJSON(w, http.StatusOK, policy)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	passenger := r.PathValue("passenger")
	balance := s.executor.Balance(passenger)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"passenger":    passenger,
		"amountMicros": balance.Micros(),
		"amount":       balance.String(),
	})
}

func pathFlightKey(r *http.Request) (entity.FlightKey, error) {
	timestamp, err := strconv.ParseInt(r.PathValue("timestamp"), 10, 64)
	if err != nil {
		return entity.FlightKey{}, errors.New("invalid flight timestamp")
	}
	return entity.FlightKey{
		Airline:   r.PathValue("airline"),
		Code:      r.PathValue("code"),
		Timestamp: timestamp,
	}, nil
}

// statusFor maps engine sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotOperational):
		return http.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrAlreadyRegistered),
		errors.Is(err, ledger.ErrDuplicateSubmission),
		errors.Is(err, ledger.ErrFlightResolved):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnknownFlight), errors.Is(err, ledger.ErrUnknownRequest):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrPriceCapExceeded),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
