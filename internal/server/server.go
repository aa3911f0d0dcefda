// Package server exposes the mortgage calculators over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/output"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	maxDTI         float64
	version        string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// maxDTI is applied to affordability requests that omit their own ratio.
func NewHandler(logger *zap.Logger, maxRequestSize int64, maxDTI float64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	if maxDTI == 0 {
		maxDTI = affordability.DefaultMaxDTI
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, maxDTI: maxDTI, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/payment", h.handlePayment)
	mux.HandleFunc("/api/loan-amount", h.handleLoanAmount)
	mux.HandleFunc("/api/affordability", h.handleAffordability)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type paymentRequest struct {
	Principal          float64 `json:"principal"`
	AnnualInterestRate float64 `json:"annualInterestRate"`
	Years              int     `json:"years"`
}

type loanAmountRequest struct {
	MonthlyPayment     float64 `json:"monthlyPayment"`
	AnnualInterestRate float64 `json:"annualInterestRate"`
	Years              int     `json:"years"`
}

type affordabilityRequest struct {
	MonthlyIncome      float64  `json:"monthlyIncome"`
	MonthlyDebt        float64  `json:"monthlyDebt"`
	AnnualInterestRate float64  `json:"annualInterestRate"`
	Years              int      `json:"years"`
	MaxDTI             *float64 `json:"maxDti,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePayment"
	start := time.Now()

	var req paymentRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	summary, err := loans.Summarize(loans.Loan{
		Principal:          req.Principal,
		AnnualInterestRate: req.AnnualInterestRate,
		Years:              req.Years,
	})
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	h.logCompleted(op, start)
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleLoanAmount(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoanAmount"
	start := time.Now()

	var req loanAmountRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	amount, err := loans.LoanAmount(req.MonthlyPayment, req.AnnualInterestRate, req.Years)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	h.logCompleted(op, start)
	h.writeJSON(w, http.StatusOK, output.LoanAmountResult{
		MonthlyPayment:     req.MonthlyPayment,
		AnnualInterestRate: req.AnnualInterestRate,
		Years:              req.Years,
		LoanAmount:         amount,
	})
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAffordability"
	start := time.Now()

	var req affordabilityRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	maxDTI := h.maxDTI
	if req.MaxDTI != nil {
		maxDTI = *req.MaxDTI
	}

	borrower := affordability.Borrower{MonthlyIncome: req.MonthlyIncome, MonthlyDebt: req.MonthlyDebt}
	assessment, err := affordability.Assess(borrower, req.AnnualInterestRate, req.Years, maxDTI)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	h.logCompleted(op, start)
	h.writeJSON(w, http.StatusOK, assessment)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a JSON request body into dst, writing the error response and
// returning false when the request cannot be used.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		// The body must hold exactly one JSON value.
		if extra := decoder.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = extra
			if err == nil {
				err = errors.New("request body must contain a single JSON object")
			}
		}
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize)}, op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("failed to decode request: %v", err)}, op)
		return false
	}
	return true
}

func statusForKind(kind string) int {
	switch kind {
	case validation.KindInvalidInput, validation.KindDivisionByZero:
		return http.StatusBadRequest
	case validation.KindUnaffordable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondCalculationError(w http.ResponseWriter, err error, op string) {
	kind := validation.Kind(err)
	h.respondErrorWithOp(w, statusForKind(kind), errorResponse{Error: err.Error(), Kind: kind}, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, resp errorResponse, op string) {
	h.logger.Warn("calculation request rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("kind", resp.Kind),
		zap.String("error", resp.Error),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) logCompleted(op string, start time.Time) {
	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
