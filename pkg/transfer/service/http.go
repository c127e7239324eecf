package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/settle-rebalancer/pkg/app/errors"
	apphttp "github.com/chainsafe/settle-rebalancer/pkg/app/http"
	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

const maxBodyBytes = 1 << 20

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	validate *validator.Validate
	logger   *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the transfer service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}

	handle := func(fn apphttp.HandlerFunc) http.HandlerFunc {
		return apphttp.HandleErrorWithLogger(logger, fn)
	}

	r.Get("/chains", handle(h.chains))
	r.Route("/transfers", func(r chi.Router) {
		r.Post("/", handle(h.submit))
		r.Get("/", handle(h.list))
		r.Get("/latest", handle(h.latest))
		r.Get("/{id}", handle(h.get))
		r.Post("/{id}/cancel", handle(h.cancel))
		r.Post("/{id}/resume", handle(h.resume))
	})
}

// TransferRequest is the body of POST /transfers. Amount is a decimal string
// in whole token units, e.g. "12.5".
type TransferRequest struct {
	SourceChain          string `json:"sourceChain" validate:"required"`
	DestinationChain     string `json:"destinationChain" validate:"required"`
	Amount               string `json:"amount" validate:"required"`
	DestinationAddress   string `json:"destinationAddress" validate:"required,eth_addr"`
	SourceWalletRef      string `json:"sourceWalletRef,omitempty"`
	DestinationWalletRef string `json:"destinationWalletRef,omitempty"`
	Speed                string `json:"speed,omitempty" validate:"omitempty,oneof=fast standard"`
}

// TransferResponse renders a record with display amounts.
type TransferResponse struct {
	ID                   string    `json:"id"`
	Kind                 string    `json:"kind"`
	Status               string    `json:"status"`
	SourceChain          string    `json:"sourceChain"`
	DestinationChain     string    `json:"destinationChain"`
	Amount               string    `json:"amount"`
	AmountUnits          string    `json:"amountUnits"`
	DestinationAddress   string    `json:"destinationAddress"`
	SourceWalletRef      string    `json:"sourceWalletRef,omitempty"`
	DestinationWalletRef string    `json:"destinationWalletRef,omitempty"`
	Speed                string    `json:"speed"`
	ApproveTxID          string    `json:"approveTxId,omitempty"`
	BurnTxID             string    `json:"burnTxId,omitempty"`
	MintTxID             string    `json:"mintTxId,omitempty"`
	TransferTxID         string    `json:"transferTxId,omitempty"`
	MessageHash          string    `json:"messageHash,omitempty"`
	Error                string    `json:"error,omitempty"`
	ResumedFrom          string    `json:"resumedFrom,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ChainResponse describes a supported chain.
type ChainResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ChainID      uint64 `json:"chainId"`
	DomainID     uint32 `json:"domainId"`
	TokenAddress string `json:"tokenAddress"`
	NativeSymbol string `json:"nativeSymbol"`
}

func newTransferResponse(rec *transfer.Record) *TransferResponse {
	return &TransferResponse{
		ID:                   rec.ID,
		Kind:                 string(rec.Kind),
		Status:               string(rec.Status),
		SourceChain:          rec.SourceChain,
		DestinationChain:     rec.DestinationChain,
		Amount:               transfer.FormatAmount(rec.Amount, transfer.TokenDecimals),
		AmountUnits:          rec.Amount.String(),
		DestinationAddress:   rec.DestinationAddress,
		SourceWalletRef:      rec.SourceWalletRef,
		DestinationWalletRef: rec.DestinationWalletRef,
		Speed:                string(rec.Speed),
		ApproveTxID:          rec.ApproveTxID,
		BurnTxID:             rec.BurnTxID,
		MintTxID:             rec.MintTxID,
		TransferTxID:         rec.TransferTxID,
		MessageHash:          rec.MessageHash,
		Error:                rec.Error,
		ResumedFrom:          rec.ResumedFrom,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}
}

// submit starts a transfer and answers as soon as the record exists
func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req TransferRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	if err := h.validate.Struct(&req); err != nil {
		return apperrors.BadRequestError(err, validationMessage(err))
	}

	amount, err := transfer.ParseAmount(req.Amount, transfer.TokenDecimals)
	if err != nil {
		return mapError(err)
	}

	rec, err := h.service.Submit(r.Context(), &transfer.Request{
		SourceChain:          req.SourceChain,
		DestinationChain:     req.DestinationChain,
		Amount:               amount,
		DestinationAddress:   req.DestinationAddress,
		SourceWalletRef:      req.SourceWalletRef,
		DestinationWalletRef: req.DestinationWalletRef,
		Speed:                transfer.Speed(req.Speed),
	})
	if err != nil {
		return mapError(err)
	}

	h.writeJSON(w, http.StatusAccepted, newTransferResponse(rec))
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return mapError(err)
	}
	h.writeJSON(w, http.StatusOK, newTransferResponse(rec))
	return nil
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) error {
	opts, err := queryOptions(r)
	if err != nil {
		return err
	}
	records, err := h.service.List(r.Context(), opts...)
	if err != nil {
		return mapError(err)
	}

	resp := make([]*TransferResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newTransferResponse(rec))
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) latest(w http.ResponseWriter, r *http.Request) error {
	opts, err := queryOptions(r)
	if err != nil {
		return err
	}
	rec, err := h.service.Latest(r.Context(), opts...)
	if err != nil {
		return mapError(err)
	}
	h.writeJSON(w, http.StatusOK, newTransferResponse(rec))
	return nil
}

func (h *HTTP) cancel(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.service.Cancel(r.Context(), id); err != nil {
		return mapError(err)
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": "cancelling"})
	return nil
}

func (h *HTTP) resume(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.SubmitResume(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return mapError(err)
	}
	h.writeJSON(w, http.StatusAccepted, newTransferResponse(rec))
	return nil
}

func (h *HTTP) chains(w http.ResponseWriter, _ *http.Request) error {
	chains := h.service.Chains()
	resp := make([]ChainResponse, 0, len(chains))
	for _, c := range chains {
		resp = append(resp, newChainResponse(c))
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func newChainResponse(c chain.Config) ChainResponse {
	return ChainResponse{
		ID:           c.ID,
		Name:         c.Name,
		ChainID:      c.ChainID,
		DomainID:     c.DomainID,
		TokenAddress: c.TokenAddress.Hex(),
		NativeSymbol: c.NativeSymbol,
	}
}

// queryOptions reads ?status=&walletRef=&chain=&limit= filters
func queryOptions(r *http.Request) ([]transferstore.QueryOption, error) {
	q := r.URL.Query()
	var opts []transferstore.QueryOption

	if v := q.Get("status"); v != "" {
		status := transfer.Status(strings.ToUpper(v))
		if !status.Valid() {
			return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown status %q", v))
		}
		opts = append(opts, transferstore.WithStatus(status))
	}
	if v := q.Get("walletRef"); v != "" {
		opts = append(opts, transferstore.WithWalletRef(v))
	}
	if v := q.Get("chain"); v != "" {
		opts = append(opts, transferstore.WithChain(v))
	}
	if v := q.Get("resumedFrom"); v != "" {
		opts = append(opts, transferstore.WithSuccessorsOf(v))
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, apperrors.BadRequestError(err, "limit must be a positive integer")
		}
		opts = append(opts, transferstore.WithLimit(limit))
	}
	return opts, nil
}

// mapError translates domain errors to service errors rendered by apphttp.HandleErrorWithLogger
func mapError(err error) error {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	switch {
	case errors.Is(err, transfer.ErrInvalidRequest),
		errors.Is(err, chain.ErrUnknownChain),
		errors.Is(err, transfer.ErrInsufficientGas):
		return apperrors.BadRequestError(err, err.Error())
	case errors.Is(err, transfer.ErrNotFound):
		return apperrors.ResourceNotFoundError(err, err.Error())
	case errors.Is(err, transfer.ErrUserRejected),
		errors.Is(err, transfer.ErrChainSwitchRejected):
		return apperrors.ForbiddenError(err, err.Error())
	case errors.Is(err, transfer.ErrUnsupportedChain):
		return apperrors.NotSupportedError(err, err.Error())
	case errors.Is(err, transfer.ErrInvalidTransition),
		errors.Is(err, transfer.ErrNotResumable):
		return apperrors.ConflictError(err, err.Error())
	case errors.Is(err, ErrShuttingDown):
		return apperrors.RecoveringError(err, err.Error())
	default:
		return apperrors.GeneralError(err)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", jsonName(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// jsonName lowercases the first letter of a struct field name
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}
