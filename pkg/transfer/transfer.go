// Package transfer defines the domain model of a cross-chain stablecoin transfer:
// the request, the persisted record and its status machine, and the error
// taxonomy shared by the store, the chain adapter and the orchestrator.
package transfer

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Kind distinguishes the burn/attest/mint path from the direct transfer path.
type Kind string

const (
	KindCrossChain Kind = "cross_chain"
	KindSameChain  Kind = "same_chain"
)

// Speed selects the source chain finality threshold for a burn.
type Speed string

const (
	SpeedFast     Speed = "fast"
	SpeedStandard Speed = "standard"
)

// Finality thresholds understood by the CCTP v2 token messenger.
const (
	FinalityThresholdFast     uint32 = 1000
	FinalityThresholdStandard uint32 = 2000
)

// FinalityThreshold returns the minFinalityThreshold argument for depositForBurn.
func (s Speed) FinalityThreshold() uint32 {
	if s == SpeedStandard {
		return FinalityThresholdStandard
	}
	return FinalityThresholdFast
}

// Valid reports whether s is a known speed.
func (s Speed) Valid() bool {
	return s == SpeedFast || s == SpeedStandard
}

// Request is the input to the orchestrator. Amount is in the token's smallest unit.
type Request struct {
	SourceChain          string   `json:"sourceChain"`
	DestinationChain     string   `json:"destinationChain"`
	Amount               *big.Int `json:"amount"`
	DestinationAddress   string   `json:"destinationAddress"`
	SourceWalletRef      string   `json:"sourceWalletRef,omitempty"`
	DestinationWalletRef string   `json:"destinationWalletRef,omitempty"`
	Speed                Speed    `json:"speed,omitempty"`
}

// Kind returns the flow the request takes.
func (r *Request) Kind() Kind {
	if r.SourceChain == r.DestinationChain {
		return KindSameChain
	}
	return KindCrossChain
}

// Validate checks the request before any state is created.
func (r *Request) Validate() error {
	if r.Amount == nil || r.Amount.Sign() <= 0 {
		return &InvalidRequestError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(r.SourceChain) == "" {
		return &InvalidRequestError{Field: "sourceChain", Reason: "is required"}
	}
	if strings.TrimSpace(r.DestinationChain) == "" {
		return &InvalidRequestError{Field: "destinationChain", Reason: "is required"}
	}
	if _, err := ParseAddress(r.DestinationAddress); err != nil {
		return &InvalidRequestError{Field: "destinationAddress", Reason: err.Error()}
	}
	if r.Speed != "" && !r.Speed.Valid() {
		return &InvalidRequestError{Field: "speed", Reason: "must be fast or standard"}
	}
	return nil
}

// Record is the persisted lifecycle of one transfer.
type Record struct {
	ID                   string    `json:"id"`
	Kind                 Kind      `json:"kind"`
	Status               Status    `json:"status"`
	SourceChain          string    `json:"sourceChain"`
	DestinationChain     string    `json:"destinationChain"`
	Amount               *big.Int  `json:"amount"`
	DestinationAddress   string    `json:"destinationAddress"`
	SourceWalletRef      string    `json:"sourceWalletRef,omitempty"`
	DestinationWalletRef string    `json:"destinationWalletRef,omitempty"`
	Speed                Speed     `json:"speed"`
	ApproveTxID          string    `json:"approveTxId,omitempty"`
	BurnTxID             string    `json:"burnTxId,omitempty"`
	MintTxID             string    `json:"mintTxId,omitempty"`
	TransferTxID         string    `json:"transferTxId,omitempty"`
	MessageBytes         string    `json:"messageBytes,omitempty"`
	MessageHash          string    `json:"messageHash,omitempty"`
	Attestation          string    `json:"attestation,omitempty"`
	Error                string    `json:"error,omitempty"`
	ResumedFrom          string    `json:"resumedFrom,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// NewRecord allocates a PENDING record for req.
func NewRecord(id string, req *Request, now time.Time) *Record {
	speed := req.Speed
	if speed == "" {
		speed = SpeedFast
	}
	return &Record{
		ID:                   id,
		Kind:                 req.Kind(),
		Status:               StatusPending,
		SourceChain:          req.SourceChain,
		DestinationChain:     req.DestinationChain,
		Amount:               new(big.Int).Set(req.Amount),
		DestinationAddress:   req.DestinationAddress,
		SourceWalletRef:      req.SourceWalletRef,
		DestinationWalletRef: req.DestinationWalletRef,
		Speed:                speed,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Request rebuilds the originating request from the record.
func (r *Record) Request() *Request {
	return &Request{
		SourceChain:          r.SourceChain,
		DestinationChain:     r.DestinationChain,
		Amount:               new(big.Int).Set(r.Amount),
		DestinationAddress:   r.DestinationAddress,
		SourceWalletRef:      r.SourceWalletRef,
		DestinationWalletRef: r.DestinationWalletRef,
		Speed:                r.Speed,
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	if r.Amount != nil {
		c.Amount = new(big.Int).Set(r.Amount)
	}
	return &c
}

// Update carries the fields to merge into a record. Nil fields are left untouched.
type Update struct {
	Status       *Status
	ApproveTxID  *string
	BurnTxID     *string
	MintTxID     *string
	TransferTxID *string
	MessageBytes *string
	MessageHash  *string
	Attestation  *string
	Error        *string
}

// Apply merges u into r, enforcing the forward-only status machine.
// UpdatedAt is always refreshed.
func (r *Record) Apply(u Update, now time.Time) error {
	if r.Status.Terminal() {
		to := r.Status
		if u.Status != nil {
			to = *u.Status
		}
		return &InvalidTransitionError{ID: r.ID, From: r.Status, To: to}
	}

	if u.Status != nil {
		if !CanTransition(r.Kind, r.Status, *u.Status) {
			return &InvalidTransitionError{ID: r.ID, From: r.Status, To: *u.Status}
		}
	}
	if u.Error != nil && (u.Status == nil || *u.Status != StatusFailed) {
		return &InvalidTransitionError{ID: r.ID, From: r.Status, To: r.Status, Reason: "error is only recorded on failure"}
	}

	if u.Status != nil {
		r.Status = *u.Status
	}
	setIf(&r.ApproveTxID, u.ApproveTxID)
	setIf(&r.BurnTxID, u.BurnTxID)
	setIf(&r.MintTxID, u.MintTxID)
	setIf(&r.TransferTxID, u.TransferTxID)
	setIf(&r.MessageBytes, u.MessageBytes)
	setIf(&r.MessageHash, u.MessageHash)
	setIf(&r.Attestation, u.Attestation)
	setIf(&r.Error, u.Error)
	r.UpdatedAt = now
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ParseAddress parses a hex EVM address and rejects the zero address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errMalformedAddress
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, errZeroAddress
	}
	return addr, nil
}

// Ptr returns a pointer to v. Used to build Update values.
func Ptr[T any](v T) *T {
	return &v
}
