package transfer

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Sentinels for errors.Is. Each typed error below unwraps to one of them.
var (
	ErrInvalidRequest       = errors.New("invalid transfer request")
	ErrUnsupportedChain     = errors.New("unsupported chain")
	ErrInsufficientGas      = errors.New("insufficient gas balance")
	ErrChainSwitchRejected  = errors.New("chain switch rejected")
	ErrUserRejected         = errors.New("user rejected request")
	ErrTransactionReverted  = errors.New("transaction reverted")
	ErrTransactionTimeout   = errors.New("transaction timeout")
	ErrMalformedAttestation = errors.New("malformed attestation")
	ErrAttestationTimeout   = errors.New("attestation wait exceeded")
	ErrNotFound             = errors.New("transfer not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrCancelled            = errors.New("transfer cancelled")
	ErrNotResumable         = errors.New("transfer cannot be resumed")

	errMalformedAddress = errors.New("malformed address")
	errZeroAddress      = errors.New("zero address")
)

// InvalidRequestError reports malformed input. No state is created for it.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// UnsupportedChainError reports a chain the provider cannot serve.
type UnsupportedChainError struct {
	ChainID uint64
	Reason  string
	Err     error
}

func (e *UnsupportedChainError) Error() string {
	msg := fmt.Sprintf("unsupported chain %d", e.ChainID)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnsupportedChainError) Unwrap() []error { return wrapped(ErrUnsupportedChain, e.Err) }

// InsufficientGasError reports a failed native balance pre-flight check.
type InsufficientGasError struct {
	Chain    string
	Balance  *big.Int
	Required *big.Int
}

func (e *InsufficientGasError) Error() string {
	return fmt.Sprintf("insufficient gas on %s: balance %s wei, need at least %s wei", e.Chain, e.Balance, e.Required)
}

func (e *InsufficientGasError) Unwrap() error { return ErrInsufficientGas }

// ChainSwitchRejectedError reports that the signer declined a network switch.
type ChainSwitchRejectedError struct {
	ChainID uint64
	Err     error
}

func (e *ChainSwitchRejectedError) Error() string {
	return fmt.Sprintf("switch to chain %d rejected: %v", e.ChainID, e.Err)
}

func (e *ChainSwitchRejectedError) Unwrap() []error { return wrapped(ErrChainSwitchRejected, e.Err) }

// UserRejectedError reports that the signer declined to sign a transaction.
type UserRejectedError struct {
	Action string
	Err    error
}

func (e *UserRejectedError) Error() string {
	return fmt.Sprintf("%s rejected by signer: %v", e.Action, e.Err)
}

func (e *UserRejectedError) Unwrap() []error { return wrapped(ErrUserRejected, e.Err) }

// TransactionRevertedError reports a failed on-chain execution. TxHash is empty
// when the node refused the transaction before broadcast.
type TransactionRevertedError struct {
	TxHash string
	Reason string
	Err    error
}

func (e *TransactionRevertedError) Error() string {
	msg := "transaction reverted"
	if e.TxHash != "" {
		msg += " " + e.TxHash
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransactionRevertedError) Unwrap() []error { return wrapped(ErrTransactionReverted, e.Err) }

// TransactionTimeoutError reports a transaction that was not mined in time.
type TransactionTimeoutError struct {
	TxHash  string
	Timeout time.Duration
}

func (e *TransactionTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not mined within %s", e.TxHash, e.Timeout)
}

func (e *TransactionTimeoutError) Unwrap() error { return ErrTransactionTimeout }

// MalformedAttestationError reports a "complete" attestation missing its payload.
type MalformedAttestationError struct {
	TxHash string
	Reason string
}

func (e *MalformedAttestationError) Error() string {
	return fmt.Sprintf("malformed attestation for %s: %s", e.TxHash, e.Reason)
}

func (e *MalformedAttestationError) Unwrap() error { return ErrMalformedAttestation }

// NotFoundError reports an unknown record id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transfer %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports an update the status machine does not allow.
type InvalidTransitionError struct {
	ID     string
	From   Status
	To     Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("transfer %s: invalid update in %s: %s", e.ID, e.From, e.Reason)
	}
	return fmt.Sprintf("transfer %s: invalid transition %s -> %s", e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func wrapped(sentinel, err error) []error {
	if err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, err}
}
