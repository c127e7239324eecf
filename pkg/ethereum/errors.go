package ethereum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

// EIP-1193 provider error codes
const (
	codeUserRejected      = 4001
	codeUnrecognizedChain = 4902
)

// ErrNoActiveNetwork is returned by calls made before SwitchTo succeeded.
var ErrNoActiveNetwork = errors.New("no active network selected")

func rpcErrorCode(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

func isUserRejection(err error) bool {
	if code, ok := rpcErrorCode(err); ok && code == codeUserRejected {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}

func switchError(chainID uint64, err error) error {
	if isUserRejection(err) {
		return &transfer.ChainSwitchRejectedError{ChainID: chainID, Err: err}
	}
	if code, ok := rpcErrorCode(err); ok && code == codeUnrecognizedChain {
		return &transfer.UnsupportedChainError{ChainID: chainID, Reason: "provider cannot add chain", Err: err}
	}
	return &transfer.UnsupportedChainError{ChainID: chainID, Reason: "endpoint unreachable", Err: err}
}

func callError(action string, err error) error {
	if isUserRejection(err) {
		return &transfer.UserRejectedError{Action: action, Err: err}
	}
	if strings.Contains(strings.ToLower(err.Error()), "execution reverted") {
		return &transfer.TransactionRevertedError{Reason: action, Err: err}
	}
	return fmt.Errorf("failed to submit %s: %w", action, err)
}
