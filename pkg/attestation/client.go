// Package attestation polls the burn attestation service until a burn
// message has been signed and is ready to be minted on the destination chain.
package attestation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/chainsafe/settle-rebalancer/internal/metrics"
	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

const (
	// StatusComplete is the only terminal status reported by the service.
	StatusComplete = "complete"

	// placeholder returned in the attestation field before signing finishes
	pendingPlaceholder = "PENDING"

	maxResponseBytes    = 1 << 20
	defaultPollInterval = 5 * time.Second
)

// Attestation is a signed burn message.
type Attestation struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Attestation string `json:"attestation"`
	// MessageHash is keccak256 of the decoded message, hex encoded.
	MessageHash string `json:"messageHash"`
}

type messagesResponse struct {
	Messages []struct {
		Status      string `json:"status"`
		Message     string `json:"message"`
		Attestation string `json:"attestation"`
	} `json:"messages"`
}

// Client polls GET <base>/v2/messages/{domain}?transactionHash={hash}.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	pollInterval time.Duration
	maxWait      time.Duration
	logger       *zap.Logger
}

// NewClient creates an attestation client. All requests made by the client,
// across concurrent polls, share one rate limiter.
func NewClient(cfg *config.AttestationConfig, logger *zap.Logger) *Client {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1)),
		pollInterval: pollInterval,
		maxWait:      cfg.MaxWait,
		logger:       logger,
	}
}

// Poll blocks until the message burned by txHash on sourceDomain is attested.
//
// HTTP 404 and non-complete statuses are retried at the poll interval.
// Rate limiting, 5xx responses and network errors are logged and retried.
// Other 4xx responses and complete messages with missing fields are returned
// as errors. A configured max wait bounds the call with ErrAttestationTimeout.
func (c *Client) Poll(ctx context.Context, sourceDomain uint32, txHash string) (*Attestation, error) {
	if c.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, c.maxWait, transfer.ErrAttestationTimeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/v2/messages/%d?transactionHash=%s", c.baseURL, sourceDomain, url.QueryEscape(txHash))

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		att, retry, err := c.fetch(ctx, endpoint, txHash)
		if err == nil && !retry {
			metrics.AttestationPolls.WithLabelValues("complete").Inc()
			c.logger.Info("Attestation complete",
				zap.String("tx_hash", txHash),
				zap.Uint32("source_domain", sourceDomain),
				zap.Int("attempts", attempt))
			return att, nil
		}
		if err != nil && !retry {
			if ctxErr := pollContextErr(ctx); ctxErr != nil {
				return nil, ctxErr
			}
			metrics.AttestationPolls.WithLabelValues("fatal").Inc()
			return nil, err
		}
		if err != nil {
			metrics.AttestationPolls.WithLabelValues("error").Inc()
			c.logger.Warn("Attestation request failed, retrying",
				zap.String("tx_hash", txHash),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else {
			metrics.AttestationPolls.WithLabelValues("pending").Inc()
			c.logger.Debug("Attestation pending",
				zap.String("tx_hash", txHash),
				zap.Int("attempt", attempt))
		}

		select {
		case <-ctx.Done():
			return nil, pollContextErr(ctx)
		case <-ticker.C:
		}
	}
}

// pollContextErr reports why ctx ended, preferring the max wait cause.
func pollContextErr(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if cause := context.Cause(ctx); errors.Is(cause, transfer.ErrAttestationTimeout) {
		return cause
	}
	return ctx.Err()
}

// fetch performs one request. retry reports whether the caller should poll again.
func (c *Client) fetch(ctx context.Context, endpoint, txHash string) (*Attestation, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails early when the next token would land after the deadline
		<-ctx.Done()
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("failed to fetch attestation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read attestation response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// not indexed yet
		return nil, true, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("attestation service returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("attestation service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, true, fmt.Errorf("failed to decode attestation response: %w", err)
	}
	if len(parsed.Messages) == 0 || parsed.Messages[0].Status != StatusComplete {
		return nil, true, nil
	}

	msg := parsed.Messages[0]
	if msg.Message == "" || msg.Message == "0x" {
		return nil, false, &transfer.MalformedAttestationError{TxHash: txHash, Reason: "message missing"}
	}
	if msg.Attestation == "" || msg.Attestation == "0x" || msg.Attestation == pendingPlaceholder {
		return nil, false, &transfer.MalformedAttestationError{TxHash: txHash, Reason: "attestation missing"}
	}
	raw, err := hexutil.Decode(msg.Message)
	if err != nil {
		return nil, false, &transfer.MalformedAttestationError{TxHash: txHash, Reason: "message is not hex: " + err.Error()}
	}
	if _, err := hexutil.Decode(msg.Attestation); err != nil {
		return nil, false, &transfer.MalformedAttestationError{TxHash: txHash, Reason: "attestation is not hex: " + err.Error()}
	}

	return &Attestation{
		Status:      msg.Status,
		Message:     msg.Message,
		Attestation: msg.Attestation,
		MessageHash: crypto.Keccak256Hash(raw).Hex(),
	}, false, nil
}
