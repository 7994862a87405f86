package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

// GatewayError wraps transport failures, non-2xx responses and malformed
// payloads from the payment gateway. Operations hitting it always resolve to
// a terminal failed state upstream, never a silent crash.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// RecipientRequest describes a transfer recipient to register with the gateway.
type RecipientRequest struct {
	Name          string
	AccountNumber string
	BankCode      string
}

// TransferRequest describes an outbound transfer from the platform balance.
type TransferRequest struct {
	Amount        decimal.Decimal
	RecipientCode string
	Reference     string
	Reason        string
}

// TransferResult carries the gateway's acceptance of a transfer. Status is
// the gateway-side transfer state; "success" means the money moved
// synchronously, anything else resolves later via webhook.
type TransferResult struct {
	TransferCode string
	Status       string
}

// Client exposes the payment gateway operations the settlement flows need.
type Client interface {
	CreateRecipient(ctx context.Context, req RecipientRequest) (string, error)
	InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (string, error)
}

// HTTPClient implements Client against the Paystack HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recipientData struct {
	RecipientCode string `json:"recipient_code"`
}

type transferData struct {
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
}

type resolveData struct {
	AccountName string `json:"account_name"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateRecipient registers a NUBAN transfer recipient and returns its code.
func (c *HTTPClient) CreateRecipient(ctx context.Context, req RecipientRequest) (string, error) {
	payload := map[string]string{
		"type":           "nuban",
		"name":           req.Name,
		"account_number": req.AccountNumber,
		"bank_code":      req.BankCode,
		"currency":       "NGN",
	}

	var data recipientData
	if err := c.post(ctx, "create recipient", "/transferrecipient", payload, &data); err != nil {
		return "", err
	}
	if data.RecipientCode == "" {
		return "", &GatewayError{Op: "create recipient", Message: "response missing recipient code"}
	}
	return data.RecipientCode, nil
}

// InitiateTransfer starts a transfer from the platform balance. The amount is
// converted to the gateway's minor currency unit.
func (c *HTTPClient) InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	payload := map[string]any{
		"source":    "balance",
		"amount":    req.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"recipient": req.RecipientCode,
		"reference": req.Reference,
		"reason":    req.Reason,
	}

	var data transferData
	if err := c.post(ctx, "initiate transfer", "/transfer", payload, &data); err != nil {
		return nil, err
	}
	if data.TransferCode == "" {
		return nil, &GatewayError{Op: "initiate transfer", Message: "response missing transfer code"}
	}
	return &TransferResult{TransferCode: data.TransferCode, Status: data.Status}, nil
}

// ResolveAccount looks up the account holder name for a bank account.
func (c *HTTPClient) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/bank/resolve")
	query := endpoint.Query()
	query.Set("account_number", accountNumber)
	query.Set("bank_code", bankCode)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", &GatewayError{Op: "resolve account", Err: err}
	}

	var data resolveData
	if err := c.do(req, "resolve account", &data); err != nil {
		return "", err
	}
	if data.AccountName == "" {
		return "", &GatewayError{Op: "resolve account", Message: "response missing account name"}
	}
	return data.AccountName, nil
}

func (c *HTTPClient) post(ctx context.Context, op, apiPath string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, apiPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

func (c *HTTPClient) do(req *http.Request, op string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("gateway returned malformed payload",
			slog.String("op", op), slog.Int("status", resp.StatusCode))
		return &GatewayError{Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices || !env.Status {
		message := env.Message
		if message == "" {
			message = resp.Status
		}
		c.logger.Error("gateway request rejected",
			slog.String("op", op), slog.Int("status", resp.StatusCode), slog.String("message", message))
		return &GatewayError{Op: op, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &GatewayError{Op: op, Err: err}
		}
	}
	return nil
}
