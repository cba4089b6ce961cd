package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maglo/maglo/pkg/domain"
)

// DefaultTimeout bounds every HTTP call issued by the client. Exceeding it
// surfaces as a transport error and follows the same retry path upstream.
const DefaultTimeout = 10 * time.Second

// Client is the Maglo API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. The token may be empty: data calls are still
// issued and the server is authoritative on rejecting them.
func New(baseURL, token string) *Client {
	return NewWithTimeout(baseURL, token, DefaultTimeout)
}

// NewWithTimeout creates a client with an explicit per-call timeout.
func NewWithTimeout(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithToken returns a copy of the client using the given bearer token.
// Used after sign-in, when the session token changes mid-process.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// AuthResult is the payload of a successful sign-in.
type AuthResult struct {
	AccessToken string      `json:"accessToken"`
	User        domain.User `json:"user"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for an access token and user record.
// Failures come back as *AuthError.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/users/login", signInRequest{Email: email, Password: password}, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

// SignUp registers a new account. The API issues no token on registration, so
// a successful sign-up never establishes a session — the caller must sign in.
func (c *Client) SignUp(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPost, "/users/register", signUpRequest{FullName: fullName, Email: email, Password: password}, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetFinancialSummary fetches the headline balance/expense/savings figures.
func (c *Client) GetFinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	var s domain.FinancialSummary
	if err := c.get(ctx, "/financial/summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetWorkingCapital fetches the assets/liabilities breakdown.
func (c *Client) GetWorkingCapital(ctx context.Context) (*domain.WorkingCapital, error) {
	var w domain.WorkingCapital
	if err := c.get(ctx, "/financial/working-capital", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetWallets fetches all wallets/cards on the account.
func (c *Client) GetWallets(ctx context.Context) ([]domain.Wallet, error) {
	var ws []domain.Wallet
	if err := c.get(ctx, "/financial/wallet", &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// GetRecentTransactions fetches the latest transactions, newest first.
func (c *Client) GetRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var txs []domain.Transaction
	if err := c.get(ctx, "/financial/transactions/recent?"+params.Encode(), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetScheduledTransfers fetches the upcoming standing orders.
func (c *Client) GetScheduledTransfers(ctx context.Context) ([]domain.ScheduledTransfer, error) {
	var ts []domain.ScheduledTransfer
	if err := c.get(ctx, "/financial/transfers/scheduled", &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// envelope is the optional {success, data, message} wrapper some endpoints
// use. Endpoints are free to return the payload bare; both shapes are
// resolved here and never leak to callers.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details []FieldError    `json:"details"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any, authCall bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max body
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return errorFromBody(authCall, resp.StatusCode, respBody)
	}

	// Resolve the dual envelope/raw shape once, at this boundary.
	var env envelope
	if json.Unmarshal(respBody, &env) == nil && env.Success != nil {
		if !*env.Success {
			return typedError(authCall, resp.StatusCode, env.Message, env.Code, env.Details)
		}
		if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			respBody = env.Data
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorFromBody builds a typed error from a non-2xx response. JSON bodies
// follow the {message, code, details} shape; anything else is treated as a
// plain-text message.
func errorFromBody(authCall bool, status int, body []byte) error {
	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		return typedError(authCall, status, env.Message, env.Code, env.Details)
	}
	return typedError(authCall, status, strings.TrimSpace(string(body)), "", nil)
}

func typedError(authCall bool, status int, message, code string, details []FieldError) error {
	if message == "" {
		message = http.StatusText(status)
	}
	if authCall {
		return &AuthError{StatusCode: status, Message: message, Code: code, Details: details}
	}
	return &APIError{StatusCode: status, Message: message, Code: code, Details: details}
}
