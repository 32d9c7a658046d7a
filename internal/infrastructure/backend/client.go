package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/config"
	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/usecases/dtos"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const refreshPath = "/users/refresh"

// maxBodySize caps how much of a backend response is read.
const maxBodySize = 1 << 20

// Messages the backend answers 401 with when the access token can be renewed.
var refreshableMessages = map[string]struct{}{
	"Access token expired":     {},
	"No access token provided": {},
	"Invalid access token":     {},
}

// Client talks to the EasyPay REST API on behalf of a dashboard user.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger
}

// NewClient creates a backend client as a repositories.TransactionRepository.
func NewClient(cfg config.Backend) *Client {
	l := log.GetLogger()
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout()},
		logger:  &l,
	}
}

var _ repositories.TransactionRepository = (*Client)(nil)

func (c *Client) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return c.transaction(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil)
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Transaction, error) {
	body, err := json.Marshal(dtos.StatusUpdateDTO{Status: string(status)})
	if err != nil {
		return nil, err
	}
	return c.transaction(ctx, http.MethodPatch, "/transactions/"+url.PathEscape(id), body)
}

func (c *Client) transaction(ctx context.Context, method, path string, body []byte) (*models.Transaction, error) {
	env, raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	data := env.Data
	if len(data) == 0 || string(data) == "null" {
		// some endpoints answer with the bare record
		data = raw
	}

	var dto dtos.TransactionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, apperrors.NewUpstreamError(http.StatusBadGateway, "malformed transaction: "+err.Error())
	}
	tx := dto.ToModel()
	return &tx, nil
}

// do sends one request. A 401 with a refreshable message triggers one token
// refresh and one retry of the original request.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (dtos.Envelope, []byte, error) {
	session := SessionFromContext(ctx)

	status, env, raw, err := c.send(ctx, session, method, path, body)
	if err != nil {
		return env, nil, err
	}

	if status == http.StatusUnauthorized && isRefreshable(env.Message) {
		c.logger.Info().Str("path", path).Str("reason", env.Message).Msg("refreshing backend session")
		if err := c.refresh(ctx, session); err != nil {
			return env, nil, err
		}
		status, env, raw, err = c.send(ctx, session, method, path, body)
		if err != nil {
			return env, nil, err
		}
	}

	if err := statusError(status, env.Message); err != nil {
		return env, nil, err
	}
	return env, raw, nil
}

func (c *Client) refresh(ctx context.Context, session *Session) error {
	status, env, _, err := c.send(ctx, session, http.MethodPost, refreshPath, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		c.logger.Warn().Int("status", status).Str("reason", env.Message).Msg("backend session refresh rejected")
		return apperrors.NewUpstreamError(http.StatusUnauthorized, env.Message)
	}
	return nil
}

func (c *Client) send(ctx context.Context, session *Session, method, path string, body []byte) (int, dtos.Envelope, []byte, error) {
	var env dtos.Envelope

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, env, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	session.apply(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, env, nil, fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, env, nil, fmt.Errorf("backend %s %s: read body: %w", method, path, err)
	}
	session.update(resp.Cookies())

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	if len(bytes.TrimSpace(raw)) > 0 {
		// non-JSON bodies (proxies, HTML error pages) leave the envelope empty
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env, raw, nil
}

func isRefreshable(message string) bool {
	_, ok := refreshableMessages[message]
	return ok
}

func statusError(status int, message string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return apperrors.NewNotFoundError("Transaction")
	case status == http.StatusBadRequest:
		if message == "" {
			message = apperrors.ErrInvalidRequestBody
		}
		return apperrors.NewBadRequestError(message)
	default:
		return apperrors.NewUpstreamError(status, message)
	}
}
