package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/utils"
	"github.com/bunpo-app/bunpo/models"
	"github.com/go-resty/resty/v2"
)

type httpRemoteStore struct {
	client  *utils.HTTPClient
	baseURL string
	token   string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpRemoteStore{client: client, baseURL: baseURL, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpRemoteStore) Token() string {
	return h.token
}

// Authenticate implements [RemoteStore]. It POSTs the user identifier to
// POST /api/auth/token. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpRemoteStore) Authenticate(ctx context.Context, userID int64) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]int64{"user_id": userID}).
		Post("/api/auth/token")
	if err != nil {
		return fmt.Errorf("authenticate request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("authenticate parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

// FetchRecord implements [RemoteStore]. It GETs the user record from
// GET /api/users/{userID}/record and decodes the response body. Returns
// [ErrNotFound] (wrapped) when the record does not exist. Requires a valid
// bearer token.
func (h *httpRemoteStore) FetchRecord(ctx context.Context, userID int64) (models.UserRecord, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/users/%d/record", userID))
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("fetch record request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserRecord{}, err
	}

	var record models.UserRecord
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.UserRecord{}, fmt.Errorf("decode record response: %w", err)
	}

	return record, nil
}

// CreateRecord implements [RemoteStore]. It POSTs the record to
// POST /api/users. Returns [ErrConflict] (wrapped) on HTTP 409 when a record
// for the user already exists. Requires a valid bearer token.
func (h *httpRemoteStore) CreateRecord(ctx context.Context, record models.UserRecord) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post("/api/users")
	if err != nil {
		return fmt.Errorf("create record request: %w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

// PutFavorites implements [RemoteStore]. It PUTs the favorite set and its
// modification timestamp to PUT /api/users/{userID}/favorites; the server
// applies both atomically. Returns [ErrNotFound] (wrapped) on HTTP 404 when
// the record is absent. Requires a valid bearer token.
func (h *httpRemoteStore) PutFavorites(ctx context.Context, userID int64, favorites models.FavoriteSet, modified models.Timestamp) error {
	payload := models.Timestamped{Favorites: favorites, Modified: modified}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(fmt.Sprintf("/api/users/%d/favorites", userID))
	if err != nil {
		return fmt.Errorf("put favorites request: %w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
