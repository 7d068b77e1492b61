package esm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TokenCache owns the single process-wide ESM credential slot: a static
// override when configured, otherwise a session token obtained via login and
// cleared reactively when the upstream rejects it.
//
// Two concurrent logins are a benign race, any valid token works identically
// and the last login wins.
type TokenCache struct {
	config     *Config
	httpClient HTTPClient
	logger     *logrus.Logger

	mu    sync.RWMutex
	token string
}

func NewTokenCache(config *Config, httpClient HTTPClient, logger *logrus.Logger) *TokenCache {
	return &TokenCache{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get returns the static override when configured, else the cached session
// token, else logs in and caches the result.
func (t *TokenCache) Get(ctx context.Context) (string, error) {
	if t.config.StaticToken != "" {
		return t.config.StaticToken, nil
	}

	t.mu.RLock()
	token := t.token
	t.mu.RUnlock()

	if token != "" {
		return token, nil
	}

	return t.Login(ctx)
}

// loginResponse carries the session token in a nested field.
type loginResponse struct {
	Response struct {
		Return string `json:"log.return"`
	} `json:"log.loginResponse"`
}

// Login issues a form-encoded authentication request and caches the returned
// session token, overwriting any previous value.
func (t *TokenCache) Login(ctx context.Context) (string, error) {
	if t.config.LoginEndpoint == "" || t.config.Username == "" || t.config.Password == "" {
		return "", errors.Wrap(ErrConfiguration,
			"esm login not configured: login_endpoint, username and password are required")
	}

	ctx, cancel := context.WithTimeout(ctx, t.config.RequestTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("login", t.config.Username)
	form.Set("password", t.config.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.config.LoginEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(ErrLoginFailed, err.Error())
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", errors.Wrap(ErrRequestTimeout, "login")
		}

		return "", errors.Wrap(ErrLoginFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", errors.Wrapf(ErrLoginFailed, "status %d: %s",
			resp.StatusCode, truncate(body, maxErrBodyBytes))
	}

	var login loginResponse

	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return "", errors.Wrap(ErrLoginFailed, "malformed login response: "+err.Error())
	}

	if login.Response.Return == "" {
		return "", errors.Wrap(ErrLoginFailed, "login response missing token")
	}

	t.mu.Lock()
	t.token = login.Response.Return
	t.mu.Unlock()

	t.logger.Debug("esm session established")

	return login.Response.Return, nil
}

// Invalidate clears the cached session token unconditionally. A static
// override is never affected.
func (t *TokenCache) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.token = ""
}
