// internal/services/auth_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/veloxcommerce/catalog-backend/internal/config"
)

// AuthService proxies authentication to the external identity service. This
// backend never inspects credentials or token contents: login and register
// bodies pass through verbatim, and token validation is a profile lookup
// against the identity service with the caller's bearer token.
type AuthService struct {
	cfg    config.AuthConfig
	client *http.Client
}

// Identity is the subset of the identity-service profile this backend
// consumes for authorization decisions.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// ProxyResult carries the identity service's response through unchanged.
type ProxyResult struct {
	StatusCode int
	Body       json.RawMessage
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
}

func (s *AuthService) Login(body []byte) (*ProxyResult, error) {
	logrus.Info("Proxying login request to identity service")
	return s.forward(http.MethodPost, "/api/auth/login", body, "")
}

func (s *AuthService) Register(body []byte) (*ProxyResult, error) {
	logrus.Info("Proxying register request to identity service")
	return s.forward(http.MethodPost, "/api/auth/register", body, "")
}

func (s *AuthService) GetProfile(token string) (*ProxyResult, error) {
	return s.forward(http.MethodGet, "/api/auth/profile", nil, token)
}

// ValidateToken asks the identity service who the token belongs to. A non-2xx
// answer means the token is invalid or expired.
func (s *AuthService) ValidateToken(token string) (*Identity, error) {
	result, err := s.GetProfile(token)
	if err != nil {
		return nil, err
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return nil, fmt.Errorf("identity service rejected token (status %d)", result.StatusCode)
	}

	// The identity service wraps the profile in its own envelope.
	var envelope struct {
		Data *Identity `json:"data"`
	}
	if err := json.Unmarshal(result.Body, &envelope); err != nil || envelope.Data == nil {
		var identity Identity
		if err := json.Unmarshal(result.Body, &identity); err != nil {
			return nil, fmt.Errorf("unexpected identity service response: %w", err)
		}
		return &identity, nil
	}
	return envelope.Data, nil
}

func (s *AuthService) forward(method, path string, body []byte, token string) (*ProxyResult, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, s.cfg.ServiceURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Identity service request failed")
		return nil, fmt.Errorf("identity service unavailable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	return &ProxyResult{StatusCode: resp.StatusCode, Body: respBody}, nil
}
