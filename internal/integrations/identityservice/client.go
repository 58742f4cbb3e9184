package identityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с IdentityService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClient получает профиль клиента по ID
func (c *Client) GetClient(ctx context.Context, clientID string) (*ClientProfile, error) {
	url := fmt.Sprintf("%s/internal/clients/%s", c.baseURL, clientID)

	var profile ClientProfile
	if err := c.getJSON(ctx, url, &profile, ErrClientNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetStaff получает профиль мастера по ID
func (c *Client) GetStaff(ctx context.Context, staffID string) (*StaffProfile, error) {
	url := fmt.Sprintf("%s/internal/staff/%s", c.baseURL, staffID)

	var profile StaffProfile
	if err := c.getJSON(ctx, url, &profile, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
