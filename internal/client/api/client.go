package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/fleetsync/internal/codec"
	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/pkg/api"
)

// TokenIssuer mints the bearer token sent with every request
type TokenIssuer interface {
	Issue(replicaID string) (string, error)
}

// StatusError is returned when the relay answers with a non-2xx status
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с relay.
// Реализует sync.Transport и sync.SnapshotExchanger.
type Client struct {
	httpClient *http.Client
	tokens     TokenIssuer
	baseURL    string
	replicaID  string
}

// NewClient создает новый API клиент от имени реплики replicaID
func NewClient(baseURL, replicaID string, tokens TokenIssuer) *Client {
	return &Client{
		baseURL:   baseURL,
		replicaID: replicaID,
		tokens:    tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Deliver отправляет один элемент очереди на relay.
// Повторная отправка того же элемента подтверждается relay как дубликат.
func (c *Client) Deliver(ctx context.Context, item models.SyncQueueItem) error {
	req := api.SyncItem{
		ID:         item.ID,
		Origin:     item.Origin,
		Operation:  item.Operation.String(),
		Payload:    item.Payload,
		CreatedAt:  item.CreatedAt,
		RetryCount: item.RetryCount,
	}

	var resp api.PushItemResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/items", req, &resp); err != nil {
		return fmt.Errorf("push item request failed: %w", err)
	}
	if resp.ID != item.ID {
		return fmt.Errorf("relay acknowledged %q instead of %q", resp.ID, item.ID)
	}

	return nil
}

// Exchange отправляет снимок реплики и возвращает снимок relay после слияния
func (c *Client) Exchange(ctx context.Context, snap *models.ReplicaSnapshot) (*models.ReplicaSnapshot, error) {
	encoded, err := codec.EncodeSnapshot(snap)
	if err != nil {
		return nil, err
	}

	var resp api.MergeResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/merge", api.MergeRequest{Snapshot: encoded}, &resp); err != nil {
		return nil, fmt.Errorf("merge request failed: %w", err)
	}

	peer, err := codec.DecodeSnapshot(resp.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to decode relay snapshot: %w", err)
	}

	return peer, nil
}

// Status получает состояние relay
func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/sync/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность relay
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Короткоживущий токен на каждый запрос
	if c.tokens != nil {
		token, err := c.tokens.Issue(c.replicaID)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			msg := errResp.Error
			if errResp.Message != "" {
				msg += ": " + errResp.Message
			}
			return &StatusError{StatusCode: resp.StatusCode, Message: msg}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
