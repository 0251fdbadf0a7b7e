package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientsync "github.com/iudanet/fleetsync/internal/client/sync"
	"github.com/iudanet/fleetsync/internal/codec"
	"github.com/iudanet/fleetsync/internal/crdt"
	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/pkg/api"
)

var (
	_ clientsync.Transport         = (*Client)(nil)
	_ clientsync.SnapshotExchanger = (*Client)(nil)
)

// staticIssuer выдает фиксированный токен
type staticIssuer struct {
	err error
}

func (s staticIssuer) Issue(replicaID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + replicaID, nil
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, "replica-1", staticIssuer{})

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.Equal(t, "replica-1", client.replicaID)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Deliver(t *testing.T) {
	item := models.SyncQueueItem{
		ID:         "0192d4e0-0000-7000-8000-000000000001",
		Origin:     "replica-1",
		Payload:    []byte{0xde, 0xad},
		CreatedAt:  1700000000000,
		Operation:  models.OpCartridgeUsageLog,
		State:      models.StateSyncing,
		RetryCount: 2,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод, путь и заголовки
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-replica-1", r.Header.Get("Authorization"))

		var req api.SyncItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, item.ID, req.ID)
		assert.Equal(t, "CartridgeUsageLog", req.Operation)
		assert.Equal(t, item.Payload, req.Payload)
		assert.Equal(t, uint32(2), req.RetryCount)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.PushItemResponse{ID: req.ID, ReceivedAt: 1})
	}))
	defer server.Close()

	client := NewClient(server.URL, "replica-1", staticIssuer{})
	require.NoError(t, client.Deliver(context.Background(), item))
}

func TestClient_Deliver_Errors(t *testing.T) {
	tests := []struct {
		name         string
		responseBody string
		wantContains string
		statusCode   int
	}{
		{
			name:         "json error",
			statusCode:   http.StatusForbidden,
			responseBody: `{"error":"origin mismatch","message":"item origin does not match token"}`,
			wantContains: "origin mismatch",
		},
		{
			name:         "plain error",
			statusCode:   http.StatusTooManyRequests,
			responseBody: "Too Many Requests\n",
			wantContains: "Too Many Requests",
		},
		{
			name:         "wrong ack",
			statusCode:   http.StatusOK,
			responseBody: `{"id":"other"}`,
			wantContains: "acknowledged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(server.URL, "replica-1", staticIssuer{})
			err := client.Deliver(context.Background(), models.SyncQueueItem{ID: "item-1", Operation: models.OpMeasurementUpload})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContains)

			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				assert.Equal(t, tt.statusCode, statusErr.StatusCode)
			}
		})
	}
}

func TestClient_Deliver_TokenError(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "replica-1", staticIssuer{err: errors.New("no secret")})
	err := client.Deliver(context.Background(), models.SyncQueueItem{ID: "item-1", Operation: models.OpMeasurementUpload})
	assert.ErrorContains(t, err, "no secret")
}

func TestClient_Exchange(t *testing.T) {
	hubCounter := crdt.NewGrowCounter()
	hubCounter.IncrementBy("hub", 5)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync/merge", r.URL.Path)

		var req api.MergeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		snap, err := codec.DecodeSnapshot(req.Snapshot)
		require.NoError(t, err)
		assert.Equal(t, "replica-1", snap.ReplicaID)

		counter := crdt.NewGrowCounterFromState(snap.Measurements)
		counter.Merge(hubCounter)
		snap.ReplicaID = "hub"
		snap.Measurements = counter.State()

		encoded, err := codec.EncodeSnapshot(snap)
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(api.MergeResponse{Snapshot: encoded})
	}))
	defer server.Close()

	local := crdt.NewGrowCounter()
	local.IncrementBy("replica-1", 2)

	client := NewClient(server.URL, "replica-1", staticIssuer{})
	peer, err := client.Exchange(context.Background(), &models.ReplicaSnapshot{
		ReplicaID:    "replica-1",
		Measurements: local.State(),
	})
	require.NoError(t, err)
	assert.Equal(t, "hub", peer.ReplicaID)
	assert.Equal(t, uint64(7), crdt.NewGrowCounterFromState(peer.Measurements).Value())
}

func TestClient_Exchange_BadSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.MergeResponse{Snapshot: []byte("garbage")})
	}))
	defer server.Close()

	client := NewClient(server.URL, "replica-1", staticIssuer{})
	_, err := client.Exchange(context.Background(), &models.ReplicaSnapshot{ReplicaID: "replica-1"})
	assert.ErrorIs(t, err, codec.ErrDeserialization)
}

func TestClient_StatusAndHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/api/v1/sync/status":
			_ = json.NewEncoder(w).Encode(api.StatusResponse{
				Items:           map[string]int{"MeasurementUpload": 3},
				TotalItems:      3,
				HubMeasurements: 9,
			})
		case "/api/v1/health":
			_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "replica-1", nil)
	ctx := context.Background()

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Items["MeasurementUpload"])
	assert.Equal(t, uint64(9), status.HubMeasurements)

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "replica-1", staticIssuer{})
	err := client.Deliver(ctx, models.SyncQueueItem{ID: "item-1", Operation: models.OpMeasurementUpload})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "canceled"))
}
