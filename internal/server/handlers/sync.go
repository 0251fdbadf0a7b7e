package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/fleetsync/internal/codec"
	"github.com/iudanet/fleetsync/internal/crdt"
	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/internal/server/storage"
	"github.com/iudanet/fleetsync/internal/validation"
	"github.com/iudanet/fleetsync/pkg/api"
)

// maxRequestBodySize ограничивает тело запроса: payload в JSON кодируется base64
const maxRequestBodySize = 2 * validation.MaxPayloadSize

// RelayStorage определяет интерфейс хранилища, нужный sync handler
type RelayStorage interface {
	storage.ItemStorage
	storage.ReplicaStorage
}

// SnapshotMerger сливает снимки реплик в состояние хаба
type SnapshotMerger interface {
	Merge(ctx context.Context, snap *models.ReplicaSnapshot) (*models.ReplicaSnapshot, error)
	MeasurementTotal() uint64
	Devices() []string
}

// SyncHandler handles synchronization requests from replicas
type SyncHandler struct {
	logger  *slog.Logger
	storage RelayStorage
	hub     SnapshotMerger
	clock   crdt.Clock
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage RelayStorage, hub SnapshotMerger, clock crdt.Clock) *SyncHandler {
	if clock == nil {
		clock = crdt.WallClock{}
	}
	return &SyncHandler{
		logger:  logger,
		storage: storage,
		hub:     hub,
		clock:   clock,
	}
}

// HandleItems обрабатывает POST /api/v1/sync/items
// Принимает один элемент очереди реплики. Повторный прием того же элемента
// подтверждается как дубликат, чтобы реплика могла удалить его из очереди.
func (h *SyncHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, h.logger, http.StatusMethodNotAllowed, "")
		return
	}

	ctx := r.Context()

	// Получаем replica_id из контекста (установлен AuthMiddleware)
	replicaID, ok := GetReplicaID(ctx)
	if !ok {
		h.logger.Error("Replica ID not found in context")
		WriteError(w, h.logger, http.StatusUnauthorized, "missing replica identity")
		return
	}

	var req api.SyncItem
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode sync item", "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateItemID(req.ID); err != nil {
		WriteError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	// Реплика может отправлять только свои элементы
	if req.Origin != replicaID {
		h.logger.Warn("Item origin mismatch",
			"expected", replicaID,
			"got", req.Origin,
			"item_id", req.ID)
		WriteError(w, h.logger, http.StatusForbidden, "item origin does not match token")
		return
	}

	op, err := models.ParseSyncOperation(req.Operation)
	if err != nil {
		WriteError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := validation.ValidatePayload(req.Payload); err != nil {
		WriteError(w, h.logger, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	// Снимок сливается до сохранения: повторная доставка после сбоя
	// сольет его еще раз, слияние идемпотентно
	if op == models.OpCrdtMerge {
		if status, msg := h.mergePayload(ctx, replicaID, req.Payload); status != http.StatusOK {
			WriteError(w, h.logger, status, msg)
			return
		}
	}

	item := &models.RelayItem{
		ID:         req.ID,
		Origin:     req.Origin,
		Operation:  op,
		Payload:    req.Payload,
		CreatedAt:  req.CreatedAt,
		ReceivedAt: h.clock.NowMillis(),
		RetryCount: req.RetryCount,
	}

	duplicate, err := h.storage.SaveItem(ctx, item)
	if err != nil {
		h.logger.Error("Failed to save item", "error", err, "item_id", item.ID)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to save item")
		return
	}

	h.logger.Info("Item received",
		"replica_id", replicaID,
		"item_id", item.ID,
		"operation", op.String(),
		"duplicate", duplicate)

	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}

	writeJSON(w, h.logger, status, api.PushItemResponse{
		ID:         item.ID,
		Duplicate:  duplicate,
		ReceivedAt: item.ReceivedAt,
	})
}

// HandleMerge обрабатывает POST /api/v1/sync/merge
// Сливает снимок реплики в хаб и возвращает снимок хаба после слияния
func (h *SyncHandler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, h.logger, http.StatusMethodNotAllowed, "")
		return
	}

	ctx := r.Context()

	replicaID, ok := GetReplicaID(ctx)
	if !ok {
		h.logger.Error("Replica ID not found in context")
		WriteError(w, h.logger, http.StatusUnauthorized, "missing replica identity")
		return
	}

	var req api.MergeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode merge request", "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := codec.DecodeSnapshot(req.Snapshot)
	if err != nil {
		h.logger.Warn("Invalid snapshot", "replica_id", replicaID, "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, "invalid snapshot")
		return
	}
	if snap.ReplicaID != replicaID {
		WriteError(w, h.logger, http.StatusForbidden, "snapshot replica does not match token")
		return
	}

	merged, err := h.hub.Merge(ctx, snap)
	if err != nil {
		h.logger.Error("Failed to merge snapshot", "error", err, "replica_id", replicaID)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to merge snapshot")
		return
	}

	encoded, err := codec.EncodeSnapshot(merged)
	if err != nil {
		h.logger.Error("Failed to encode hub snapshot", "error", err)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to encode snapshot")
		return
	}

	h.logger.Info("Snapshot merged", "replica_id", replicaID)

	writeJSON(w, h.logger, http.StatusOK, api.MergeResponse{Snapshot: encoded})
}

// HandleStatus обрабатывает GET /api/v1/sync/status
func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, h.logger, http.StatusMethodNotAllowed, "")
		return
	}

	ctx := r.Context()

	counts, err := h.storage.CountItemsByOperation(ctx)
	if err != nil {
		h.logger.Error("Failed to count items", "error", err)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to load status")
		return
	}

	replicas, err := h.storage.ListReplicas(ctx)
	if err != nil {
		h.logger.Error("Failed to list replicas", "error", err)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to load status")
		return
	}

	resp := api.StatusResponse{
		Items:           make(map[string]int, len(counts)),
		Replicas:        make([]api.ReplicaInfo, 0, len(replicas)),
		Devices:         h.hub.Devices(),
		HubMeasurements: h.hub.MeasurementTotal(),
	}
	for op, n := range counts {
		resp.Items[op.String()] = n
		resp.TotalItems += n
	}
	for _, rec := range replicas {
		resp.Replicas = append(resp.Replicas, api.ReplicaInfo{
			ReplicaID:     rec.ReplicaID,
			LastSeenAt:    rec.LastSeenAt,
			ItemsReceived: rec.ItemsReceived,
			Merges:        rec.Merges,
		})
	}
	if resp.Devices == nil {
		resp.Devices = []string{}
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// mergePayload сливает снимок из элемента CrdtMerge в хаб.
// Возвращает http.StatusOK или код ошибки с сообщением.
func (h *SyncHandler) mergePayload(ctx context.Context, replicaID string, payload []byte) (int, string) {
	snap, err := codec.DecodeSnapshot(payload)
	if err != nil {
		h.logger.Warn("Invalid CrdtMerge payload", "replica_id", replicaID, "error", err)
		return http.StatusBadRequest, "invalid snapshot payload"
	}
	if snap.ReplicaID != replicaID {
		return http.StatusForbidden, "snapshot replica does not match token"
	}

	if _, err := h.hub.Merge(ctx, snap); err != nil {
		h.logger.Error("Failed to merge snapshot", "error", err, "replica_id", replicaID)
		return http.StatusInternalServerError, "failed to merge snapshot"
	}

	return http.StatusOK, ""
}

// decodeBody декодирует JSON тело запроса с ограничением размера
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after request body")
	}
	return nil
}
