package api

// SyncItem представляет один элемент очереди реплики на проводе
type SyncItem struct {
	ID         string `json:"id"`          // UUIDv7 элемента, ключ идемпотентности
	Origin     string `json:"origin"`      // реплика-источник
	Operation  string `json:"operation"`   // имя операции (MeasurementUpload, CrdtMerge, ...)
	Payload    []byte `json:"payload"`     // непрозрачные данные, base64 в JSON
	CreatedAt  int64  `json:"created_at"`  // время создания на реплике, мс
	RetryCount uint32 `json:"retry_count"` // число повторов на реплике
}

// PushItemResponse представляет ответ на прием элемента
type PushItemResponse struct {
	ID         string `json:"id"`
	Duplicate  bool   `json:"duplicate"`   // элемент уже был принят ранее
	ReceivedAt int64  `json:"received_at"` // время первого приема на хабе, мс
}

// MergeRequest несет закодированный снимок реплики
type MergeRequest struct {
	Snapshot []byte `json:"snapshot"` // codec.EncodeSnapshot
}

// MergeResponse несет снимок хаба после слияния
type MergeResponse struct {
	Snapshot []byte `json:"snapshot"` // codec.EncodeSnapshot
}

// ReplicaInfo описывает реплику, известную хабу
type ReplicaInfo struct {
	ReplicaID     string `json:"replica_id"`
	LastSeenAt    int64  `json:"last_seen_at"`
	ItemsReceived int    `json:"items_received"`
	Merges        int    `json:"merges"`
}

// StatusResponse представляет состояние хаба
type StatusResponse struct {
	Items           map[string]int `json:"items"` // количество элементов по операциям
	Replicas        []ReplicaInfo  `json:"replicas"`
	Devices         []string       `json:"devices"`
	TotalItems      int            `json:"total_items"`
	HubMeasurements uint64         `json:"hub_measurements"`
}
