package models

// RelayItem is a queue item accepted by the relay
type RelayItem struct {
	ID         string        `json:"id"`
	Origin     string        `json:"origin"`
	Payload    []byte        `json:"payload"`
	CreatedAt  int64         `json:"created_at"`  // время создания на реплике, мс
	ReceivedAt int64         `json:"received_at"` // время первого приема на relay, мс
	Operation  SyncOperation `json:"operation"`
	RetryCount uint32        `json:"retry_count"`
}

// ReplicaRecord is what the relay knows about one replica
type ReplicaRecord struct {
	ReplicaID     string `json:"replica_id"`
	FirstSeenAt   int64  `json:"first_seen_at"`
	LastSeenAt    int64  `json:"last_seen_at"`
	ItemsReceived int    `json:"items_received"`
	Merges        int    `json:"merges"`
}
