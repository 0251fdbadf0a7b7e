package models

import "github.com/iudanet/fleetsync/internal/crdt"

// Settings are the user-facing settings replicated through an LWW register.
type Settings struct {
	Theme                string `json:"theme" msgpack:"theme"`
	Locale               string `json:"locale" msgpack:"locale"`
	MeasurementUnit      string `json:"measurement_unit" msgpack:"measurement_unit"`
	MeasurementReminder  string `json:"measurement_reminder" msgpack:"measurement_reminder"`
	NotificationsEnabled bool   `json:"notifications_enabled" msgpack:"notifications_enabled"`
}

// DefaultSettings returns the settings a fresh replica starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:                "system",
		Locale:               "en",
		MeasurementUnit:      "mg/dL",
		NotificationsEnabled: true,
	}
}

// ReplicaSnapshot is the state of every replicated type of one replica,
// exchanged between peers and persisted locally.
type ReplicaSnapshot struct {
	ReplicaID    string                       `json:"replica_id" msgpack:"replica_id"`
	Devices      crdt.SetState                `json:"devices" msgpack:"devices"`
	Measurements crdt.CounterState            `json:"measurements" msgpack:"measurements"`
	Settings     crdt.RegisterState[Settings] `json:"settings" msgpack:"settings"`
	TakenAt      int64                        `json:"taken_at" msgpack:"taken_at"`
}
