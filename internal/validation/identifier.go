package validation

import (
	"fmt"
	"regexp"
)

// IdentifierPattern определяет допустимый формат идентификаторов реплик и устройств
// Латинские буквы, цифры, дефис, подчеркивание, точка и двоеточие
// Первый символ буква или цифра
var IdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:-]*$`)

const (
	// MaxReplicaIDLen максимальная длина идентификатора реплики
	MaxReplicaIDLen = 64
	// MaxDeviceIDLen максимальная длина идентификатора устройства
	MaxDeviceIDLen = 128
	// MaxPayloadSize максимальный размер полезной нагрузки элемента очереди
	MaxPayloadSize = 1 << 20
)

// ValidateReplicaID проверяет идентификатор реплики
func ValidateReplicaID(id string) error {
	return validateIdentifier("replica id", id, MaxReplicaIDLen)
}

// ValidateDeviceID проверяет идентификатор устройства.
// Устройства приходят от коллабораторов (серийные номера, MAC), поэтому лимит длины больше.
func ValidateDeviceID(id string) error {
	return validateIdentifier("device id", id, MaxDeviceIDLen)
}

// ValidateItemID проверяет идентификатор элемента очереди
func ValidateItemID(id string) error {
	return validateIdentifier("item id", id, MaxReplicaIDLen)
}

// ValidatePayload проверяет размер полезной нагрузки
func ValidatePayload(payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("payload must not exceed %d bytes", MaxPayloadSize)
	}
	return nil
}

func validateIdentifier(kind, id string, maxLen int) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}

	if len(id) > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", kind, maxLen)
	}

	if !IdentifierPattern.MatchString(id) {
		return fmt.Errorf("%s can only contain letters, numbers, '-', '_', '.' and ':'", kind)
	}

	return nil
}
