package crdt

import (
	"sync"
	"time"
)

// Clock возвращает время в миллисекундах Unix для штампов LWW-регистров
// и очереди синхронизации. Позволяет подменять время в тестах.
type Clock interface {
	NowMillis() int64
}

// WallClock использует системные часы.
type WallClock struct{}

// NowMillis возвращает текущее время в миллисекундах.
func (WallClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ManualClock представляет управляемые вручную часы.
// Используется в тестах для детерминированных timestamp.
type ManualClock struct {
	now int64      // текущее значение в миллисекундах
	mu  sync.Mutex // мьютекс для потокобезопасности
}

// NewManualClock создает часы, установленные в заданный момент.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis возвращает текущее значение часов без его изменения.
func (c *ManualClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance сдвигает часы вперед на delta миллисекунд и возвращает новое значение.
func (c *ManualClock) Advance(delta int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now += delta
	return c.now
}

// Set устанавливает часы в заданное значение (в том числе назад, для моделирования рассинхронизации).
func (c *ManualClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}
