// Package events — шина событий кошелька: подписчики в процессе и внешние приёмники.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// Name — имя события
type Name string

const (
	PassAdded                 Name = "onPassAdded"
	PassUpdated               Name = "onPassUpdated"
	PassRemoved               Name = "onPassRemoved"
	WalletAvailabilityChanged Name = "onWalletAvailabilityChanged"
	Change                    Name = "onChange"
	Load                      Name = "onLoad"
)

// Event — одно уведомление
type Event struct {
	ID        string          `json:"id"`
	Name      Name            `json:"name"`
	Platform  models.Platform `json:"platform,omitempty"`
	Payload   any             `json:"payload"`
	EmittedAt time.Time       `json:"emittedAt"`
}

// PassPayload — тело onPassAdded/onPassUpdated/onPassRemoved
type PassPayload struct {
	PassID  string `json:"passId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AvailabilityPayload — тело onWalletAvailabilityChanged
type AvailabilityPayload struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ChangePayload — тело onChange
type ChangePayload struct {
	Value string `json:"value"`
}

// LoadPayload — тело onLoad
type LoadPayload struct {
	URL string `json:"url"`
}

// Sink — внешний приёмник событий (Kafka и т.п.)
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

const defaultSinkTimeout = 3 * time.Second

// Emitter рассылает события. Emit никогда не блокирует вызывающего.
type Emitter struct {
	mu          sync.RWMutex
	subs        map[uint64]chan Event
	next        uint64
	sinks       []Sink
	sinkTimeout time.Duration
	now         func() time.Time
	wg          sync.WaitGroup
}

// Option — настройка Emitter
type Option func(*Emitter)

func WithSink(s Sink) Option {
	return func(e *Emitter) {
		if s != nil {
			e.sinks = append(e.sinks, s)
		}
	}
}

func WithSinkTimeout(d time.Duration) Option {
	return func(e *Emitter) { e.sinkTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(e *Emitter) { e.now = now }
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		subs:        map[uint64]chan Event{},
		sinkTimeout: defaultSinkTimeout,
		now:         time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Subscribe возвращает канал событий и функцию отписки.
// Подписчик с заполненным буфером пропускает события.
func (e *Emitter) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// DisconnectSubscribers закрывает каналы всех текущих подписчиков
func (e *Emitter) DisconnectSubscribers() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}

// Emit рассылает событие и возвращает его с присвоенными id и временем
func (e *Emitter) Emit(name Name, platform models.Platform, payload any) Event {
	ev := Event{
		ID:        uuid.NewString(),
		Name:      name,
		Platform:  platform,
		Payload:   payload,
		EmittedAt: e.now().UTC(),
	}

	e.mu.RLock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
			slog.Debug("event dropped for slow subscriber", "event", ev.Name, "id", ev.ID)
		}
	}
	e.mu.RUnlock()

	for _, s := range e.sinks {
		e.wg.Add(1)
		go e.publish(s, ev)
	}
	return ev
}

func (e *Emitter) publish(s Sink, ev Event) {
	defer e.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), e.sinkTimeout)
	defer cancel()
	if err := s.Publish(ctx, ev); err != nil {
		slog.Warn("event sink publish failed", "event", ev.Name, "id", ev.ID, "err", err)
	}
}

// PassEvent — удобная обёртка для событий пропуска
func (e *Emitter) PassEvent(name Name, platform models.Platform, passID string, err error) Event {
	p := PassPayload{PassID: passID, Success: err == nil}
	if err != nil {
		p.Error = err.Error()
	}
	return e.Emit(name, platform, p)
}

// Wait дожидается завершения отправки во внешние приёмники
func (e *Emitter) Wait() { e.wg.Wait() }

// Close дожидается приёмников и закрывает их, если они это умеют
func (e *Emitter) Close() error {
	e.wg.Wait()
	var firstErr error
	for _, s := range e.sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
