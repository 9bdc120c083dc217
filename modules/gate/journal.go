package gate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion tags persisted journal entries. New fields are only ever
// added, never relocated or reinterpreted, so readers can evolve additively.
const SchemaVersion = 1

// Entry is one journaled component event.
type Entry struct {
	ID      string            `json:"id"`
	Schema  int               `json:"schema"`
	At      time.Time         `json:"at"`
	Source  string            `json:"source"`
	Action  string            `json:"action"`
	Account uuid.UUID         `json:"account"`
	Actor   uuid.UUID         `json:"actor"`
	Detail  map[string]string `json:"detail,omitempty"`
}

// Storage persists journal entries.
type Storage interface {
	// Append stores one entry.
	Append(ctx context.Context, e Entry) error

	// List returns stored entries in append order. A positive limit returns
	// only the most recent limit entries.
	List(ctx context.Context, limit int) ([]Entry, error)
}

// MemoryStorage is an in-memory Storage, the default for a Service and
// useful for tests. Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStorage creates an empty in-memory journal storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Append(ctx context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *MemoryStorage) List(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// journal assigns identity and time to component events and hands them to
// storage. Events are delivered after the originating mutation has committed;
// a storage failure is logged but never fails the mutation.
type journal struct {
	storage Storage
	log     *slog.Logger
}

func (j *journal) record(source, action string, account, actor uuid.UUID, detail map[string]string) {
	entry := Entry{
		ID:      uuid.New().String(),
		Schema:  SchemaVersion,
		At:      time.Now(),
		Source:  source,
		Action:  action,
		Account: account,
		Actor:   actor,
		Detail:  detail,
	}

	j.log.Info("gate event",
		slog.String("source", source),
		slog.String("action", action),
		slog.String("account", account.String()),
		slog.String("actor", actor.String()),
	)

	if err := j.storage.Append(context.Background(), entry); err != nil {
		j.log.Error("gate: journal append failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}
