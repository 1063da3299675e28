// Package journal persists accumulator runs: the program that was executed,
// its final value and the audit log of every step.
package journal

import (
	"context"
	"time"
)

// Entry is one journaled accumulator run
type Entry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Source       string    `json:"source"`
	RequestID    string    `json:"request_id,omitempty"`
	Program      string    `json:"program"`
	Value        string    `json:"value"`
	Scale        int32     `json:"scale"`
	RoundingMode string    `json:"rounding_mode"`
	Log          []string  `json:"log"`
}

// ListOptions filters and pages List results, newest first
type ListOptions struct {
	Source string
	Since  time.Time
	Limit  int
	Offset int
}

// Store defines the interface for journal persistence
type Store interface {
	Save(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, opts ListOptions) ([]*Entry, error)
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
