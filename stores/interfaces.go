package stores

import (
	"time"

	"gorm.io/gorm"
)

// UsageRecord is one (user, category, feature) counter for one day.
type UsageRecord struct {
	gorm.Model
	UserID   string `gorm:"index;not null"`
	Category string `gorm:"not null"`
	Feature  string `gorm:"not null"`
	Day      string `gorm:"index;not null"` // UTC date, YYYY-MM-DD
	Count    int    `gorm:"default:0"`
}

// Decision is the gate's answer for one prospective invocation.
type Decision struct {
	Allowed   bool
	Remaining int
}

// UsageStore is the usage gate: per-day invocation counters with a fixed
// daily limit.
type UsageStore interface {
	// CheckLimit reports whether another invocation is permitted today and
	// how many remain.
	CheckLimit(userID, category, feature string) (Decision, error)

	// IncrementUsage records one invocation.
	IncrementUsage(userID, category, feature string) error

	// PurgeStale removes counters from past days. Counters are keyed by day,
	// so this is bookkeeping rather than correctness.
	PurgeStale() error

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for usage stores.
type StoreConfig struct {
	Type       string `json:"type"`       // "sqlite", "postgres"
	Connection string `json:"connection"` // file path or DSN
	DailyLimit int    `json:"daily_limit"`
}

// NewStoreConfig creates a new store configuration.
func NewStoreConfig(storeType, connection string, dailyLimit int) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		DailyLimit: dailyLimit,
	}
}

// today returns the current UTC day key.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
