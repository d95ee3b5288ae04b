package stats

import (
	"slices"
	"sync"

	"chat-relay/internal/models"
)

const (
	// MaxConversations is the number of conversation records retained
	MaxConversations = 50
	// MaxResponseTimes is the number of response times retained
	MaxResponseTimes = 100
	// RecentWindow is the number of records included in a snapshot
	RecentWindow = 5
)

// Ledger is the process-wide usage aggregate shared by every chat session.
// All methods are safe for concurrent use; a reader never observes a
// partially applied commit.
type Ledger struct {
	// publishMu orders counter mutations together with the delivery of
	// the snapshots they produce. Readers only take mu.
	publishMu sync.Mutex

	mu             sync.RWMutex
	totalChats     int
	totalFragments int
	responseTimes  []float64
	conversations  []models.ConversationRecord
	config         models.ModelConfig
}

// NewLedger creates an empty ledger with the given model configuration
func NewLedger(config models.ModelConfig) *Ledger {
	return &Ledger{config: config}
}

// Commit records one completed chat session and returns the snapshot
// taken in the same critical section.
func (l *Ledger) Commit(record models.ConversationRecord) models.StatsSnapshot {
	l.publishMu.Lock()
	defer l.publishMu.Unlock()
	return l.commit(record)
}

// CommitAndPublish commits record and hands the resulting snapshot to
// publish before any later Commit or Reset is applied, so snapshots are
// published in commit order.
func (l *Ledger) CommitAndPublish(record models.ConversationRecord, publish func(models.StatsSnapshot)) models.StatsSnapshot {
	l.publishMu.Lock()
	defer l.publishMu.Unlock()

	snapshot := l.commit(record)
	publish(snapshot)
	return snapshot
}

func (l *Ledger) commit(record models.ConversationRecord) models.StatsSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.totalChats++
	l.totalFragments += record.FragmentCount

	l.responseTimes = append(l.responseTimes, record.ResponseTime)
	if over := len(l.responseTimes) - MaxResponseTimes; over > 0 {
		l.responseTimes = slices.Clone(l.responseTimes[over:])
	}

	l.conversations = append(l.conversations, record)
	if over := len(l.conversations) - MaxConversations; over > 0 {
		l.conversations = slices.Clone(l.conversations[over:])
	}

	return l.snapshotLocked()
}

// Snapshot returns the current stats
func (l *Ledger) Snapshot() models.StatsSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Reset zeroes the counters and clears both histories. The model
// configuration is preserved.
func (l *Ledger) Reset() models.StatsSnapshot {
	l.publishMu.Lock()
	defer l.publishMu.Unlock()
	return l.reset()
}

// ResetAndPublish resets the ledger and hands the empty snapshot to
// publish, ordered with CommitAndPublish.
func (l *Ledger) ResetAndPublish(publish func(models.StatsSnapshot)) models.StatsSnapshot {
	l.publishMu.Lock()
	defer l.publishMu.Unlock()

	snapshot := l.reset()
	publish(snapshot)
	return snapshot
}

func (l *Ledger) reset() models.StatsSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.totalChats = 0
	l.totalFragments = 0
	l.responseTimes = nil
	l.conversations = nil

	return l.snapshotLocked()
}

// Config returns the active model configuration
func (l *Ledger) Config() models.ModelConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// UpdateConfig merges the non-nil fields of update into the model
// configuration and returns the result.
func (l *Ledger) UpdateConfig(update models.ConfigUpdate) models.ModelConfig {
	l.mu.Lock()
	defer l.mu.Unlock()

	if update.Temperature != nil {
		l.config.Temperature = *update.Temperature
	}
	if update.MaxTokens != nil {
		l.config.MaxTokens = *update.MaxTokens
	}
	if update.Model != nil {
		l.config.Model = *update.Model
	}
	return l.config
}

// History returns a copy of the retained conversation records, oldest first
func (l *Ledger) History() []models.ConversationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.conversations)
}

// ResponseTimes returns a copy of the retained response times, oldest first
func (l *Ledger) ResponseTimes() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.responseTimes)
}

func (l *Ledger) snapshotLocked() models.StatsSnapshot {
	var average float64
	if len(l.responseTimes) > 0 {
		var sum float64
		for _, rt := range l.responseTimes {
			sum += rt
		}
		average = sum / float64(len(l.responseTimes))
	}

	start := max(len(l.conversations)-RecentWindow, 0)
	recent := make([]models.ConversationRecord, len(l.conversations)-start)
	copy(recent, l.conversations[start:])

	return models.StatsSnapshot{
		TotalChats:          l.totalChats,
		TotalFragments:      l.totalFragments,
		AverageResponseTime: average,
		RecentConversations: recent,
		ModelConfig:         l.config,
	}
}
