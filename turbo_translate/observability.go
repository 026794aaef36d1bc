package turbo_translate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Request lifecycle events
	EventRequestStarted   EventType = "request_started"
	EventRequestThrottled EventType = "request_throttled"
	EventRequestRetrying  EventType = "request_retrying"
	EventThrottleWarning  EventType = "throttle_warning"
	EventRequestCompleted EventType = "request_completed"
	EventRequestNoResult  EventType = "request_no_result"
	EventRequestFailed    EventType = "request_failed"

	// Quota events
	EventBudgetBlocked EventType = "budget_blocked"
)

type Event struct {
	Type      EventType      `json:"type"`
	RequestID string         `json:"request_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

type TurboTranslateStats struct {
	Requests         int
	Completed        int
	NoResult         int
	Failed           int
	Throttled        int // 429 responses seen, including the one that exhausted retries
	Retries          int
	ThrottleWarnings int
	BudgetBlocks     int
	UnitsConsumed    int
}

// GetEventChan returns the event channel for external listeners. It is closed by Stop.
func (tt *TurboTranslate) GetEventChan() <-chan *Event {
	return tt.eventChan
}

// emitEvent sends an event to the event channel (non-blocking)
func (tt *TurboTranslate) emitEvent(eventType EventType, requestID uuid.UUID, data map[string]any) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	if tt.stopped {
		return
	}

	event := &Event{
		Type:      eventType,
		RequestID: requestID.String(),
		Timestamp: time.Now(),
		Data:      data,
	}

	select {
	case tt.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, drop event to avoid blocking
	}
}

// GetStats returns a copy of the counters
func (tt *TurboTranslate) GetStats() TurboTranslateStats {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.stats
}

func (tt *TurboTranslate) countRequest() {
	tt.mu.Lock()
	tt.stats.Requests++
	tt.mu.Unlock()
}

func (tt *TurboTranslate) countRetry() {
	tt.mu.Lock()
	tt.stats.Throttled++
	tt.stats.Retries++
	tt.mu.Unlock()
}

func (tt *TurboTranslate) countThrottled() {
	tt.mu.Lock()
	tt.stats.Throttled++
	tt.mu.Unlock()
}

func (tt *TurboTranslate) countThrottleWarning() {
	tt.mu.Lock()
	tt.stats.ThrottleWarnings++
	tt.mu.Unlock()
}

// logStats logs a summary of the instance's lifetime
func (tt *TurboTranslate) logStats() {
	stats := tt.GetStats()
	tt.logger.Printf(
		"TurboTranslate %s: Shutting down. Requests: %d. Completed: %d. No result: %d. Failed: %d. Throttled: %d. Retries: %d. Units: %s. Time taken: %s",
		tt.uniqueID,
		stats.Requests,
		stats.Completed,
		stats.NoResult,
		stats.Failed,
		stats.Throttled,
		stats.Retries,
		formatUnits(stats.UnitsConsumed),
		time.Since(tt.startTime),
	)
}

// formatUnits formats unit counts in a human-readable way
func formatUnits(units int) string {
	if units >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(units)/1_000_000)
	} else if units >= 1000 {
		return fmt.Sprintf("%.1fK", float64(units)/1_000)
	}
	return fmt.Sprintf("%d", units)
}
