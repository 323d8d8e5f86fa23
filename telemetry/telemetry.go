// Package telemetry provides opt-in usage reporting for the dmql CLI.
// Reporting never blocks or fails a query: events are batched in memory and
// flushed in the background, and every network error is swallowed.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"
)

// Event is one recorded usage event.
type Event struct {
	EventType    string         `json:"event_type"`
	Command      string         `json:"command,omitempty"`
	Provider     string         `json:"provider,omitempty"`
	MiningOp     string         `json:"mining_op,omitempty"`
	Duration     *time.Duration `json:"duration,omitempty"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Version      string         `json:"version"`
	OS           string         `json:"os"`
	Architecture string         `json:"architecture"`
}

// Collector batches events and ships them to the reporting endpoint.
type Collector struct {
	enabled       bool
	endpoint      string
	events        []Event
	mu            sync.Mutex
	httpClient    *http.Client
	version       string
	batchSize     int
	flushInterval time.Duration
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

var (
	globalCollector *Collector
	once            sync.Once
)

// Init initializes the global collector. Reporting stays off unless enabled
// is true and no opt-out is present.
func Init(version string, enabled bool) {
	once.Do(func() {
		globalCollector = &Collector{
			enabled:       enabled && !isDisabled(),
			endpoint:      endpoint(),
			events:        make([]Event, 0, 100),
			httpClient:    &http.Client{Timeout: 5 * time.Second},
			version:       version,
			batchSize:     10,
			flushInterval: 30 * time.Second,
			stopChan:      make(chan struct{}),
		}

		if globalCollector.enabled {
			globalCollector.startBackgroundFlush()
		}
	})
}

// RecordCommand records one CLI command invocation.
func RecordCommand(command, provider string, duration time.Duration, err error) {
	if globalCollector == nil || !globalCollector.enabled {
		return
	}

	event := Event{
		EventType:    "command",
		Command:      command,
		Provider:     provider,
		Duration:     &duration,
		Timestamp:    time.Now(),
		Version:      globalCollector.version,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
	if err != nil {
		event.Error = err.Error()
	}
	globalCollector.record(event)
}

// RecordQuery records one executed query, with its mining operation when a
// MINE clause was present.
func RecordQuery(provider, miningOp string, duration time.Duration, err error) {
	if globalCollector == nil || !globalCollector.enabled {
		return
	}

	event := Event{
		EventType:    "query",
		Provider:     provider,
		MiningOp:     miningOp,
		Duration:     &duration,
		Timestamp:    time.Now(),
		Version:      globalCollector.version,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
	if err != nil {
		event.Error = err.Error()
	}
	globalCollector.record(event)
}

// IsEnabled reports whether reporting is active.
func IsEnabled() bool {
	return globalCollector != nil && globalCollector.enabled
}

// Shutdown flushes any buffered events and stops the collector.
func Shutdown() {
	if globalCollector == nil {
		return
	}
	close(globalCollector.stopChan)
	globalCollector.wg.Wait()
	globalCollector.flush()
}

func (c *Collector) record(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)
	if len(c.events) >= c.batchSize {
		go c.flush()
	}
}

func (c *Collector) flush() {
	c.mu.Lock()
	if len(c.events) == 0 {
		c.mu.Unlock()
		return
	}
	events := make([]Event, len(c.events))
	copy(events, c.events)
	c.events = c.events[:0]
	c.mu.Unlock()

	go c.send(events)
}

func (c *Collector) send(events []Event) {
	payload := map[string]any{"events": events}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("dmql/%s", c.version))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
}

func (c *Collector) startBackgroundFlush() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.flush()
			case <-c.stopChan:
				c.flush()
				return
			}
		}
	}()
}

func isDisabled() bool {
	if v := os.Getenv("DMQL_TELEMETRY_DISABLED"); v == "1" || v == "true" {
		return true
	}
	for _, arg := range os.Args {
		if arg == "--no-telemetry" {
			return true
		}
	}
	return false
}

func endpoint() string {
	if e := os.Getenv("DMQL_TELEMETRY_ENDPOINT"); e != "" {
		return e
	}
	return "https://telemetry.dmql.dev/events"
}
