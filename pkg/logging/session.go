// pkg/logging/session.go - per-run session record written next to the logs.

package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Session describes one run of a tool, written to session.json.
type Session struct {
	SessionID   string                 `json:"session_id"`
	RunType     string                 `json:"run_type"` // list, query, check, inventory
	Status      string                 `json:"status"`   // running, completed, failed
	StartTime   time.Time              `json:"start_time"`
	EndTime     *time.Time             `json:"end_time,omitempty"`
	Summary     SessionSummary         `json:"summary"`
	Environment map[string]interface{} `json:"environment"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// SessionSummary counts what a run did.
type SessionSummary struct {
	ProductsEnumerated int           `json:"products_enumerated"`
	PropertiesRead     int           `json:"properties_read"`
	Failures           int           `json:"failures"`
	Duration           time.Duration `json:"duration"`
	Products           []string      `json:"products,omitempty"`
}

// StartSession records the start of a run in the singleton logger's session
// directory.
func StartSession(runType string, metadata map[string]interface{}) error {
	if instance == nil {
		return nil
	}
	return instance.StartSession(runType, metadata)
}

// EndSession completes the session record.
func EndSession(status string, summary SessionSummary) error {
	if instance == nil {
		return nil
	}
	return instance.EndSession(status, summary)
}

// StartSession writes the initial session.json.
func (l *Logger) StartSession(runType string, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.session = &Session{
		SessionID: l.config.SessionID,
		RunType:   runType,
		Status:    "running",
		StartTime: time.Now(),
		Environment: map[string]interface{}{
			"hostname": l.hostname,
			"os":       runtime.GOOS,
			"arch":     runtime.GOARCH,
			"pid":      os.Getpid(),
		},
		Metadata: metadata,
	}
	return l.writeSession()
}

// EndSession stamps the end time and final status.
func (l *Logger) EndSession(status string, summary SessionSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session == nil {
		return fmt.Errorf("no session started")
	}
	end := time.Now()
	if summary.Duration == 0 {
		summary.Duration = end.Sub(l.session.StartTime)
	}
	l.session.EndTime = &end
	l.session.Status = status
	l.session.Summary = summary
	return l.writeSession()
}

func (l *Logger) writeSession() error {
	data, err := json.MarshalIndent(l.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(l.logDir, "session.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
