// pkg/logging/logging.go - timestamped session logging for msiquery
//
// Each run writes into its own YYYY-MM-DD-HHMMss directory under the log
// base directory:
// - query.log: human-readable lines with key=value pairs
// - events.jsonl: one JSON object per entry
// - session.yaml: the same entries as a YAML stream (optional)
// Old session directories beyond the retention count are removed at startup.

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/windowsadmins/msiquery/pkg/config"
	"gopkg.in/yaml.v3"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a LogLevel; unknown names map to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// LogEntry is one structured log record.
type LogEntry struct {
	Time       int64                  `json:"time" yaml:"time"`
	Timestamp  string                 `json:"timestamp" yaml:"timestamp"`
	Level      string                 `json:"level" yaml:"level"`
	Message    string                 `json:"message" yaml:"message"`
	Component  string                 `json:"component" yaml:"component"`
	PID        int64                  `json:"pid" yaml:"pid"`
	Hostname   string                 `json:"hostname" yaml:"hostname"`
	SessionID  string                 `json:"session_id" yaml:"session_id"`
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// LoggerConfig holds configuration for the session logger
type LoggerConfig struct {
	BaseDir       string   // Base logging directory
	SessionID     string   // Unique session identifier
	Component     string   // Component/module name
	Level         LogLevel // Most verbose level written
	Retention     int      // Session directories to keep, 0 keeps all
	EnableJSON    bool     // Write events.jsonl
	EnableYAML    bool     // Write session.yaml
	EnableConsole bool     // Mirror the text log to stdout
}

// Logger writes entries to the session files.
type Logger struct {
	mu       sync.Mutex
	logger   *log.Logger
	logLevel LogLevel
	logFile  *os.File
	jsonFile *os.File
	yamlFile *os.File
	config   LoggerConfig
	logDir   string
	hostname string
	session  *Session
}

var (
	instance *Logger
	once     sync.Once
)

// Init initializes the singleton Logger from the application configuration.
// It should be called before the package-level logging functions; until it
// is, DEBUG entries are dropped and the rest go to stderr.
func Init(cfg *config.Configuration) error {
	level := ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = LevelDebug
	}
	return InitWithConfig(LoggerConfig{
		BaseDir:       cfg.LogPath,
		SessionID:     generateSessionID(time.Now()),
		Component:     "msiquery",
		Level:         level,
		Retention:     cfg.LogRetention,
		EnableJSON:    true,
		EnableYAML:    cfg.Debug,
		EnableConsole: cfg.Verbose,
	})
}

// InitWithConfig initializes the singleton Logger with explicit LoggerConfig
func InitWithConfig(logCfg LoggerConfig) error {
	var initErr error
	once.Do(func() {
		instance, initErr = newLoggerWithConfig(logCfg, time.Now())
	})
	return initErr
}

func generateSessionID(now time.Time) string {
	return fmt.Sprintf("msiquery-%d-%s", now.Unix(), now.Format("2006-01-02-150405"))
}

func newLoggerWithConfig(cfg LoggerConfig, sessionStart time.Time) (*Logger, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base log directory: %w", err)
	}

	// Format: YYYY-MM-DD-HHMMss
	logDir := filepath.Join(cfg.BaseDir, sessionStart.Format("2006-01-02-150405"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session log directory %s: %w", logDir, err)
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	l := &Logger{
		config:   cfg,
		logLevel: cfg.Level,
		logDir:   logDir,
		hostname: hostname,
	}
	if err := l.openFiles(); err != nil {
		l.closeFiles()
		return nil, err
	}

	var out io.Writer = l.logFile
	if cfg.EnableConsole {
		out = io.MultiWriter(os.Stderr, l.logFile)
	}
	l.logger = log.New(out, "", 0)

	if cfg.Retention > 0 {
		pruneSessions(cfg.BaseDir, cfg.Retention)
	}
	return l, nil
}

func (l *Logger) openFiles() error {
	var err error
	l.logFile, err = os.OpenFile(filepath.Join(l.logDir, "query.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open main log file: %w", err)
	}
	if l.config.EnableJSON {
		l.jsonFile, err = os.OpenFile(filepath.Join(l.logDir, "events.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open JSON log file: %w", err)
		}
	}
	if l.config.EnableYAML {
		l.yamlFile, err = os.OpenFile(filepath.Join(l.logDir, "session.yaml"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open YAML log file: %w", err)
		}
	}
	return nil
}

func (l *Logger) closeFiles() {
	for _, f := range []**os.File{&l.logFile, &l.jsonFile, &l.yamlFile} {
		if *f != nil {
			if err := (*f).Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
			}
			*f = nil
		}
	}
}

// pruneSessions keeps the newest keep session directories under baseDir.
func pruneSessions(baseDir string, keep int) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return
	}

	var sessions []string
	for _, entry := range entries {
		// YYYY-MM-DD-HHMMss
		if entry.IsDir() && len(entry.Name()) == 17 && strings.Count(entry.Name(), "-") == 3 {
			sessions = append(sessions, entry.Name())
		}
	}
	if len(sessions) <= keep {
		return
	}

	// Names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))
	for _, name := range sessions[keep:] {
		os.RemoveAll(filepath.Join(baseDir, name)) // best effort
	}
}

// LogDir returns the current session directory.
func (l *Logger) LogDir() string {
	return l.logDir
}

// CloseLogger closes all log files if they're open.
func CloseLogger() {
	if instance == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.closeFiles()
	instance.logger = nil
}

// GetCurrentLogDir returns the session directory of the singleton logger.
func GetCurrentLogDir() string {
	if instance == nil {
		return ""
	}
	return instance.logDir
}

func keyValuesToMap(keyValues []interface{}) map[string]interface{} {
	if len(keyValues) < 2 {
		return nil
	}
	properties := make(map[string]interface{}, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		properties[fmt.Sprintf("%v", keyValues[i])] = keyValues[i+1]
	}
	return properties
}

func (l *Logger) logMessage(level LogLevel, message string, keyValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.logLevel || l.logger == nil {
		return
	}

	now := time.Now()
	entry := LogEntry{
		Time:       now.Unix(),
		Timestamp:  now.Format(time.RFC3339),
		Level:      level.String(),
		Message:    message,
		Component:  l.config.Component,
		PID:        int64(os.Getpid()),
		Hostname:   l.hostname,
		SessionID:  l.config.SessionID,
		Properties: keyValuesToMap(keyValues),
	}

	l.logger.Println(formatLine(entry, keyValues))

	if l.jsonFile != nil {
		if data, err := json.Marshal(entry); err == nil {
			l.jsonFile.Write(append(data, '\n'))
		}
	}
	if l.yamlFile != nil {
		if data, err := yaml.Marshal(entry); err == nil {
			l.yamlFile.WriteString("---\n" + string(data))
		}
	}
}

// formatLine renders the text-log form of an entry. Long key/value lists are
// broken onto indented lines.
func formatLine(entry LogEntry, keyValues []interface{}) string {
	ts := time.Unix(entry.Time, 0).Format("2006-01-02 15:04:05")
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %-5s %s", ts, entry.Level, entry.Message)

	multiline := len(keyValues)/2 > 4
	for i := 0; i+1 < len(keyValues); i += 2 {
		if multiline {
			fmt.Fprintf(&b, "\n        %v: %v", keyValues[i], keyValues[i+1])
		} else {
			fmt.Fprintf(&b, " %v=%v", keyValues[i], keyValues[i+1])
		}
	}
	return b.String()
}

func logPackage(level LogLevel, message string, keyValues []interface{}) {
	if instance == nil {
		if level != LevelDebug {
			fmt.Fprintln(os.Stderr, formatLine(LogEntry{Time: time.Now().Unix(), Level: level.String(), Message: message}, keyValues))
		}
		return
	}
	instance.logMessage(level, message, keyValues...)
}

// Info logs informational messages.
func Info(message string, keyValues ...interface{}) {
	logPackage(LevelInfo, message, keyValues)
}

// Debug logs debug messages.
func Debug(message string, keyValues ...interface{}) {
	logPackage(LevelDebug, message, keyValues)
}

// Warn logs warning messages.
func Warn(message string, keyValues ...interface{}) {
	logPackage(LevelWarn, message, keyValues)
}

// Error logs error messages.
func Error(message string, keyValues ...interface{}) {
	logPackage(LevelError, message, keyValues)
}
