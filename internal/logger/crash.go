// Package logger provides crash logging and recovery for todowing.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// CrashLogDir is the directory for crash logs relative to the base path
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10

	defaultBasePath = ".todowing"
)

// CrashContext stores context for crash logging.
type CrashContext struct {
	mu        sync.RWMutex
	sessionID string
	lastInput string
	command   string
	version   string
	basePath  string
	dataFile  string
}

var globalContext = newCrashContext()

func newCrashContext() *CrashContext {
	return &CrashContext{sessionID: uuid.NewString()}
}

// SessionID identifies the running process in crash logs.
func SessionID() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	return globalContext.sessionID
}

// SetBasePath sets the base path for crash logs (the configured log.crashDir).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetDataFile records the task file the session reads and writes.
func SetDataFile(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.dataFile = path
}

// SetLastInput records the last line the user typed.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	DataFile   string    `json:"data_file,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic is a deferred function that recovers from panics and logs them.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		reportPanic(os.Stderr, r)
		os.Exit(1)
	}
}

// reportPanic writes the crash log for r and the user-facing notice to w.
func reportPanic(w io.Writer, r any) {
	log := createCrashLog(r)
	path, err := writeCrashLog(log)
	if err != nil {
		fmt.Fprintf(w, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(w, "[CRASH] Panic: %v\n%s\n", r, log.StackTrace)
		return
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "╭──────────────────────────────────────────────────────╮\n")
	fmt.Fprintf(w, "│ 🔴 todowing encountered an unexpected error          │\n")
	fmt.Fprintf(w, "╰──────────────────────────────────────────────────────╯\n")
	fmt.Fprintf(w, "\n")
	if log.DataFile != "" {
		fmt.Fprintf(w, "Your tasks were saved to %s after the last change.\n", log.DataFile)
	}
	fmt.Fprintf(w, "A crash log has been saved to:\n")
	fmt.Fprintf(w, "  %s\n", path)
	fmt.Fprintf(w, "\n")
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		SessionID:  globalContext.sessionID,
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		DataFile:   globalContext.dataFile,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog writes a crash log to disk and returns its path.
func writeCrashLog(log CrashLog) (string, error) {
	dir := getCrashLogDir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	// Non-fatal, continue with writing
	if err := cleanOldCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := getCrashLogPath(log)
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	return path, nil
}

// Dir returns the directory crash logs are written to.
func Dir() string {
	return getCrashLogDir()
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = defaultBasePath
	}

	return filepath.Join(basePath, CrashLogDir)
}

// getCrashLogPath names the file after the timestamp and the short session id,
// so two crashes within the same second from different processes never collide.
func getCrashLogPath(log CrashLog) string {
	id := log.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("crash_%s_%s.log", log.Timestamp.Format("20060102_150405"), id)
	return filepath.Join(getCrashLogDir(), filename)
}

// formatCrashLog renders log as the plain text stored in a crash file.
func formatCrashLog(log CrashLog) string {
	fields := [][2]string{
		{"Timestamp", log.Timestamp.Format(time.RFC3339)},
		{"Session", log.SessionID},
		{"Version", log.Version},
		{"Command", log.Command},
		{"Go", log.GoVersion},
		{"OS/Arch", log.OS + "/" + log.Arch},
	}
	if log.DataFile != "" {
		fields = append(fields, [2]string{"Data file", log.DataFile})
	}

	var sb strings.Builder
	banner(&sb, "TODOWING CRASH LOG")
	sb.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "%-11s%s\n", f[0]+":", f[1])
	}

	section(&sb, "PANIC VALUE", log.PanicValue+"\n")
	section(&sb, "STACK TRACE", log.StackTrace)
	if log.LastInput != "" {
		section(&sb, "LAST USER INPUT", log.LastInput+"\n")
	}

	sb.WriteString("\n")
	banner(&sb, "END OF CRASH LOG")
	return sb.String()
}

func banner(sb *strings.Builder, title string) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(sb, "%s\n%s\n%s\n", rule, title, rule)
}

func section(sb *strings.Builder, title, body string) {
	rule := strings.Repeat("-", 80)
	fmt.Fprintf(sb, "\n%s\n%s\n%s\n%s", rule, title, rule, body)
}

// crashLogFiles lists the crash logs in dir, oldest first. File names start
// with the timestamp and os.ReadDir sorts by name. A missing dir has none.
func crashLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, "crash_") && strings.HasSuffix(name, ".log") {
			logs = append(logs, filepath.Join(dir, name))
		}
	}
	return logs, nil
}

// cleanOldCrashLogs leaves room for one more log under MaxCrashLogs by
// removing the oldest ones.
func cleanOldCrashLogs(dir string) error {
	logs, err := crashLogFiles(dir)
	if err != nil {
		return err
	}

	for len(logs) >= MaxCrashLogs {
		if err := os.Remove(logs[0]); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(logs[0]), err)
		}
		logs = logs[1:]
	}
	return nil
}

// ListCrashLogs returns the paths of the saved crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	return crashLogFiles(getCrashLogDir())
}
