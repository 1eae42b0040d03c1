// Package hooks runs user-configured shell commands after menuentry writes
// to the user directory, typically to refresh the desktop's menu cache.
package hooks

import (
	"strconv"
	"strings"
)

// Event names the write that triggered a hook.
type Event string

const (
	// EventSave follows a successful save, including system-entry copies.
	EventSave Event = "save"
	// EventDelete follows a successful delete.
	EventDelete Event = "delete"
)

// String returns the string representation of the event.
func (e Event) String() string {
	return string(e)
}

// Context describes the write a hook runs after.
type Context struct {
	Event Event
	// EntryID is the file-name key of the written or removed entry.
	EntryID string
	// Path is the file that was written or removed.
	Path string
	// UserDir is the user entry directory.
	UserDir string
}

// vars returns the variables exposed to a hook, both for ${VAR} expansion
// and, prefixed with MENUENTRY_, as environment variables.
func (c *Context) vars() map[string]string {
	return map[string]string{
		"EVENT":      c.Event.String(),
		"ENTRY_ID":   c.EntryID,
		"ENTRY_PATH": c.Path,
		"USER_DIR":   c.UserDir,
	}
}

// Result represents the outcome of one hook run.
type Result struct {
	// Command is the command after variable expansion.
	Command string
	// Success indicates whether the hook completed successfully.
	Success bool
	// Output is the combined stdout and stderr.
	Output string
	// Error contains the run error, if any.
	Error string
	// ExitCode is the exit code (0 = success).
	ExitCode int
}

// IsSuccess returns true if the hook executed successfully.
func (r *Result) IsSuccess() bool {
	return r.Success && r.ExitCode == 0
}

// Summary is a one-line description of a failed run.
func (r *Result) Summary() string {
	var sb strings.Builder
	sb.WriteString("hook ")
	sb.WriteString(strconv.Quote(r.Command))
	sb.WriteString(" failed")
	if r.ExitCode != 0 {
		sb.WriteString(" (exit ")
		sb.WriteString(strconv.Itoa(r.ExitCode))
		sb.WriteString(")")
	}
	if line, _, _ := strings.Cut(r.Output, "\n"); line != "" {
		sb.WriteString(": ")
		sb.WriteString(line)
	} else if r.Error != "" {
		sb.WriteString(": ")
		sb.WriteString(r.Error)
	}
	return sb.String()
}
