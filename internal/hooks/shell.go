package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/beantownbytes/menuentry/internal/config"
)

// DefaultTimeout bounds a hook without a configured timeout.
const DefaultTimeout = 10 * time.Second

// envPrefix is prepended to every variable exported to a hook.
const envPrefix = "MENUENTRY_"

// ShellHook executes a shell command through sh -c.
type ShellHook struct {
	command string
	timeout time.Duration
}

// NewShellHook creates a shell hook from its definition.
func NewShellHook(def config.HookDefinition) *ShellHook {
	timeout := def.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ShellHook{command: def.Command, timeout: timeout}
}

// Command returns the unexpanded command.
func (h *ShellHook) Command() string {
	return h.command
}

// Timeout returns how long one run may take.
func (h *ShellHook) Timeout() time.Duration {
	return h.timeout
}

// Execute runs the command with the hook context. A command that fails or
// times out is reported in the Result; the error is reserved for hooks that
// cannot run at all.
func (h *ShellHook) Execute(ctx context.Context, hc *Context) (*Result, error) {
	if hc == nil {
		return nil, fmt.Errorf("hook context is required")
	}
	if strings.TrimSpace(h.command) == "" {
		return nil, fmt.Errorf("shell hook command is empty")
	}

	vars := hc.vars()
	command := expandVars(h.command, vars)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = buildEnv(vars)
	cmd.Dir = hc.UserDir
	if _, err := os.Stat(cmd.Dir); err != nil {
		cmd.Dir = ""
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := strings.TrimSpace(stdout.String())
	if stderr.Len() > 0 {
		stderrStr := strings.TrimSpace(stderr.String())
		if output != "" {
			output = output + "\n" + stderrStr
		} else {
			output = stderrStr
		}
	}

	result := &Result{Command: command, Success: true, Output: output}
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if result.ExitCode <= 0 {
			result.ExitCode = 1
		}
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Sprintf("timed out after %v", h.timeout)
		}
	}
	return result, nil
}

// buildEnv starts from the current environment and adds the hook variables.
func buildEnv(vars map[string]string) []string {
	env := os.Environ()
	for key, value := range vars {
		env = append(env, envPrefix+key+"="+value)
	}
	return env
}

// expandVars replaces ${VAR} patterns with hook variables, each quoted as
// a single shell word. Other ${...} patterns are left for the shell.
func expandVars(command string, vars map[string]string) string {
	result := command
	for key, value := range vars {
		result = strings.ReplaceAll(result, "${"+key+"}", shellQuote(value))
	}
	return result
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
