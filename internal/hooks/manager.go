package hooks

import (
	"context"
	"fmt"

	"github.com/beantownbytes/menuentry/internal/config"
	"github.com/beantownbytes/menuentry/internal/logging"
)

// Manager runs the post-write hooks in order.
type Manager struct {
	hooks  []*ShellHook
	logger *logging.Logger
}

// NewManager creates a Manager for the configured hooks. A nil logger
// disables logging.
func NewManager(defs []config.HookDefinition, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNoop()
	}
	hooks := make([]*ShellHook, 0, len(defs))
	for _, def := range defs {
		hooks = append(hooks, NewShellHook(def))
	}
	return &Manager{hooks: hooks, logger: logger}
}

// Hooks returns the configured hooks.
func (m *Manager) Hooks() []*ShellHook {
	return m.hooks
}

// HasHooks returns true if at least one hook is configured.
func (m *Manager) HasHooks() bool {
	return len(m.hooks) > 0
}

// Run executes every hook for hc. A failing hook does not stop the ones
// after it; a canceled ctx does.
func (m *Manager) Run(ctx context.Context, hc *Context) []*Result {
	results := make([]*Result, 0, len(m.hooks))

	for i, hook := range m.hooks {
		if ctx.Err() != nil {
			m.logger.Warn("hooks canceled", "event", hc.Event, "remaining", len(m.hooks)-i)
			break
		}

		result, err := hook.Execute(ctx, hc)
		if err != nil {
			result = &Result{
				Command:  hook.Command(),
				Error:    fmt.Sprintf("execution error: %v", err),
				ExitCode: 1,
			}
		}
		results = append(results, result)

		if result.IsSuccess() {
			m.logger.Debug("hook succeeded", "event", hc.Event, "command", result.Command)
		} else {
			m.logger.Warn("hook failed",
				"event", hc.Event,
				"command", result.Command,
				"exit_code", result.ExitCode,
				"error", result.Error,
				"output", result.Output)
		}
	}

	return results
}

// FirstFailure returns the first unsuccessful result, or nil.
func FirstFailure(results []*Result) *Result {
	for _, r := range results {
		if !r.IsSuccess() {
			return r
		}
	}
	return nil
}
