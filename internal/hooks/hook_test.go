package hooks

import (
	"strings"
	"testing"
)

func TestEvent_String(t *testing.T) {
	if EventSave.String() != "save" || EventDelete.String() != "delete" {
		t.Errorf("events = %q, %q", EventSave, EventDelete)
	}
}

func TestResult_IsSuccess(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"success", Result{Success: true}, true},
		{"failed", Result{Success: false}, false},
		{"nonzero exit", Result{Success: true, ExitCode: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsSuccess(); got != tt.want {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResult_Summary(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "exit code and output",
			result: Result{Command: "make menu", ExitCode: 2, Output: "no rule\nsecond line"},
			want:   `hook "make menu" failed (exit 2): no rule`,
		},
		{
			name:   "error only",
			result: Result{Command: "sleep 5", ExitCode: 1, Error: "timed out after 1s"},
			want:   `hook "sleep 5" failed (exit 1): timed out after 1s`,
		},
		{
			name:   "nothing else known",
			result: Result{Command: "x"},
			want:   `hook "x" failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContext_Vars(t *testing.T) {
	hc := &Context{Event: EventSave, EntryID: "vim.desktop", Path: "/apps/vim.desktop", UserDir: "/apps"}
	vars := hc.vars()

	want := map[string]string{
		"EVENT":      "save",
		"ENTRY_ID":   "vim.desktop",
		"ENTRY_PATH": "/apps/vim.desktop",
		"USER_DIR":   "/apps",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("vars[%q] = %q, want %q", k, vars[k], v)
		}
	}
	if len(vars) != len(want) {
		t.Errorf("vars has %d keys, want %d", len(vars), len(want))
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{"USER_DIR": "/apps", "ENTRY_ID": "vim.desktop"}

	got := expandVars("update-desktop-database ${USER_DIR} # ${ENTRY_ID} ${HOME}", vars)
	want := "update-desktop-database '/apps' # 'vim.desktop' ${HOME}"
	if got != want {
		t.Errorf("expandVars() = %q, want %q", got, want)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vim.desktop", `'vim.desktop'`},
		{"", `''`},
		{"a b;c", `'a b;c'`},
		{"it's", `'it'\''s'`},
		{"$(touch x)", `'$(touch x)'`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := shellQuote(tt.in); got != tt.want {
				t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildEnv(t *testing.T) {
	t.Setenv("MENUENTRY_TEST_MARKER", "kept")
	env := buildEnv(map[string]string{"EVENT": "delete"})

	joined := strings.Join(env, "\n")
	for _, want := range []string{"MENUENTRY_EVENT=delete", "MENUENTRY_TEST_MARKER=kept"} {
		if !strings.Contains(joined, want) {
			t.Errorf("env should contain %q", want)
		}
	}
}
