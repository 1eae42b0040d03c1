package components

import (
	"strings"
	"testing"
)

func TestNewStatusBar(t *testing.T) {
	sb := NewStatusBar()
	if sb == nil {
		t.Fatal("expected non-nil StatusBar")
	}
	if sb.Message() != "" {
		t.Errorf("Message() = %q, want empty", sb.Message())
	}
	if !strings.Contains(sb.View(), "quit") {
		t.Error("default status bar should show the list shortcuts")
	}
}

func TestStatusBarMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		kind MessageKind
	}{
		{"info", "Reloaded", MessageInfo},
		{"success", "Saved /home/u/vim.desktop", MessageSuccess},
		{"error", "write error: permission denied", MessageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewStatusBar()
			sb.SetMessage(tt.msg, tt.kind)

			if sb.Message() != tt.msg {
				t.Errorf("Message() = %q, want %q", sb.Message(), tt.msg)
			}
			if sb.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", sb.Kind(), tt.kind)
			}
			if !strings.Contains(sb.View(), tt.msg) {
				t.Errorf("View should contain %q", tt.msg)
			}
		})
	}
}

func TestStatusBarClearMessage(t *testing.T) {
	sb := NewStatusBar()
	sb.SetMessage("boom", MessageError)
	sb.ClearMessage()

	if sb.Message() != "" || sb.Kind() != MessageInfo {
		t.Errorf("after ClearMessage got (%q, %v), want empty info", sb.Message(), sb.Kind())
	}
}

func TestStatusBarFilterAndShortcuts(t *testing.T) {
	sb := NewStatusBar()
	sb.SetFilter("fire")
	sb.SetShortcuts(FilterShortcuts)

	view := sb.View()
	if !strings.Contains(view, "fire") {
		t.Error("View should contain the filter")
	}
	if !strings.Contains(view, "apply") {
		t.Error("View should contain the filter shortcuts")
	}
	if strings.Contains(view, "quit") {
		t.Error("View should not contain replaced shortcuts")
	}
}

func TestStatusBarWidth(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(200)
	sb.SetMessage("hello", MessageInfo)

	view := sb.View()
	if !strings.Contains(view, "hello") {
		t.Error("View should contain the message")
	}
}
