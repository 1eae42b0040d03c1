package errors

import (
	"errors"
	"fmt"
	"strconv"
)

// Entry-related error constructors.

// ParseFailed creates an error for a desktop file that could not be parsed.
// line is 1-based; pass 0 when the failure is not tied to a line.
func ParseFailed(path string, line int, reason string) *Error {
	msg := "malformed desktop file"
	if path != "" {
		msg = fmt.Sprintf("malformed desktop file %s", path)
	}
	err := &Error{
		Kind:    ErrParse,
		Message: msg,
		Cause:   errors.New(reason),
		Details: map[string]string{},
	}
	if path != "" {
		err.Details["path"] = path
	}
	if line > 0 {
		err.Details["line"] = strconv.Itoa(line)
	}
	return err
}

// ValidationFailed wraps the validation problems of an entry that cannot be saved.
func ValidationFailed(entryID string, cause error) *Error {
	err := &Error{
		Kind:       ErrValidation,
		Message:    "entry has invalid fields",
		Cause:      cause,
		Suggestion: "Fix the highlighted fields and save again.",
	}
	if entryID != "" {
		err.WithDetails("entry", entryID)
	}
	return err
}

// ReadDirFailed creates an error for an entry directory that exists but cannot be listed.
func ReadDirFailed(dir string, cause error) *Error {
	return &Error{
		Kind:    ErrRead,
		Message: fmt.Sprintf("failed to read directory %s", dir),
		Cause:   cause,
		Details: map[string]string{
			"dir": dir,
		},
		Suggestion: "Check the directory permissions, or point --user-dir somewhere readable.",
	}
}

// WriteFailed creates an error for an entry file that could not be written.
func WriteFailed(path string, cause error) *Error {
	return &Error{
		Kind:    ErrWrite,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: `Check that the user applications directory is writable:
  ls -ld ~/.local/share/applications`,
	}
}

// ProtectedEntry creates an error for a delete attempted on a system entry.
func ProtectedEntry(entryID, path string) *Error {
	return &Error{
		Kind:    ErrDelete,
		Message: fmt.Sprintf("cannot delete system entry %s", entryID),
		Cause:   ErrProtected,
		Details: map[string]string{
			"entry": entryID,
			"path":  path,
		},
		Suggestion: "System entries are shared by all users. Save a copy and set NoDisplay to hide it from your menu.",
	}
}

// EntryNotFound creates an error for a user entry whose file no longer exists.
func EntryNotFound(entryID, path string) *Error {
	return &Error{
		Kind:    ErrDelete,
		Message: fmt.Sprintf("entry %s is already gone", entryID),
		Cause:   ErrNotFound,
		Details: map[string]string{
			"entry": entryID,
			"path":  path,
		},
	}
}

// DeleteFailed creates an error for a user entry file that could not be removed.
func DeleteFailed(path string, cause error) *Error {
	return &Error{
		Kind:    ErrDelete,
		Message: fmt.Sprintf("failed to delete %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
	}
}
