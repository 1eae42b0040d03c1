package desktop

import (
	"fmt"
	"strings"
)

// Field names reported by validation errors.
const (
	FieldName       = "name"
	FieldType       = "type"
	FieldExec       = "exec"
	FieldURL        = "url"
	FieldCategories = "categories"
	FieldKeywords   = "keywords"
	FieldMimeTypes  = "mime_types"
	FieldEnv        = "env"
	FieldID         = "id"
)

// ValidationError represents a single invalid field of an entry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Has returns true if any error concerns the given field.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Validate checks the fields of an entry and returns every problem found.
// The result is empty when the entry can be saved.
func Validate(e *Entry) ValidationErrors {
	errs := ValidationErrors{}
	if e == nil {
		return append(errs, &ValidationError{Field: FieldName, Message: "entry is nil"})
	}

	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, &ValidationError{Field: FieldName, Message: "is required"})
	}

	switch e.Type {
	case TypeApplication:
		if strings.TrimSpace(e.Exec) == "" {
			errs = append(errs, &ValidationError{Field: FieldExec, Message: "is required for Application entries"})
		}
	case TypeLink:
		if strings.TrimSpace(e.URL) == "" {
			errs = append(errs, &ValidationError{Field: FieldURL, Message: "is required for Link entries"})
		}
	case TypeDirectory:
		// no launch target
	default:
		errs = append(errs, &ValidationError{
			Field:   FieldType,
			Message: fmt.Sprintf("must be 'Application', 'Link', or 'Directory', got %q", e.Type),
		})
	}

	errs = append(errs, validateList(FieldCategories, e.Categories)...)
	errs = append(errs, validateList(FieldKeywords, e.Keywords)...)
	errs = append(errs, validateList(FieldMimeTypes, e.MimeTypes)...)

	seen := make(map[string]bool, len(e.Env))
	for _, v := range e.Env {
		if verr := ValidateEnvName(v.Name); verr != nil {
			errs = append(errs, verr)
			continue
		}
		if seen[v.Name] {
			errs = append(errs, &ValidationError{Field: FieldEnv, Message: fmt.Sprintf("variable %q is set twice", v.Name)})
		}
		seen[v.Name] = true
	}

	if e.ID != "" {
		if !ValidID(e.ID) {
			errs = append(errs, &ValidationError{
				Field:   FieldID,
				Message: fmt.Sprintf("%q must be a plain file name ending in %s", e.ID, FileExtension),
			})
		}
	}

	return errs
}

// validateList flags empty items, repeated items, and items carrying a list
// separator, a newline or '='. Parse drops repeats, so they cannot be kept.
func validateList(field string, items []string) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		repeated := seen[item]
		seen[item] = true
		switch {
		case strings.TrimSpace(item) == "":
			errs = append(errs, &ValidationError{Field: field, Message: "contains an empty item"})
		case strings.ContainsAny(item, ";\n="):
			errs = append(errs, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("item %q must not contain ';', '=' or a newline", item),
			})
		case repeated:
			errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf("item %q is listed twice", item)})
		}
	}
	return errs
}

// ValidID reports whether id is a plain, non-hidden file name ending in
// .desktop.
func ValidID(id string) bool {
	return id != FileExtension &&
		strings.HasSuffix(id, FileExtension) &&
		!strings.ContainsRune(id, '/') &&
		!strings.HasPrefix(id, ".")
}
