package desktop

import (
	"fmt"
	"strings"
)

// EnvVar is a single environment override.
type EnvVar struct {
	Name  string
	Value string
}

// EnvOverrides is the set of environment overrides of one entry. Names are
// unique and case-sensitive; order is insertion order.
type EnvOverrides []EnvVar

// ValidateEnvName checks that name is a legal environment variable identifier.
func ValidateEnvName(name string) *ValidationError {
	if name == "" {
		return &ValidationError{Field: FieldEnv, Message: "variable name is required"}
	}
	if name[0] >= '0' && name[0] <= '9' {
		return &ValidationError{Field: FieldEnv, Message: fmt.Sprintf("variable name %q must not start with a digit", name)}
	}
	for _, r := range name {
		if !isEnvNameRune(r) {
			return &ValidationError{Field: FieldEnv, Message: fmt.Sprintf("variable name %q may only contain letters, digits and '_'", name)}
		}
	}
	return nil
}

func isEnvNameRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Set inserts or updates a variable. Updating keeps the original position.
func (o *EnvOverrides) Set(name, value string) error {
	if verr := ValidateEnvName(name); verr != nil {
		return verr
	}
	for i := range *o {
		if (*o)[i].Name == name {
			(*o)[i].Value = value
			return nil
		}
	}
	*o = append(*o, EnvVar{Name: name, Value: value})
	return nil
}

// Unset removes a variable. Removing an absent name is a no-op.
func (o *EnvOverrides) Unset(name string) {
	for i, v := range *o {
		if v.Name == name {
			*o = append((*o)[:i:i], (*o)[i+1:]...)
			if len(*o) == 0 {
				*o = nil
			}
			return
		}
	}
}

// Get returns the value of a variable.
func (o EnvOverrides) Get(name string) (string, bool) {
	for _, v := range o {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Clone returns a copy of the overrides.
func (o EnvOverrides) Clone() EnvOverrides {
	if o == nil {
		return nil
	}
	out := make(EnvOverrides, len(o))
	copy(out, o)
	return out
}

// String renders the overrides in the editable "A=1;B=2" form.
func (o EnvOverrides) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = v.Name + "=" + v.Value
	}
	return strings.Join(parts, ";")
}

// ParseEnvOverrides parses "A=1;B=2" as typed in the editor. Blank items are
// ignored; later duplicates update earlier ones.
func ParseEnvOverrides(s string) (EnvOverrides, error) {
	var out EnvOverrides
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, &ValidationError{Field: FieldEnv, Message: fmt.Sprintf("%q is not NAME=value", item)}
		}
		if err := out.Set(strings.TrimSpace(name), value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Set inserts or updates an environment override on the entry.
func Set(e *Entry, name, value string) error {
	return e.Env.Set(name, value)
}

// Unset removes an environment override from the entry.
func Unset(e *Entry, name string) {
	e.Env.Unset(name)
}

// ApplyToCommand returns the command a launcher will run: Exec prefixed with
// "env NAME=value ..." in insertion order, or Exec unchanged when there are
// no overrides.
func ApplyToCommand(e *Entry) string {
	if len(e.Env) == 0 || e.Exec == "" {
		return e.Exec
	}
	return envPrefix(e.Env) + e.Exec
}

func envPrefix(env EnvOverrides) string {
	var sb strings.Builder
	sb.WriteString("env ")
	for _, v := range env {
		sb.WriteString(v.Name)
		sb.WriteByte('=')
		sb.WriteString(quoteExecArg(v.Value))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// execReserved are the characters that force quoting in an Exec argument.
const execReserved = " \t\n\"'\\><~|&;$*?#()`"

// quoteExecArg quotes a value using the Exec key's double-quote rules and
// doubles '%' so it is not read as a field code.
func quoteExecArg(s string) string {
	s = strings.ReplaceAll(s, "%", "%%")
	if s != "" && !strings.ContainsAny(s, execReserved) {
		return s
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '`', '$', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

// stripEnvPrefix removes a leading "env NAME=value ..." from a command.
// When the prefix matches what envPrefix renders for env it is removed
// exactly; otherwise every leading assignment is skipped.
func stripEnvPrefix(exec string, env EnvOverrides) string {
	if !strings.HasPrefix(exec, "env ") {
		return exec
	}
	if want := envPrefix(env); strings.HasPrefix(exec, want) {
		return exec[len(want):]
	}

	rest := exec[len("env "):]
	for {
		rest = strings.TrimLeft(rest, " \t")
		n := assignmentLen(rest)
		if n == 0 {
			return rest
		}
		rest = rest[n:]
	}
}

// assignmentLen returns the length of a leading NAME=value word in s, or 0.
func assignmentLen(s string) int {
	i := 0
	for i < len(s) && isEnvNameRune(rune(s[i])) {
		i++
	}
	if i == 0 || s[0] >= '0' && s[0] <= '9' || i >= len(s) || s[i] != '=' {
		return 0
	}
	i++

	inQuote := false
	for i < len(s) {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s):
			i += 2
			continue
		case c == '"':
			inQuote = !inQuote
		case !inQuote && (c == ' ' || c == '\t'):
			return i
		}
		i++
	}
	return i
}
