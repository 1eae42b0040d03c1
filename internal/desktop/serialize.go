package desktop

import (
	"bytes"
	"io"
	"strconv"
)

// Serialize renders an entry in the desktop-entry text format. Output is
// byte-stable: keys are written in a fixed order, followed by the
// unmodelled keys and groups in the order they were read.
func Serialize(e *Entry) []byte {
	var buf bytes.Buffer

	buf.WriteString(MainGroup)
	buf.WriteByte('\n')

	typ := e.Type
	if typ == "" {
		typ = TypeApplication
	}
	writeKey(&buf, keyType, typ.String())
	writeString(&buf, keyName, e.Name)
	writeString(&buf, keyGenericName, e.GenericName)
	writeString(&buf, keyComment, e.Comment)
	writeString(&buf, keyIcon, e.Icon)
	writeString(&buf, keyTryExec, e.TryExec)
	if e.Exec != "" {
		writeKey(&buf, keyExec, escapeValue(ApplyToCommand(e)))
	}
	writeString(&buf, keyPath, e.Path)
	writeString(&buf, keyURL, e.URL)
	writeKey(&buf, keyTerminal, strconv.FormatBool(e.Terminal))
	writeList(&buf, keyCategories, e.Categories)
	writeList(&buf, keyKeywords, e.Keywords)
	writeList(&buf, keyMimeType, e.MimeTypes)
	writeString(&buf, keyStartupWMClass, e.StartupWMClass)
	writeFlag(&buf, keyStartupNotify, e.StartupNotify)
	writeFlag(&buf, keyNoDisplay, e.NoDisplay)
	writeFlag(&buf, keyHidden, e.Hidden)

	if len(e.Env) > 0 {
		items := make([]string, len(e.Env))
		for i, v := range e.Env {
			items[i] = v.Name + "=" + v.Value
		}
		writeList(&buf, keyEnvVars, items)
	}

	for _, kv := range e.Extra {
		writeKey(&buf, kv.Key, kv.Value)
	}

	for _, g := range e.Groups {
		buf.WriteByte('\n')
		buf.WriteString(g.Header)
		buf.WriteByte('\n')
		for _, line := range g.Lines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

// WriteTo writes the serialized entry to w.
func (e *Entry) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Serialize(e))
	return int64(n), err
}

func writeKey(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(value)
	buf.WriteByte('\n')
}

func writeString(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	writeKey(buf, key, escapeValue(value))
}

func writeList(buf *bytes.Buffer, key string, items []string) {
	if len(items) == 0 {
		return
	}
	writeKey(buf, key, joinList(items))
}

func writeFlag(buf *bytes.Buffer, key string, value bool) {
	if value {
		writeKey(buf, key, "true")
	}
}
