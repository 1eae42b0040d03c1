package desktop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// fileFields ignores the fields that are not stored in the file itself.
var fileFields = cmp.Options{
	cmpopts.IgnoreFields(Entry{}, "ID", "Origin", "Provenance"),
	cmpopts.EquateEmpty(),
}

func TestSerialize_KeyOrder(t *testing.T) {
	e := &Entry{
		Type:           TypeApplication,
		Name:           "Editor",
		GenericName:    "Text Editor",
		Comment:        "Edit text",
		Icon:           "editor",
		TryExec:        "editor",
		Exec:           "editor %F",
		Path:           "/tmp",
		Terminal:       true,
		Categories:     []string{"Utility", "TextEditor"},
		Keywords:       []string{"text"},
		MimeTypes:      []string{"text/plain"},
		StartupWMClass: "Editor",
		StartupNotify:  true,
		NoDisplay:      true,
		Hidden:         true,
		Env:            EnvOverrides{{Name: "LANG", Value: "C"}},
		Extra:          []KeyValue{{Key: "X-Vendor", Value: "acme"}},
		Groups:         []RawGroup{{Header: "[Desktop Action new]", Lines: []string{"Name=New"}}},
	}

	want := `[Desktop Entry]
Type=Application
Name=Editor
GenericName=Text Editor
Comment=Edit text
Icon=editor
TryExec=editor
Exec=env LANG=C editor %F
Path=/tmp
Terminal=true
Categories=Utility;TextEditor;
Keywords=text;
MimeType=text/plain;
StartupWMClass=Editor
StartupNotify=true
NoDisplay=true
Hidden=true
X-Env-Vars=LANG=C;
X-Vendor=acme

[Desktop Action new]
Name=New
`
	if got := string(Serialize(e)); got != want {
		t.Errorf("Serialize() mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerialize_OmitsEmpty(t *testing.T) {
	e := &Entry{Type: TypeApplication, Name: "A", Exec: "a"}

	want := "[Desktop Entry]\nType=Application\nName=A\nExec=a\nTerminal=false\n"
	if got := string(Serialize(e)); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_Stable(t *testing.T) {
	e, err := Parse(strings.NewReader(firefoxEntry))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first := Serialize(e)
	again, err := Parse(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("Parse(Serialize): %v", err)
	}
	if second := Serialize(again); !bytes.Equal(first, second) {
		t.Errorf("Serialize not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
	}{
		{
			name:  "minimal application",
			entry: &Entry{Type: TypeApplication, Name: "A", Exec: "a"},
		},
		{
			name:  "link",
			entry: &Entry{Type: TypeLink, Name: "Docs", URL: "https://example.com/docs", Icon: "help"},
		},
		{
			name:  "directory",
			entry: &Entry{Type: TypeDirectory, Name: "Games", NoDisplay: true},
		},
		{
			name: "escapes",
			entry: &Entry{
				Type:    TypeApplication,
				Name:    "  padded name ",
				Comment: "line one\nline two\ttabbed \\ backslash\r",
				Exec:    `sh -c "echo \"hi\""`,
			},
		},
		{
			name: "bytes that are not utf-8",
			entry: &Entry{
				Type:     TypeApplication,
				Name:     "Caf\xe9",
				Comment:  "\xffstill\xfe kept",
				Exec:     "cafe",
				Keywords: []string{"na\xefve"},
			},
		},
		{
			name: "lists with escapes",
			entry: &Entry{
				Type:       TypeApplication,
				Name:       "Lists",
				Exec:       "lists",
				Keywords:   []string{`back\slash`, " spaced ", "tab\there"},
				Categories: []string{"Utility"},
			},
		},
		{
			name: "env overrides",
			entry: &Entry{
				Type: TypeApplication,
				Name: "Env",
				Exec: "app --flag %f",
				Env: EnvOverrides{
					{Name: "DISPLAY", Value: ":0"},
					{Name: "GREETING", Value: "hello world"},
					{Name: "PCT", Value: "100%"},
					{Name: "TRICKY", Value: `a;b\c"d$e`},
					{Name: "EMPTY", Value: ""},
				},
			},
		},
		{
			name: "exec already using env",
			entry: &Entry{
				Type: TypeApplication,
				Name: "Nested",
				Exec: "env FOO=1 app",
				Env:  EnvOverrides{{Name: "BAR", Value: "2"}},
			},
		},
		{
			name: "extras and groups",
			entry: &Entry{
				Type:   TypeApplication,
				Name:   "Full",
				Exec:   "full",
				Hidden: true,
				Extra: []KeyValue{
					{Key: "Name[fr]", Value: "Complet"},
					{Key: "Actions", Value: "one;two;"},
				},
				Groups: []RawGroup{
					{Header: "[Desktop Action one]", Lines: []string{"Name=One", "Exec=full --one"}},
					{Header: "[Desktop Action two]", Lines: []string{"Name=Two", "Exec=full --two"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := Validate(tt.entry); len(errs) != 0 {
				t.Fatalf("test entry is invalid: %v", errs)
			}

			got, err := Parse(bytes.NewReader(Serialize(tt.entry)))
			if err != nil {
				t.Fatalf("Parse(Serialize(e)): %v\n%s", err, Serialize(tt.entry))
			}
			if diff := cmp.Diff(tt.entry, got, fileFields); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_Latin1File(t *testing.T) {
	input := "[Desktop Entry]\nType=Application\nName=Caf\xe9\nExec=cafe\n"

	e, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if errs := Validate(e); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}

	got, err := Parse(bytes.NewReader(Serialize(e)))
	if err != nil {
		t.Fatalf("Parse(Serialize(e)): %v", err)
	}
	if got.Name != "Caf\xe9" {
		t.Errorf("Name = %q, want %q", got.Name, "Caf\xe9")
	}
}

func TestRoundTrip_RepeatedListItemsRejected(t *testing.T) {
	e := &Entry{Type: TypeApplication, Name: "A", Exec: "a", Categories: []string{"Game", "Game"}}
	if !Validate(e).Has(FieldCategories) {
		t.Fatalf("Validate() should flag repeated categories")
	}

	got, err := Parse(bytes.NewReader(Serialize(e)))
	if err != nil {
		t.Fatalf("Parse(Serialize(e)): %v", err)
	}
	if diff := cmp.Diff([]string{"Game"}, got.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTo(t *testing.T) {
	e := &Entry{Type: TypeApplication, Name: "A", Exec: "a"}

	var buf bytes.Buffer
	n, err := e.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, want %d", n, buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), Serialize(e)) {
		t.Error("WriteTo output differs from Serialize")
	}
}
