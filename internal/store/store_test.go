package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/beantownbytes/menuentry/internal/desktop"
	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
)

type testDirs struct {
	user    string
	system1 string
	system2 string
}

func newTestDirs(t *testing.T) testDirs {
	t.Helper()
	root := t.TempDir()
	return testDirs{
		user:    filepath.Join(root, "home", "applications"),
		system1: filepath.Join(root, "usr-local", "applications"),
		system2: filepath.Join(root, "usr", "applications"),
	}
}

func (d testDirs) store() *Store {
	return New(Options{UserDir: d.user, SystemDirs: []string{d.system1, d.system2}}, nil)
}

func writeEntry(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func app(name, exec string) string {
	return "[Desktop Entry]\nType=Application\nName=" + name + "\nExec=" + exec + "\n"
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

func ids(entries []*desktop.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestNew(t *testing.T) {
	opts := Options{UserDir: "/home/u/.local/share/applications", SystemDirs: []string{"/usr/share/applications"}}
	s := New(opts, nil)

	if s.logger == nil {
		t.Error("logger should default to a noop logger")
	}
	if diff := cmp.Diff(opts, s.Options()); diff != "" {
		t.Errorf("Options() mismatch (-want +got):\n%s", diff)
	}
	if len(s.Entries()) != 0 {
		t.Errorf("Entries() length = %d, want 0 before LoadAll", len(s.Entries()))
	}
}

func TestLoadAll_UserShadowsSystem(t *testing.T) {
	d := newTestDirs(t)
	sysPath := writeEntry(t, d.system1, "firefox.desktop", app("Firefox", "firefox %u"))
	writeEntry(t, d.user, "firefox.desktop", app("Firefox Dev", "firefox-dev %u"))

	s := d.store()
	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("LoadAll() returned %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "Firefox Dev" {
		t.Errorf("Name = %q, want %q", e.Name, "Firefox Dev")
	}
	if e.Provenance != desktop.ProvenanceUser {
		t.Errorf("Provenance = %q, want %q", e.Provenance, desktop.ProvenanceUser)
	}
	if got := readFile(t, sysPath); got != app("Firefox", "firefox %u") {
		t.Errorf("system file changed:\n%s", got)
	}
}

func TestLoadAll_FirstSystemDirWins(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "vim.desktop", app("Vim Local", "vim"))
	writeEntry(t, d.system2, "vim.desktop", app("Vim", "vim"))

	entries, err := d.store().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("LoadAll() returned %d entries, want 1", len(entries))
	}
	if entries[0].Name != "Vim Local" {
		t.Errorf("Name = %q, want %q", entries[0].Name, "Vim Local")
	}
	if entries[0].Origin != filepath.Join(d.system1, "vim.desktop") {
		t.Errorf("Origin = %q, want the first system directory", entries[0].Origin)
	}
}

func TestLoadAll_Sorting(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "b.desktop", app("beta", "b"))
	writeEntry(t, d.system1, "a2.desktop", app("Alpha", "a"))
	writeEntry(t, d.user, "a1.desktop", app("alpha", "a"))
	writeEntry(t, d.user, "c.desktop", app("Charlie", "c"))

	entries, err := d.store().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	want := []string{"a1.desktop", "a2.desktop", "b.desktop", "c.desktop"}
	if diff := cmp.Diff(want, ids(entries)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAll_SkipsAndRecordsFailures(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "good.desktop", app("Good", "good"))
	badPath := writeEntry(t, d.system1, "bad.desktop", "not a desktop file\n")
	writeEntry(t, d.system1, "README", "ignored")
	writeEntry(t, d.system1, ".hidden.desktop", app("Hidden", "h"))
	if err := os.MkdirAll(filepath.Join(d.system1, "sub.desktop"), 0755); err != nil {
		t.Fatal(err)
	}
	writeEntry(t, filepath.Join(d.system1, "nested"), "deep.desktop", app("Deep", "deep"))

	s := d.store()
	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if diff := cmp.Diff([]string{"good.desktop"}, ids(entries)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	failures := s.Failures()
	if len(failures) != 1 {
		t.Fatalf("Failures() length = %d, want 1: %v", len(failures), failures)
	}
	if failures[0].Path != badPath {
		t.Errorf("failure path = %q, want %q", failures[0].Path, badPath)
	}
	if !errors.Is(failures[0].Err, menuerrors.ErrParse) {
		t.Errorf("failure error = %v, want ErrParse", failures[0].Err)
	}
}

func TestLoadAll_MissingDirectories(t *testing.T) {
	d := newTestDirs(t)

	entries, err := d.store().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("LoadAll() returned %d entries, want 0", len(entries))
	}
}

func TestLoadAll_UnreadableUserDir(t *testing.T) {
	d := newTestDirs(t)
	// A regular file where the directory should be cannot be listed.
	writeEntry(t, filepath.Dir(d.user), "applications", "file")

	_, err := d.store().LoadAll()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, menuerrors.ErrRead) {
		t.Errorf("errors.Is(err, ErrRead) = false, err = %v", err)
	}
}

func TestLoadAll_SymlinkedEntry(t *testing.T) {
	d := newTestDirs(t)
	target := writeEntry(t, filepath.Join(d.system2, "..", "real"), "tool.desktop", app("Tool", "tool"))
	if err := os.MkdirAll(d.system1, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(d.system1, "tool.desktop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	entries, err := d.store().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if diff := cmp.Diff([]string{"tool.desktop"}, ids(entries)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRefresh(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	writeEntry(t, d.user, "b.desktop", app("B", "b"))
	if err := os.Remove(filepath.Join(d.user, "a.desktop")); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Refresh()
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if diff := cmp.Diff([]string{"b.desktop"}, ids(entries)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries_ReturnsCopies(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	entries[0].Name = "changed"
	if got, _ := s.Get("a.desktop"); got.Name != "A" {
		t.Errorf("store entry changed through returned copy: Name = %q", got.Name)
	}
	if _, ok := s.Get("missing.desktop"); ok {
		t.Error("Get(missing) should not be found")
	}
}

func TestSave_NewUserEntry(t *testing.T) {
	d := newTestDirs(t)
	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e := desktop.NewEntry()
	e.Name = "My Script"
	e.Exec = "/home/u/bin/script.sh"
	e.Categories = []string{"Utility"}

	path, err := s.Save(e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	wantPath := filepath.Join(d.user, "my-script.desktop")
	if path != wantPath {
		t.Errorf("Save() path = %q, want %q", path, wantPath)
	}
	if e.ID != "my-script.desktop" || e.Origin != wantPath {
		t.Errorf("caller entry not updated: ID = %q, Origin = %q", e.ID, e.Origin)
	}

	parsed, err := desktop.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	opts := cmp.Options{cmpopts.IgnoreFields(desktop.Entry{}, "Provenance"), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(e, parsed, opts); diff != "" {
		t.Errorf("written entry mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("file mode = %v, want 0644", info.Mode().Perm())
	}

	if got, ok := s.Get("my-script.desktop"); !ok || got.Name != "My Script" {
		t.Error("saved entry should be in the listing")
	}
}

func TestSave_NewEntryAvoidsExistingKeys(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "tool.desktop", app("Tool", "tool"))
	writeEntry(t, d.user, "tool-1.desktop", "broken file")

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e := desktop.NewEntry()
	e.Name = "Tool"
	e.Exec = "tool --mine"

	path, err := s.Save(e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "tool-2.desktop" {
		t.Errorf("Save() wrote %q, want tool-2.desktop", filepath.Base(path))
	}
	if got := readFile(t, filepath.Join(d.user, "tool-1.desktop")); got != "broken file" {
		t.Errorf("unparseable user file was overwritten: %q", got)
	}
}

func TestSave_OverwritesUserEntry(t *testing.T) {
	d := newTestDirs(t)
	path := writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("a.desktop")
	e.Comment = "edited"
	got, err := s.Save(e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got != path {
		t.Errorf("Save() path = %q, want %q", got, path)
	}
	if !strings.Contains(readFile(t, path), "Comment=edited\n") {
		t.Errorf("file not updated:\n%s", readFile(t, path))
	}
	if len(s.Entries()) != 1 {
		t.Errorf("Entries() length = %d, want 1", len(s.Entries()))
	}
}

func TestSave_SystemEntryCopyOnWrite(t *testing.T) {
	d := newTestDirs(t)
	original := app("Firefox", "firefox %u")
	sysPath := writeEntry(t, d.system1, "firefox.desktop", original)
	writeEntry(t, d.system2, "firefox-1.desktop", app("Other", "other"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("firefox.desktop")
	e.NoDisplay = true

	path, err := s.Save(e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if filepath.Dir(path) != d.user {
		t.Errorf("Save() wrote %q, want a file in %q", path, d.user)
	}
	if e.ID != "firefox-2.desktop" {
		t.Errorf("ID = %q, want %q", e.ID, "firefox-2.desktop")
	}
	if e.Provenance != desktop.ProvenanceUser {
		t.Errorf("Provenance = %q, want %q", e.Provenance, desktop.ProvenanceUser)
	}
	if got := readFile(t, sysPath); got != original {
		t.Errorf("system file changed:\n%s", got)
	}

	// Both the original and the copy are listed; equal names sort by key.
	entries := s.Entries()
	want := []string{"firefox-2.desktop", "firefox.desktop", "firefox-1.desktop"}
	if diff := cmp.Diff(want, ids(entries)); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_SystemEntryRepeatedCopies(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "app.desktop", app("App", "app"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	var got []string
	for i := 0; i < 3; i++ {
		e, _ := s.Get("app.desktop")
		path, err := s.Save(e)
		if err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
		got = append(got, filepath.Base(path))
	}

	want := []string{"app-1.desktop", "app-2.desktop", "app-3.desktop"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("copy names mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_InvalidEntryWritesNothing(t *testing.T) {
	d := newTestDirs(t)
	s := d.store()

	e := desktop.NewEntry()
	e.Exec = "tool"

	_, err := s.Save(e)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, menuerrors.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, err = %v", err)
	}

	var verrs desktop.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors cause, got %v", err)
	}
	if !verrs.Has(desktop.FieldName) {
		t.Errorf("ValidationErrors = %v, want a name error", verrs)
	}

	if _, err := os.Stat(d.user); !os.IsNotExist(err) {
		t.Errorf("user directory should not have been created, stat err = %v", err)
	}
	if e.ID != "" {
		t.Errorf("ID = %q, want empty after failed save", e.ID)
	}
}

func TestSave_UnwritableUserDir(t *testing.T) {
	d := newTestDirs(t)
	// A file in place of the user directory makes MkdirAll fail.
	writeEntry(t, filepath.Dir(d.user), "applications", "file")

	s := d.store()
	e := desktop.NewEntry()
	e.Name = "A"
	e.Exec = "a"

	_, err := s.Save(e)
	if !errors.Is(err, menuerrors.ErrWrite) {
		t.Fatalf("errors.Is(err, ErrWrite) = false, err = %v", err)
	}
	if e.ID != "" || e.Origin != "" {
		t.Errorf("caller entry changed after failed save: ID = %q, Origin = %q", e.ID, e.Origin)
	}
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	d := newTestDirs(t)
	s := d.store()

	for _, name := range []string{"One", "Two"} {
		e := desktop.NewEntry()
		e.Name = name
		e.Exec = "x"
		if _, err := s.Save(e); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}

	items, err := os.ReadDir(d.user)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, item := range items {
		names = append(names, item.Name())
	}
	if diff := cmp.Diff([]string{"one.desktop", "two.desktop"}, names); diff != "" {
		t.Errorf("user dir contents mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_WithLock(t *testing.T) {
	d := newTestDirs(t)
	lockPath := filepath.Join(filepath.Dir(d.user), "state", "menuentry.lock")
	s := New(Options{UserDir: d.user, LockPath: lockPath}, nil)

	e := desktop.NewEntry()
	e.Name = "Locked"
	e.Exec = "x"
	if _, err := s.Save(e); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}

	// The lock is released after each write.
	if err := s.Delete(e); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDelete_SystemEntryProtected(t *testing.T) {
	d := newTestDirs(t)
	sysPath := writeEntry(t, d.system1, "app.desktop", app("App", "app"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("app.desktop")
	err := s.Delete(e)
	if !errors.Is(err, menuerrors.ErrProtected) {
		t.Fatalf("errors.Is(err, ErrProtected) = false, err = %v", err)
	}
	if !errors.Is(err, menuerrors.ErrDelete) {
		t.Errorf("errors.Is(err, ErrDelete) = false, err = %v", err)
	}
	if IsIdempotent(err) {
		t.Error("a protected delete must not be treated as success")
	}
	if _, err := os.Stat(sysPath); err != nil {
		t.Errorf("system file should still exist: %v", err)
	}
	if _, ok := s.Get("app.desktop"); !ok {
		t.Error("system entry should still be listed")
	}
}

func TestDelete_UserEntry(t *testing.T) {
	d := newTestDirs(t)
	path := writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("a.desktop")
	if err := s.Delete(e); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be removed, stat err = %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Errorf("Entries() length = %d, want 0", len(s.Entries()))
	}
}

func TestDelete_Twice(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("a.desktop")
	if err := s.Delete(e); err != nil {
		t.Fatalf("first Delete: %v", err)
	}

	err := s.Delete(e)
	if !errors.Is(err, menuerrors.ErrNotFound) {
		t.Fatalf("second Delete: errors.Is(err, ErrNotFound) = false, err = %v", err)
	}
	if !IsIdempotent(err) {
		t.Error("second Delete should report success (already absent)")
	}
}

func TestDelete_ExternallyRemoved(t *testing.T) {
	d := newTestDirs(t)
	path := writeEntry(t, d.user, "a.desktop", app("A", "a"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	e, _ := s.Get("a.desktop")
	if err := s.Delete(e); !IsIdempotent(err) {
		t.Fatalf("Delete of externally removed file = %v, want ErrNotFound", err)
	}
	if _, ok := s.Get("a.desktop"); ok {
		t.Error("entry should be dropped from the listing")
	}
}

func TestDelete_UnshadowsSystemEntry(t *testing.T) {
	d := newTestDirs(t)
	writeEntry(t, d.system1, "firefox.desktop", app("Firefox", "firefox"))
	writeEntry(t, d.user, "firefox.desktop", app("Firefox Dev", "firefox-dev"))

	s := d.store()
	if _, err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	e, _ := s.Get("firefox.desktop")
	if err := s.Delete(e); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, ok := s.Get("firefox.desktop")
	if !ok {
		t.Fatal("system entry should be visible again")
	}
	if got.Name != "Firefox" || got.Provenance != desktop.ProvenanceSystem {
		t.Errorf("Get() = %q (%s), want the system Firefox", got.Name, got.Provenance)
	}
}

func TestDelete_UnsavedEntry(t *testing.T) {
	s := newTestDirs(t).store()

	err := s.Delete(desktop.NewEntry())
	if !IsIdempotent(err) {
		t.Errorf("Delete(unsaved) = %v, want ErrNotFound", err)
	}
}

func TestDelete_RejectsPathLikeIDs(t *testing.T) {
	d := newTestDirs(t)
	outside := writeEntry(t, filepath.Dir(d.user), "x.desktop", app("Outside", "outside"))
	s := d.store()

	for _, id := range []string{"../x.desktop", "sub/x.desktop", outside} {
		t.Run(id, func(t *testing.T) {
			e := &desktop.Entry{ID: id, Name: "X", Provenance: desktop.ProvenanceUser}
			err := s.Delete(e)
			if !menuerrors.Is(err, menuerrors.ErrDelete) {
				t.Errorf("Delete(%q) = %v, want ErrDelete", id, err)
			}
		})
	}

	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the user directory was touched: %v", err)
	}
}

func TestIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", menuerrors.EntryNotFound("a.desktop", "/x/a.desktop"), true},
		{"protected", menuerrors.ProtectedEntry("a.desktop", "/x/a.desktop"), false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIdempotent(tt.err); got != tt.want {
				t.Errorf("IsIdempotent() = %v, want %v", got, tt.want)
			}
		})
	}
}
