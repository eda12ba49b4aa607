package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	store := NewSettingsFile(t.TempDir(), nil)
	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Template != domain.DefaultTemplate {
		t.Fatalf("template = %q", settings.Template)
	}
	if settings.Schedule != domain.DefaultSchedule() {
		t.Fatal("expected default schedule")
	}
}

func TestLoadSettingsCommentOnlyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "# nothing here\n! still nothing\n\n")
	settings, err := NewSettingsFile(dir, nil).LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Schedule != domain.DefaultSchedule() {
		t.Fatal("expected default schedule")
	}
}

func TestLoadSettingsWithAnyKeySkipsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "kick.message=Closed\n")
	settings, err := NewSettingsFile(dir, nil).LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !settings.Schedule.Empty() {
		t.Fatal("expected no restricted days")
	}
	if settings.Template != "Closed" {
		t.Fatalf("template = %q", settings.Template)
	}
}

func TestLoadSettingsParsesPropertiesGrammar(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, strings.Join([]string{
		"# comment",
		`kick.message=Caf\u00e9 closed on %day% \`,
		"    until %end_time%",
		"monday.times = 0900-1700",
		"tuesday.times:OFF",
		"wednesday.times 2300-0700",
		"thursday.times=off",
		"",
	}, "\n"))

	settings, err := NewSettingsFile(dir, nil).LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if want := "Café closed on %day% until %end_time%"; settings.Template != want {
		t.Fatalf("template = %q, want %q", settings.Template, want)
	}
	if w, ok := settings.Schedule.Window(domain.Monday); !ok || w.String() != "0900-1700" {
		t.Fatalf("monday = %v, %v", w, ok)
	}
	if w, ok := settings.Schedule.Window(domain.Wednesday); !ok || w.String() != "2300-0700" {
		t.Fatalf("wednesday = %v, %v", w, ok)
	}
	for _, day := range []domain.Day{domain.Tuesday, domain.Thursday, domain.Friday, domain.Saturday, domain.Sunday} {
		if _, ok := settings.Schedule.Window(day); ok {
			t.Fatalf("%v should be unrestricted", day)
		}
	}
}

func TestLoadSettingsLogsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "monday.times=9-17\ntuesday.times=2300-0700\nfriday.times=2500-0100\n")
	core, logs := observer.New(zapcore.WarnLevel)

	settings, err := NewSettingsFile(dir, zap.New(core)).LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if _, ok := settings.Schedule.Window(domain.Monday); ok {
		t.Fatal("malformed monday should be unrestricted")
	}
	if _, ok := settings.Schedule.Window(domain.Tuesday); !ok {
		t.Fatal("tuesday should be restricted")
	}
	entries := logs.FilterMessage("ignoring malformed schedule entry").All()
	if len(entries) != 2 {
		t.Fatalf("malformed log entries = %d, want 2", len(entries))
	}
	if got := entries[0].ContextMap()["day"]; got != "Monday" {
		t.Fatalf("logged day = %v, want Monday", got)
	}
}

func TestLoadSettingsSalvagesDamagedFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, strings.Join([]string{
		`kick.message=Closed \u00zz now`,
		`monday.times=0900-\`,
		"    1700",
		"saturday.times=off",
		"sunday.times=off",
		"",
	}, "\n"))
	core, logs := observer.New(zapcore.WarnLevel)

	settings, err := NewSettingsFile(dir, zap.New(core)).LoadSettings()
	if err == nil {
		t.Fatal("expected parse error for the damaged file")
	}
	if w, ok := settings.Schedule.Window(domain.Monday); !ok || w.String() != "0900-1700" {
		t.Fatalf("monday = %v, %v", w, ok)
	}
	for _, day := range []domain.Day{domain.Saturday, domain.Sunday} {
		if _, ok := settings.Schedule.Window(day); ok {
			t.Fatalf("%v is off and must not take the default window", day)
		}
	}
	if settings.Template != domain.DefaultTemplate {
		t.Fatalf("template = %q, want default for the unreadable line", settings.Template)
	}
	dropped := logs.FilterMessage("dropping unreadable settings line").All()
	if len(dropped) != 1 {
		t.Fatalf("dropped lines = %d, want 1", len(dropped))
	}
	if got := dropped[0].ContextMap()["line"]; got != int64(1) {
		t.Fatalf("dropped line = %v, want 1", got)
	}
}

func TestLogicalLinesJoinsContinuations(t *testing.T) {
	lines := logicalLines([]byte("a=1 \\\r\n  2\nb=x\\\\\nc=3"))
	if len(lines) != 3 {
		t.Fatalf("lines = %q, want 3", lines)
	}
	if string(lines[1]) != `b=x\\` {
		t.Fatalf("escaped backslash should not continue: %q", lines[1])
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewSettingsFile(dir, nil)
	schedule := domain.DefaultSchedule()
	w, _ := domain.ParseWindow("0900-1700")
	schedule.Set(domain.Monday, w)
	want := storage.Settings{
		Schedule: schedule,
		Template: "Zugang gesperrt: %day% ${not expanded} Ω",
	}

	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got.Schedule != want.Schedule {
		t.Fatal("schedule changed across round trip")
	}
	if got.Template != want.Template {
		t.Fatalf("template = %q, want %q", got.Template, want.Template)
	}
}

func TestSaveSettingsWritesEveryDay(t *testing.T) {
	dir := t.TempDir()
	store := NewSettingsFile(dir, nil)
	if err := store.SaveSettings(storage.Settings{Schedule: domain.DefaultSchedule(), Template: domain.DefaultTemplate}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# TimeRestrict Mod Settings.") {
		t.Fatalf("missing header comment:\n%s", content)
	}
	for _, line := range []string{
		"monday.times = off",
		"friday.times = off",
		"saturday.times = 2300-0700",
		"sunday.times = 2300-0700",
	} {
		if !strings.Contains(content, line) {
			t.Fatalf("settings file missing %q:\n%s", line, content)
		}
	}
	if strings.Index(content, "kick.message") > strings.Index(content, "monday.times") {
		t.Fatal("kick.message should precede day entries")
	}
}

func TestSaveSettingsCreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	store := NewSettingsFile(dir, nil)
	if err := store.SaveSettings(storage.Settings{Template: domain.DefaultTemplate}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("stat settings: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("config dir entries = %d, want only the settings file", len(entries))
	}
}

func TestSaveSettingsFailsWhenDirIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "config")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	if err := NewSettingsFile(blocker, nil).SaveSettings(storage.Settings{}); err == nil {
		t.Fatal("expected save error")
	}
}
