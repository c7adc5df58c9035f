package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSloggerToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "relaunch.log")
	cfg := Config{Slog: SlogConfig{Level: LevelDebug, Format: FormatJSON, File: logPath}}

	l := cfg.NewSlogger()
	l.Info("hello", "k", "v")
	l.Debug("dbg")

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"hello"`) {
		t.Fatalf("unexpected log content: %q", b)
	}
	if !strings.Contains(string(b), `"dbg"`) {
		t.Fatal("debug level not honored")
	}
}

func TestNewSloggerLevelFilter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	cfg := Config{Slog: SlogConfig{Level: LevelWarn, File: logPath}}
	l := cfg.NewSlogger()
	l.Info("suppressed")
	l.Warn("kept")

	b, _ := os.ReadFile(logPath)
	if strings.Contains(string(b), "suppressed") {
		t.Fatal("info should be filtered at warn level")
	}
	if !strings.Contains(string(b), "kept") {
		t.Fatalf("warn lost: %q", b)
	}
}

func TestSlogLevelMapping(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(""):  "INFO",
		Level("x"): "INFO",
	}
	for in, want := range cases {
		if got := in.slogLevel().String(); got != want {
			t.Fatalf("%q -> %s, want %s", in, got, want)
		}
	}
}

func TestFileConfigStdioPaths(t *testing.T) {
	c := FileConfig{Dir: "/var/log/x"}
	out, errp := c.stdioPaths("dash")
	if out != filepath.Join("/var/log/x", "dash.stdout.log") {
		t.Fatalf("stdout path: %q", out)
	}
	if errp != filepath.Join("/var/log/x", "dash.stderr.log") {
		t.Fatalf("stderr path: %q", errp)
	}
	// explicit paths win over Dir
	c = FileConfig{Dir: "/var/log/x", StdoutPath: "/tmp/o.log", StderrPath: "/tmp/e.log"}
	out, errp = c.stdioPaths("dash")
	if out != "/tmp/o.log" || errp != "/tmp/e.log" {
		t.Fatalf("explicit paths: %q %q", out, errp)
	}
	if !c.Enabled() {
		t.Fatal("Enabled should be true")
	}
	if (FileConfig{}).Enabled() {
		t.Fatal("zero config should be disabled")
	}
}

func TestOpenChildFilesDevNull(t *testing.T) {
	outF, errF, err := FileConfig{}.OpenChildFiles("quiet")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = outF.Close(); _ = errF.Close() }()
	if outF.Name() != os.DevNull || errF.Name() != os.DevNull {
		t.Fatalf("expected devnull, got %q %q", outF.Name(), errF.Name())
	}
}

func TestOpenChildFilesRotatesPrevious(t *testing.T) {
	dir := t.TempDir()
	c := FileConfig{Dir: dir}
	prev := filepath.Join(dir, "dash.stdout.log")
	if err := os.WriteFile(prev, []byte("old run output\n"), 0o640); err != nil {
		t.Fatal(err)
	}

	outF, errF, err := c.OpenChildFiles("dash")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = outF.Close(); _ = errF.Close() }()

	// the fresh file is empty, the old contents moved to a backup
	st, err := os.Stat(prev)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() != 0 {
		t.Fatalf("expected rotated-away log, size=%d", st.Size())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var backups int
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "dash.stdout-") || (strings.Contains(name, "dash.stdout") && name != "dash.stdout.log") {
			backups++
		}
	}
	if backups == 0 {
		t.Fatal("no backup file after rotation")
	}
}
