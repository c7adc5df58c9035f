package proc

import (
	"runtime"
	"strings"
	"testing"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like environment")
	}
}

func TestBuildCommand(t *testing.T) {
	requireUnix(t)
	// empty -> /bin/true
	s := Spec{Command: ""}
	c := s.BuildCommand()
	if !strings.Contains(c.String(), "/bin/true") {
		t.Fatalf("expected /bin/true, got %q", c.String())
	}
	// simple no metachar -> direct exec
	s = Spec{Command: "streamlit run app.py"}
	c = s.BuildCommand()
	if len(c.Args) != 3 || c.Args[0] != "streamlit" || c.Args[2] != "app.py" {
		t.Fatalf("expected direct exec, got %#v", c.Args)
	}
	// with shell meta -> sh -c
	s = Spec{Command: "python collector.py >/dev/null 2>&1"}
	c = s.BuildCommand()
	if len(c.Args) < 3 || c.Args[0] != "/bin/sh" || c.Args[1] != "-c" {
		t.Fatalf("expected /bin/sh -c, got %#v", c.Args)
	}
}

func TestBuildCommandExplicitShellNotDoubleWrapped(t *testing.T) {
	requireUnix(t)
	s := Spec{Command: `sh -c 'echo hi > out.txt'`}
	c := s.BuildCommand()
	if len(c.Args) != 3 || c.Args[0] != "/bin/sh" || c.Args[1] != "-c" {
		t.Fatalf("expected single shell layer, got %#v", c.Args)
	}
	if c.Args[2] != "echo hi > out.txt" {
		t.Fatalf("expected unwrapped script, got %q", c.Args[2])
	}
}

func TestParseExplicitShell(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		matched bool
	}{
		{`sh -c 'sleep 1'`, "sleep 1", true},
		{`/bin/sh -c "echo x"`, "echo x", true},
		{`sh -c echo`, "echo", true},
		{`bash -c 'echo x'`, "", false},
		{`echo sh -c nope`, "", false},
	}
	for _, tc := range cases {
		_, after, ok := parseExplicitShell(tc.in)
		if ok != tc.matched {
			t.Fatalf("%q: matched=%v want %v", tc.in, ok, tc.matched)
		}
		if ok && after != tc.want {
			t.Fatalf("%q: after=%q want %q", tc.in, after, tc.want)
		}
	}
}
