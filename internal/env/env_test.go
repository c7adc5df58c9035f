package env

import (
	"strings"
	"testing"
)

func toMap(kvs []string) map[string]string {
	m := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			m[kv[:i]] = kv[i+1:]
		}
	}
	return m
}

func TestMergePrecedence(t *testing.T) {
	t.Setenv("RELAUNCH_TEST_BASE", "os")
	t.Setenv("RELAUNCH_TEST_OVERRIDE", "os")

	e := New()
	e.FromOS()
	e.Set("RELAUNCH_TEST_OVERRIDE", "global")
	e.Set("RELAUNCH_TEST_GLOBAL", "global")

	m := toMap(e.Merge([]string{"RELAUNCH_TEST_GLOBAL=proc", "RELAUNCH_TEST_PROC=proc"}))
	if m["RELAUNCH_TEST_BASE"] != "os" {
		t.Fatalf("base lost: %q", m["RELAUNCH_TEST_BASE"])
	}
	if m["RELAUNCH_TEST_OVERRIDE"] != "global" {
		t.Fatalf("global override lost: %q", m["RELAUNCH_TEST_OVERRIDE"])
	}
	if m["RELAUNCH_TEST_GLOBAL"] != "proc" {
		t.Fatalf("per-proc override lost: %q", m["RELAUNCH_TEST_GLOBAL"])
	}
	if m["RELAUNCH_TEST_PROC"] != "proc" {
		t.Fatalf("per-proc var lost: %q", m["RELAUNCH_TEST_PROC"])
	}
}

func TestMergeExpansion(t *testing.T) {
	e := New()
	e.FromOS()
	e.Set("RELAUNCH_TEST_HOME", "/srv/dash")
	m := toMap(e.Merge([]string{"RELAUNCH_TEST_DATA=${RELAUNCH_TEST_HOME}/data"}))
	if m["RELAUNCH_TEST_DATA"] != "/srv/dash/data" {
		t.Fatalf("expansion failed: %q", m["RELAUNCH_TEST_DATA"])
	}
}

func TestMergeSkipsMalformed(t *testing.T) {
	e := New()
	e.FromOS()
	e.SetAll([]string{"=bad", "no-equals-at-all-ignored-by-merge"})
	m := toMap(e.Merge([]string{"=alsobad", "OK=1"}))
	if _, ok := m[""]; ok {
		t.Fatal("empty key leaked into environment")
	}
	if m["OK"] != "1" {
		t.Fatalf("valid entry lost: %q", m["OK"])
	}
}

func TestRequireAllPresent(t *testing.T) {
	environ := []string{"ADMIN_API_KEY=secret", "PATH=/bin"}
	if err := Require(environ, []string{"ADMIN_API_KEY", "PATH"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireMissingNamesAll(t *testing.T) {
	environ := []string{"PATH=/bin", "EMPTY="}
	err := Require(environ, []string{"ADMIN_API_KEY", "EMPTY", "ZOTHER"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"ADMIN_API_KEY", "EMPTY", "ZOTHER"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not name %s", msg, want)
		}
	}
}

func TestRequireNoNames(t *testing.T) {
	if err := Require(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Require([]string{"A=1"}, []string{"", "  "}); err != nil {
		t.Fatalf("blank names should be ignored: %v", err)
	}
}
