package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// These tests mutate package state and must not run in parallel.

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelInfo)
	})

	SetLevel(LevelWarn)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	got := buf.String()
	if strings.Contains(got, "hidden 1") {
		t.Fatalf("expected info to be filtered, got %q", got)
	}
	if !strings.Contains(got, "shown 2") {
		t.Fatalf("expected warn line, got %q", got)
	}
}

func TestJSONOutputCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetJSON(true)
	t.Cleanup(func() {
		SetJSON(false)
		SetOutput(nil)
	})

	With("tranche_id", "t-1").Info("profiles projected", "count", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["tranche_id"] != "t-1" {
		t.Fatalf("expected tranche_id attribute, got %v", line)
	}
	if line["msg"] != "profiles projected" {
		t.Fatalf("expected msg, got %v", line["msg"])
	}
}

func TestFatalfExits(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	code := -1
	exit = func(c int) { code = c }
	t.Cleanup(func() {
		SetOutput(nil)
		exit = os.Exit
	})

	Fatalf("boom %s", "now")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "boom now") {
		t.Fatalf("expected fatal message, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
