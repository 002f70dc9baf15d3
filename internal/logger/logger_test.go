package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_VerboseDisabled(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Debug("hidden %s", "message")

	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose disabled, got %q", buf.String())
	}
}

func TestDebug_VerboseEnabled(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Debug("visible %s", "message")

	if !strings.Contains(buf.String(), "[DEBUG] visible message") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestInfo_VerboseEnabled(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Info("count=%d", 3)

	if !strings.Contains(buf.String(), "[INFO] count=3") {
		t.Errorf("expected info output, got %q", buf.String())
	}
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Warn("degraded: %v", "zero vector")

	if !strings.Contains(buf.String(), "[WARN] degraded: zero vector") {
		t.Errorf("expected warning even without verbose, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Section("Ingestion")

	if !strings.Contains(buf.String(), "=== Ingestion ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}

func TestIsVerbose(t *testing.T) {
	setup(t)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose true")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected IsVerbose false")
	}
}
