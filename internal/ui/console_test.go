package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestFprintRequest(t *testing.T) {
	var buf bytes.Buffer
	FprintRequest(&buf, "POST", "/v1/chat/completions", 502, 1500*time.Millisecond, "groq")

	out := buf.String()
	for _, want := range []string{"POST", "/v1/chat/completions", "502", "1500ms", "groq"} {
		if !strings.Contains(out, want) {
			t.Errorf("FprintRequest() = %q, missing %q", out, want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short", 24); got != "/short" {
		t.Errorf("truncatePath() = %q", got)
	}
	long := "/v1/some/very/long/path/that/overflows"
	got := truncatePath(long, 24)
	if len(got) != 24 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncatePath(%q) = %q", long, got)
	}
}

func TestFprintStartupInfo(t *testing.T) {
	var buf bytes.Buffer
	FprintStartupInfo(&buf, StartupInfo{Host: "0.0.0.0", Port: 8080, Provider: "anthropic", Model: "claude-3-5-sonnet-20241022"})

	out := buf.String()
	if !strings.Contains(out, "http://0.0.0.0:8080") {
		t.Errorf("missing listen address in %q", out)
	}
	if !strings.Contains(out, "missing") {
		t.Errorf("unconfigured credential should be reported, got %q", out)
	}
	for _, e := range Endpoints {
		if !strings.Contains(out, e.Path) {
			t.Errorf("route %s not listed", e.Path)
		}
	}
}

func TestFprintBanner(t *testing.T) {
	var buf bytes.Buffer
	FprintBanner(&buf)
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("banner missing version: %q", buf.String())
	}
}
