package ui

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
)

var (
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)
	otherBadge   = color.New(color.FgMagenta)

	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	linkText    = color.New(color.FgHiCyan, color.Bold)

	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// Endpoint is one row of the startup route table.
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// Endpoints lists the routes served by the gateway.
var Endpoints = []Endpoint{
	{http.MethodPost, "/v1/chat/completions", "Chat completion (active provider)"},
	{http.MethodPost, "/v1/assistant/chat", "Construction assistant chat"},
	{http.MethodGet, "/v1/providers", "List providers and models"},
	{http.MethodGet, "/health", "Health check"},
}

// StartupInfo describes the running server for PrintStartupInfo.
type StartupInfo struct {
	Host       string
	Port       int
	Provider   string
	Model      string
	Configured bool
}

// PrintRequest logs one request line with method, path, status, latency and provider.
func PrintRequest(method, path string, status int, latency time.Duration, provider string) {
	FprintRequest(color.Output, method, path, status, latency, provider)
}

// FprintRequest writes the request line to w.
func FprintRequest(w io.Writer, method, path string, status int, latency time.Duration, provider string) {
	mutedText.Fprintf(w, "%s ", time.Now().Format("15:04:05"))

	printMethodBadge(w, method)
	fmt.Fprint(w, " ")
	fmt.Fprintf(w, "%-24s ", truncatePath(path, 24))

	printStatusBadge(w, status)
	fmt.Fprint(w, " ")
	printLatency(w, latency)

	if provider != "" {
		fmt.Fprint(w, " ")
		accentText.Fprint(w, provider)
	}

	fmt.Fprintln(w)
}

func printMethodBadge(w io.Writer, method string) {
	switch method {
	case http.MethodPost:
		methodPOST.Fprintf(w, " %-4s ", method)
	case http.MethodGet:
		methodGET.Fprintf(w, " %-4s ", method)
	default:
		otherBadge.Fprintf(w, " %-4s ", method)
	}
}

func printStatusBadge(w io.Writer, status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Fprintf(w, " %d ", status)
	case status >= 300 && status < 400:
		infoBadge.Fprintf(w, " %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Fprintf(w, " %d ", status)
	default:
		errorBadge.Fprintf(w, " %d ", status)
	}
}

// printLatency colors by speed. Provider calls are slow, so the bands are wide.
func printLatency(w io.Writer, latency time.Duration) {
	ms := latency.Milliseconds()
	s := fmt.Sprintf("%5dms", ms)

	switch {
	case ms < 1000:
		successText.Fprint(w, s)
	case ms < 5000:
		warningText.Fprint(w, s)
	default:
		errorText.Fprint(w, s)
	}
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return path[:maxLen-3] + "..."
}

// PrintStartupInfo prints the listen address, active provider and route table.
func PrintStartupInfo(info StartupInfo) {
	FprintStartupInfo(color.Output, info)
}

// FprintStartupInfo writes the startup summary to w.
func FprintStartupInfo(w io.Writer, info StartupInfo) {
	infoBadge.Fprint(w, "[GATEWAY]")
	fmt.Fprint(w, " Listening on ")
	linkText.Fprintf(w, "http://%s:%d\n", info.Host, info.Port)

	infoBadge.Fprint(w, "[GATEWAY]")
	fmt.Fprint(w, " Provider: ")
	accentText.Fprint(w, info.Provider)
	fmt.Fprint(w, " | Model: ")
	accentText.Fprint(w, info.Model)
	fmt.Fprint(w, " | Credential: ")
	if info.Configured {
		successText.Fprintln(w, "set")
	} else {
		errorText.Fprintln(w, "missing")
	}

	fmt.Fprintln(w)
	mutedText.Fprintln(w, "  ┌──────────────────────────────────────────────────────────────┐")
	for _, e := range Endpoints {
		mutedText.Fprint(w, "  │ ")
		printMethodBadge(w, e.Method)
		fmt.Fprintf(w, " %-22s ", e.Path)
		mutedText.Fprintf(w, "%-32s", e.Description)
		mutedText.Fprintln(w, "│")
	}
	mutedText.Fprintln(w, "  └──────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(w)
}

// PrintShutdown prints the shutdown notice.
func PrintShutdown() {
	fmt.Fprintln(color.Output)
	warningBadge.Fprint(color.Output, "[SHUTDOWN]")
	warningText.Fprintln(color.Output, " Graceful shutdown initiated...")
}

// PrintGoodbye prints the final stop message.
func PrintGoodbye() {
	successBadge.Fprint(color.Output, " OK ")
	fmt.Fprint(color.Output, " ")
	successText.Fprintln(color.Output, "Server stopped.")
}
