// Command healthcheck checks a running salahtracker server and exits non-zero
// when it is unreachable or reports anything other than "ok". It is meant for
// container HEALTHCHECK directives, so it avoids loading the full config.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

const (
	defaultAddr  = "127.0.0.1:8080"
	checkTimeout = 2 * time.Second
)

const (
	exitHealthy     = 0
	exitUnreachable = 1
	exitUnhealthy   = 2
)

func main() {
	raw := os.Getenv("SALAHTRACKER_LISTEN_ADDR")
	if len(os.Args) > 1 {
		raw = os.Args[1]
	}
	os.Exit(check(normalizeAddr(raw), os.Stderr))
}

type healthPayload struct {
	Status string `json:"status"`
	Today  string `json:"today"`
}

func check(addr string, errOut io.Writer) int {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s/api/v1/health", addr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "healthcheck: build request: %v\n", err)
		return exitUnreachable
	}

	client := &http.Client{Timeout: checkTimeout}
	resp, err := client.Do(req)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "healthcheck: %v\n", err)
		return exitUnreachable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = fmt.Fprintf(errOut, "healthcheck: %s returned %d\n", url, resp.StatusCode)
		return exitUnhealthy
	}

	var payload healthPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err != nil {
		_, _ = fmt.Fprintf(errOut, "healthcheck: decode body: %v\n", err)
		return exitUnhealthy
	}
	if payload.Status != "ok" {
		_, _ = fmt.Fprintf(errOut, "healthcheck: status %q\n", payload.Status)
		return exitUnhealthy
	}

	return exitHealthy
}

// normalizeAddr turns a listen address into one the check can dial. A
// bind-all or empty host becomes loopback since the check runs alongside the
// server.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
