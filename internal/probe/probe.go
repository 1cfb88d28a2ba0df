// Package probe implements one-shot liveness checks against a running
// server, mirroring what an orchestrator's probe would do.
package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Config describes a single liveness check.
type Config struct {
	Type    string        // "http" | "tcp"
	Addr    string        // host:port of the target
	Path    string        // http only, e.g. "/health"
	Body    string        // http only: exact body required when non-empty
	Timeout time.Duration // max time for the whole check
}

// Check runs one liveness check and returns nil if the target is healthy.
func Check(ctx context.Context, cfg Config) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	switch cfg.Type {
	case "http":
		return checkHTTP(ctx, cfg)
	case "tcp":
		return checkTCP(ctx, cfg)
	default:
		return fmt.Errorf("unknown probe type: %s", cfg.Type)
	}
}

func checkHTTP(ctx context.Context, cfg Config) error {
	url := fmt.Sprintf("http://%s%s", cfg.Addr, cfg.Path)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}

	if cfg.Body != "" {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		if string(body) != cfg.Body {
			return fmt.Errorf("unexpected body: %q", string(body))
		}
	}

	return nil
}

func checkTCP(ctx context.Context, cfg Config) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("tcp connect failed: %w", err)
	}
	conn.Close()
	return nil
}
