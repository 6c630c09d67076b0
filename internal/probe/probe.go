package probe

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/BankToken/circuit-breakers/pkg/circuitbreaker"
)

// Dependency is one guarded upstream.
type Dependency struct {
	Name string
	URL  *url.URL
}

// Watch periodically attempts an HTTP GET against the dependency. Before
// each attempt it consults the breaker: an open breaker suppresses the
// attempt entirely, a half-open breaker lets exactly this one probe
// through. The outcome is reported back with Success or Fail; any status
// below 500 counts as a success.
func Watch(
	ctx context.Context,
	dep Dependency,
	cb *circuitbreaker.Breaker,
	interval time.Duration,
	logger *slog.Logger,
) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Probe stopped",
				slog.String("dependency", dep.Name))
			return

		case <-ticker.C:
			if cb.IsOpen() {
				logger.Debug("Breaker open, suppressing attempt",
					slog.String("dependency", dep.Name),
					slog.Time("retry_at", cb.RetryAt()))
				continue
			}

			probing := cb.IsHalfOpen()
			if probing {
				logger.Info("Cooldown elapsed, probing dependency",
					slog.String("dependency", dep.Name))
			}

			req, err := http.NewRequestWithContext(
				ctx, http.MethodGet, dep.URL.String(), nil)
			if err != nil {
				continue
			}

			res, err := client.Do(req)
			if err != nil {
				cb.Fail()
				logger.Warn("Dependency call failed",
					slog.String("dependency", dep.Name),
					slog.String("error", err.Error()))
				continue
			}
			res.Body.Close()

			if res.StatusCode >= http.StatusInternalServerError {
				cb.Fail()
				logger.Warn("Dependency call failed",
					slog.String("dependency", dep.Name),
					slog.Int("status", res.StatusCode))
				continue
			}

			cb.Success()
			if probing {
				logger.Info("Dependency recovered",
					slog.String("dependency", dep.Name))
			}
		}
	}
}
