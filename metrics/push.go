package metrics

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"
)

// JobName is the Pushgateway job the calculator pushes under.
const JobName = "agent_staffing"

// Push sends the registry to a Pushgateway, grouped by run id, retrying with
// exponential backoff up to maxRetries times.
func Push(ctx context.Context, url, runID string, maxRetries uint64) error {
	pusher := push.New(url, JobName).Gatherer(Registry)
	if runID != "" {
		pusher = pusher.Grouping("run_id", runID)
	}

	attempt := 0
	op := func() error {
		attempt++
		err := pusher.PushContext(ctx)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("url", url).Msg("pushgateway push failed")
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return fmt.Errorf("push metrics to %s after %d attempts: %w", url, attempt, err)
	}
	return nil
}
