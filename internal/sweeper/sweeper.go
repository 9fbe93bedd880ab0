package sweeper

import (
	"context"
	"fmt"
	"time"
)

// Sweeper is a periodic maintenance loop
type Sweeper interface {
	// Start blocks until ctx is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop waits for the running cycle to finish or for ctx to expire
	Stop(ctx context.Context) error

	Name() string
}

// Run starts s and blocks until ctx is done, then stops it within stopTimeout.
// An error from Start is returned as soon as it happens.
func Run(ctx context.Context, s Sweeper, stopTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := s.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop %s: %w", s.Name(), err)
	}

	select {
	case err := <-errCh:
		return err
	case <-stopCtx.Done():
		return fmt.Errorf("%s did not exit: %w", s.Name(), stopCtx.Err())
	}
}
