package capture

import (
	"context"
	"encoding/json"
	"time"
)

// Driver is the headless browser boundary. RodDriver is the production
// implementation; tests use an in-memory fake.
type Driver interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// WaitForSelectors waits for each selector in turn with its own timeout
	// and returns the selectors that appeared. A missing selector is not an error.
	WaitForSelectors(ctx context.Context, selectors []string, perSelector time.Duration) []string
	Screenshot(ctx context.Context, vp Viewport) ([]byte, error)
	Evaluate(ctx context.Context, script string) (json.RawMessage, error)
	HTML(ctx context.Context) (string, error)
	Close() error
}
