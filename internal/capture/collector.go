// Package capture loads a page in a headless browser and collects the
// screenshots, DOM and stylesheet text the generation stages work from.
package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/v0xg/themeforge/internal/logging"
)

// Options configures the collector behavior
type Options struct {
	Desktop            Viewport
	Mobile             Viewport
	Timeout            time.Duration
	SelectorTimeout    time.Duration
	HydrationSelectors []string
}

// DefaultOptions returns the presets used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Desktop:            Viewport{Name: "desktop", Width: 1440, Height: 900},
		Mobile:             Viewport{Name: "mobile", Width: 390, Height: 844, Mobile: true},
		Timeout:            45 * time.Second,
		SelectorTimeout:    3 * time.Second,
		HydrationSelectors: []string{"main", "header", "footer"},
	}
}

// Collector drives a Driver through one capture.
type Collector struct {
	Driver Driver
	Opts   Options
	Log    *logging.Logger
}

// Capture navigates to url, waits for hydration and extracts everything the
// pipeline needs. Failing to load the page or take the desktop screenshot is
// fatal; the mobile screenshot and stylesheet are best effort.
func (c *Collector) Capture(ctx context.Context, url string) (*Snapshot, error) {
	opts := c.Opts
	if opts.Timeout == 0 {
		opts = DefaultOptions()
	}

	if err := c.Driver.Navigate(ctx, url, opts.Timeout); err != nil {
		return nil, err
	}

	found := c.Driver.WaitForSelectors(ctx, opts.HydrationSelectors, opts.SelectorTimeout)
	c.Log.Debug("hydration selectors", "found", found, "wanted", opts.HydrationSelectors)

	snap := &Snapshot{URL: url}

	if raw, err := c.Driver.Evaluate(ctx, titleScript); err == nil {
		_ = json.Unmarshal(raw, &snap.Title)
	}
	if raw, err := c.Driver.Evaluate(ctx, spaScript); err == nil {
		_ = json.Unmarshal(raw, &snap.IsSPA)
	}

	raw, err := c.Driver.Evaluate(ctx, sectionsScript)
	if err != nil {
		return nil, fmt.Errorf("extract sections: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Sections); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}

	html, err := c.Driver.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	snap.HTML = html

	if raw, err := c.Driver.Evaluate(ctx, stylesheetScript); err == nil {
		_ = json.Unmarshal(raw, &snap.Stylesheet)
	} else {
		c.Log.Warn("stylesheet extraction failed", "error", err.Error())
	}

	desktop, err := c.Driver.Screenshot(ctx, opts.Desktop)
	if err != nil {
		return nil, err
	}
	snap.Desktop = desktop

	if mobile, err := c.Driver.Screenshot(ctx, opts.Mobile); err == nil {
		snap.Mobile = mobile
	} else {
		c.Log.Warn("mobile screenshot failed", "error", err.Error())
	}

	return snap, nil
}
