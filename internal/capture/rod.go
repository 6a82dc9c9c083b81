package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// LaunchOptions configures the browser process.
type LaunchOptions struct {
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
	Headful    bool
}

// RodDriver drives a single page of a Rod-controlled Chromium.
type RodDriver struct {
	browser *rod.Browser
	page    *rod.Page
}

// Launch starts a headless browser.
func Launch(opts LaunchOptions) (*RodDriver, error) {
	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(!opts.Headful)

	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	return &RodDriver{browser: browser}, nil
}

// Navigate opens url and waits for load and network idle.
func (d *RodDriver) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page, err := d.browser.Context(ctx).Timeout(timeout).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	d.page = page.CancelTimeout().Context(ctx)

	if err := d.page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}

	// Don't hang on persistent connections (WebSockets, polling, etc.)
	d.page.Timeout(5*time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	return nil
}

func (d *RodDriver) WaitForSelectors(ctx context.Context, selectors []string, perSelector time.Duration) []string {
	if d.page == nil {
		return nil
	}
	var found []string
	for _, sel := range selectors {
		if _, err := d.page.Context(ctx).Timeout(perSelector).Element(sel); err == nil {
			found = append(found, sel)
		}
	}
	return found
}

// Screenshot resizes the viewport to vp and captures the full page as PNG.
func (d *RodDriver) Screenshot(ctx context.Context, vp Viewport) ([]byte, error) {
	if d.page == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	page := d.page.Context(ctx)
	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
		Mobile:            vp.Mobile,
	})
	if err != nil {
		return nil, fmt.Errorf("set %s viewport: %w", vp.Name, err)
	}

	// Give responsive layouts a moment to reflow.
	page.Timeout(2*time.Second).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)()

	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%s screenshot: %w", vp.Name, err)
	}
	return data, nil
}

func (d *RodDriver) Evaluate(ctx context.Context, script string) (json.RawMessage, error) {
	if d.page == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	obj, err := d.page.Context(ctx).Eval(script)
	if err != nil {
		return nil, err
	}
	data, err := obj.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (d *RodDriver) HTML(ctx context.Context) (string, error) {
	if d.page == nil {
		return "", fmt.Errorf("no page loaded")
	}
	return d.page.Context(ctx).HTML()
}

// Close cleans up browser resources
func (d *RodDriver) Close() error {
	if d.page != nil {
		d.page.Close()
	}
	if d.browser != nil {
		return d.browser.Close()
	}
	return nil
}
