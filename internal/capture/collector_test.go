package capture

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/logging"
)

type fakeDriver struct {
	navErr      error
	present     map[string]bool
	evals       map[string]string
	evalErr     map[string]error
	html        string
	shots       map[string][]byte
	shotErr     map[string]error
	viewports   []Viewport
	navigatedTo string
}

func (f *fakeDriver) Navigate(_ context.Context, url string, _ time.Duration) error {
	f.navigatedTo = url
	return f.navErr
}

func (f *fakeDriver) WaitForSelectors(_ context.Context, selectors []string, _ time.Duration) []string {
	var found []string
	for _, s := range selectors {
		if f.present[s] {
			found = append(found, s)
		}
	}
	return found
}

func (f *fakeDriver) Screenshot(_ context.Context, vp Viewport) ([]byte, error) {
	f.viewports = append(f.viewports, vp)
	if err := f.shotErr[vp.Name]; err != nil {
		return nil, err
	}
	return f.shots[vp.Name], nil
}

func (f *fakeDriver) Evaluate(_ context.Context, script string) (json.RawMessage, error) {
	if err := f.evalErr[script]; err != nil {
		return nil, err
	}
	if v, ok := f.evals[script]; ok {
		return json.RawMessage(v), nil
	}
	return json.RawMessage("null"), nil
}

func (f *fakeDriver) HTML(context.Context) (string, error) { return f.html, nil }
func (f *fakeDriver) Close() error                       { return nil }

func newFake() *fakeDriver {
	return &fakeDriver{
		present: map[string]bool{"main": true},
		evals: map[string]string{
			titleScript:      `"Acme Store"`,
			spaScript:        `true`,
			sectionsScript:   `[{"tag":"header","selector":"header","box":{"x":0,"y":0,"width":1440,"height":80}},{"tag":"section","id":"hero","selector":"#hero","text":"Shop now","box":{"x":0,"y":80,"width":1440,"height":600}}]`,
			stylesheetScript: `":root{--brand:#ff0000}"`,
		},
		html:  "<html><body><main></main></body></html>",
		shots: map[string][]byte{"desktop": []byte("D"), "mobile": []byte("M")},
	}
}

func TestCaptureCollectsEverything(t *testing.T) {
	d := newFake()
	c := &Collector{Driver: d, Opts: DefaultOptions(), Log: logging.Nop()}

	snap, err := c.Capture(context.Background(), "https://shop.example")
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example", d.navigatedTo)
	assert.Equal(t, "Acme Store", snap.Title)
	assert.True(t, snap.IsSPA)
	require.Len(t, snap.Sections, 2)
	assert.Equal(t, "#hero", snap.Sections[1].Selector)
	assert.Equal(t, 600.0, snap.Sections[1].Box.Height)
	assert.Equal(t, ":root{--brand:#ff0000}", snap.Stylesheet)
	assert.Equal(t, []byte("D"), snap.Desktop)
	assert.Equal(t, []byte("M"), snap.Mobile)

	require.Len(t, d.viewports, 2)
	assert.False(t, d.viewports[0].Mobile)
	assert.True(t, d.viewports[1].Mobile)
}

func TestCaptureNavigationFailure(t *testing.T) {
	d := newFake()
	d.navErr = errors.New("timeout")
	c := &Collector{Driver: d, Opts: DefaultOptions(), Log: logging.Nop()}

	_, err := c.Capture(context.Background(), "https://shop.example")
	assert.Error(t, err)
}

func TestCaptureBestEffortParts(t *testing.T) {
	d := newFake()
	d.evalErr = map[string]error{stylesheetScript: errors.New("denied")}
	d.shotErr = map[string]error{"mobile": errors.New("crashed")}
	c := &Collector{Driver: d, Opts: DefaultOptions(), Log: logging.Nop()}

	snap, err := c.Capture(context.Background(), "https://shop.example")
	require.NoError(t, err)
	assert.Empty(t, snap.Stylesheet)
	assert.Nil(t, snap.Mobile)
}

func TestCaptureDesktopScreenshotRequired(t *testing.T) {
	d := newFake()
	d.shotErr = map[string]error{"desktop": errors.New("crashed")}
	c := &Collector{Driver: d, Opts: DefaultOptions(), Log: logging.Nop()}

	_, err := c.Capture(context.Background(), "https://shop.example")
	assert.Error(t, err)
}
