// Package pipeline chains the generation stages: capture, tokens,
// blueprint, assets, code generation, settings, assembly and compliance.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/v0xg/themeforge/internal/assemble"
	"github.com/v0xg/themeforge/internal/assets"
	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/capture"
	"github.com/v0xg/themeforge/internal/codegen"
	"github.com/v0xg/themeforge/internal/compliance"
	"github.com/v0xg/themeforge/internal/imaging"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/settings"
	"github.com/v0xg/themeforge/internal/theme"
	"github.com/v0xg/themeforge/internal/tokens"
)

// Stage names carried by StageError.
const (
	StageCapture   = "capture"
	StageTokens    = "tokens"
	StageBlueprint = "blueprint"
	StageCodegen   = "codegen"
)

// StageError aborts a run and names the stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage of a StageError in err's chain, or "".
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Capturer loads a page.
type Capturer interface {
	Capture(ctx context.Context, url string) (*capture.Snapshot, error)
}

// Pipeline holds the stage services, built once at startup.
type Pipeline struct {
	Capture    Capturer
	Tokens     *tokens.Extractor
	Blueprint  *blueprint.Generator
	Assets     *assets.Generator
	Codegen    *codegen.Generator
	Assembler  *assemble.Assembler
	Compliance *compliance.Validator

	// VisionMaxWidth bounds the screenshot width sent to vision models.
	VisionMaxWidth uint
	// MaxSupporting caps supporting sections; zero means
	// codegen.DefaultMaxSupporting.
	MaxSupporting int
	Log            *logging.Logger
}

// Result is everything a run produced. Structure is Assembly.Structure.
type Result struct {
	SessionID string
	Snapshot  *capture.Snapshot
	Tokens    *tokens.DesignTokens
	Blueprint []blueprint.Section
	Plan      codegen.Plan
	Manifest  *assets.Manifest
	Structure *theme.Structure
	Assembly  assemble.Result
	Report    compliance.Report
	Durations map[string]time.Duration
}

// Run executes every stage in order. Capture, tokens, blueprint and code
// generation failures abort with a *StageError. Assembly and compliance
// never fail; check Result.Assembly.Valid and Result.Report.Passed.
func (p *Pipeline) Run(ctx context.Context, url string) (*Result, error) {
	res := &Result{SessionID: uuid.NewString(), Durations: map[string]time.Duration{}}
	log := p.Log.With("session", res.SessionID)

	timed := func(stage string, fn func() error) error {
		start := time.Now()
		err := fn()
		res.Durations[stage] = time.Since(start)
		if err != nil {
			log.Error(err, "stage failed", "stage", stage)
			return &StageError{Stage: stage, Err: err}
		}
		log.Info("stage complete", "stage", stage, "duration", res.Durations[stage].String())
		return nil
	}

	err := timed(StageCapture, func() (err error) {
		res.Snapshot, err = p.Capture.Capture(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = timed(StageTokens, func() error {
		shot, err := imaging.Downscale(res.Snapshot.Desktop, p.VisionMaxWidth)
		if err != nil {
			return fmt.Errorf("prepare screenshot: %w", err)
		}
		res.Tokens, err = p.Tokens.Extract(ctx, tokens.Image{Base64: imaging.Base64(shot), MIME: "image/png"}, res.Snapshot.Stylesheet)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = timed(StageBlueprint, func() (err error) {
		res.Blueprint, err = p.Blueprint.Generate(ctx, res.Snapshot.HTML, res.Snapshot.Sections)
		return err
	})
	if err != nil {
		return nil, err
	}

	limit := p.MaxSupporting
	if limit <= 0 {
		limit = codegen.DefaultMaxSupporting
	}
	res.Plan = codegen.NewPlan(res.Blueprint, limit)

	res.Manifest = assets.NewManifest(res.SessionID)
	if p.Assets != nil {
		planned := append([]blueprint.Section{res.Plan.Primary}, sectionsOf(res.Plan.Supporting)...)
		res.Manifest = p.Assets.Generate(ctx, res.SessionID, planned, res.Tokens)
		log.Info("assets generated", "count", res.Manifest.Len())
	}

	var generated *theme.Structure
	err = timed(StageCodegen, func() (err error) {
		generated, err = p.Codegen.Generate(ctx, codegen.Input{Tokens: res.Tokens, Plan: res.Plan, Manifest: res.Manifest})
		return err
	})
	if err != nil {
		return nil, err
	}

	custom := settings.Customize(res.Tokens)
	res.Assembly = p.Assembler.Assemble(assemble.Input{
		Generated: generated,
		Settings:  custom.Structure(),
		Manifest:  res.Manifest,
	})
	res.Structure = res.Assembly.Structure
	res.Report = p.Compliance.Validate(res.Structure, nil)

	log.Info("pipeline complete",
		"valid", res.Assembly.Valid,
		"compliant", res.Report.Passed,
		"files", res.Structure.Count(),
	)
	return res, nil
}

func sectionsOf(planned []codegen.Planned) []blueprint.Section {
	out := make([]blueprint.Section, len(planned))
	for i, p := range planned {
		out[i] = p.Section
	}
	return out
}
