package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/v0xg/themeforge/internal/capture"
	"github.com/v0xg/themeforge/internal/export"
	"github.com/v0xg/themeforge/internal/imaging"
	"github.com/v0xg/themeforge/internal/pipeline"
)

type generateFlags struct {
	output   string
	profile  string
	headful  bool
	assets   bool
	strict   bool
	debugDir string
}

func generateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate <url>",
		Short: "Capture a page and generate a theme archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "theme.zip", "Output archive path")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Chrome/Chromium profile directory for authenticated sessions")
	cmd.Flags().BoolVar(&f.headful, "headful", false, "Show the browser window")
	cmd.Flags().BoolVar(&f.assets, "assets", false, "Generate replacement imagery (overrides config)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Refuse to write an archive that failed validation or compliance")
	cmd.Flags().StringVar(&f.debugDir, "debug-dir", "", "Write tokens, blueprint, report and an annotated screenshot here")
	return cmd
}

func runGenerate(cmd *cobra.Command, url string, f generateFlags) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("assets") {
		cfg.Generation.GenerateAssets = f.assets
	}
	profile := f.profile
	if profile == "" {
		profile = cfg.Capture.ProfileDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Print("→ Launching browser... ")
	driver, err := capture.Launch(capture.LaunchOptions{ProfileDir: profile, Headful: f.headful})
	if err != nil {
		fmt.Println("failed")
		return err
	}
	defer driver.Close()
	fmt.Println("done")

	p, err := buildPipeline(ctx, cfg, driver, log)
	if err != nil {
		return err
	}

	fmt.Printf("→ Generating theme from %s... ", url)
	res, err := p.Run(ctx, url)
	if err != nil {
		fmt.Println("failed")
		return err
	}
	fmt.Println("done")

	printSummary(res)

	if f.debugDir != "" {
		if err := writeDebug(f.debugDir, res); err != nil {
			return fmt.Errorf("debug output: %w", err)
		}
		logVerbose("  Debug output written to %s", f.debugDir)
	}

	if f.strict && (!res.Assembly.Valid || !res.Report.Passed) {
		return fmt.Errorf("theme failed checks, archive not written")
	}

	fmt.Print("→ Writing archive... ")
	data, err := export.Bytes(res.Structure)
	if err != nil {
		fmt.Println("failed")
		return err
	}
	if err := os.WriteFile(f.output, data, 0644); err != nil {
		fmt.Println("failed")
		return fmt.Errorf("write archive: %w", err)
	}
	install := filepath.Join(filepath.Dir(f.output), export.InstructionsFile)
	if err := os.WriteFile(install, []byte(export.Instructions()), 0644); err != nil {
		fmt.Println("failed")
		return fmt.Errorf("write instructions: %w", err)
	}
	fmt.Println("done")

	fmt.Printf("\n✓ Saved to %s (%s)\n", f.output, humanize.Bytes(uint64(len(data))))
	return nil
}

func printSummary(res *pipeline.Result) {
	fmt.Printf("  Sections: %d planned (%s)\n", len(res.Plan.SectionNames()), strings.Join(res.Plan.SectionNames(), ", "))
	if res.Manifest.Len() > 0 {
		fmt.Printf("  Assets: %d generated\n", res.Manifest.Len())
	}
	fmt.Printf("  Files: %d\n", res.Structure.Count())
	for _, e := range res.Assembly.Errors {
		fmt.Printf("  ✗ %s\n", e)
	}
	for _, w := range res.Assembly.Warnings {
		logVerbose("  ! %s", w)
	}
	for _, e := range res.Report.Errors {
		fmt.Printf("  ✗ %s\n", e)
	}
	status := "passed"
	if !res.Report.Passed {
		status = "failed"
	}
	fmt.Printf("  Compliance: %s\n", status)
	for stage, d := range res.Durations {
		logVerbose("  %s took %s", stage, d.Round(time.Millisecond))
	}
}

// writeDebug dumps intermediate results next to a screenshot with the
// detected sections outlined.
func writeDebug(dir string, res *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := map[string]any{
		"tokens.json":     res.Tokens,
		"blueprint.json":  res.Blueprint,
		"plan.json":       res.Plan,
		"assembly.json":   res.Assembly,
		"compliance.json": res.Report,
	}
	if res.Manifest != nil {
		files["assets.json"] = res.Manifest
	}
	for name, v := range files {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	if res.Snapshot == nil || len(res.Snapshot.Desktop) == 0 {
		return nil
	}
	rects := make([]image.Rectangle, 0, len(res.Snapshot.Sections))
	for _, s := range res.Snapshot.Sections {
		b := s.Box
		rects = append(rects, image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height)))
	}
	annotated, err := imaging.Annotate(res.Snapshot.Desktop, rects)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "sections.png"), annotated, 0644)
}
