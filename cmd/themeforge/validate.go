package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/v0xg/themeforge/internal/assemble"
	"github.com/v0xg/themeforge/internal/compliance"
)

func validateCmd() *cobra.Command {
	var before, after string
	cmd := &cobra.Command{
		Use:   "validate <archive>",
		Short: "Run structural and compliance checks on a theme archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup()
			if err != nil {
				return err
			}
			s, err := loadArchive(args[0])
			if err != nil {
				return err
			}

			var shots *compliance.Screenshots
			if before != "" || after != "" {
				if before == "" || after == "" {
					return fmt.Errorf("--before and --after must be given together")
				}
				shots = &compliance.Screenshots{}
				if shots.Before, err = os.ReadFile(before); err != nil {
					return err
				}
				if shots.After, err = os.ReadFile(after); err != nil {
					return err
				}
			}

			errs, warnings := assemble.Validate(s)
			report := (&compliance.Validator{Log: log}).Validate(s, shots)

			for _, e := range append(errs, report.Errors...) {
				fmt.Printf("  ✗ %s\n", e)
			}
			for _, w := range append(warnings, report.Warnings...) {
				fmt.Printf("  ! %s\n", w)
			}
			for _, name := range []string{
				compliance.CheckCopyright,
				compliance.CheckPlaceholder,
				compliance.CheckOriginality,
				compliance.CheckVisualParity,
				compliance.CheckSchema,
				compliance.CheckTagBalance,
			} {
				mark := "✓"
				if !report.Checks[name] {
					mark = "✗"
				}
				fmt.Printf("  %s %s\n", mark, name)
			}

			if len(errs) > 0 || !report.Passed {
				return fmt.Errorf("%s failed validation", args[0])
			}
			fmt.Printf("\n✓ %s is valid (%d files)\n", args[0], s.Count())
			return nil
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "PNG screenshot of the source page")
	cmd.Flags().StringVar(&after, "after", "", "PNG screenshot of the rendered theme")
	return cmd
}
