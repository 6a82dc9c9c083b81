package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/v0xg/themeforge/internal/preview"
)

func previewCmd() *cobra.Command {
	var (
		viewport string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "preview <archive> [pageType]",
		Short: "Render a page of a theme archive to HTML with mock data",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageType := "product"
			if len(args) == 2 {
				pageType = args[1]
			}
			vp := preview.Viewport(viewport)
			if _, ok := preview.Widths[vp]; !ok {
				return fmt.Errorf("unknown viewport %q (desktop, tablet, mobile)", viewport)
			}

			s, err := loadArchive(args[0])
			if err != nil {
				return err
			}
			html, err := preview.New(s).Render(pageType, vp)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			if err := os.WriteFile(output, []byte(html), 0644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Printf("✓ Saved to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&viewport, "viewport", string(preview.Desktop), "Viewport: desktop, tablet or mobile")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML here instead of stdout")
	return cmd
}
