package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/v0xg/themeforge/internal/deploy"
)

func deployCmd() *cobra.Command {
	var (
		name    string
		publish bool
	)
	cmd := &cobra.Command{
		Use:   "deploy <archive>",
		Short: "Upload a theme archive to a store as a draft theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, err := deploy.NewClient(cfg.Deploy.BaseURL, cfg.Deploy.Token, cfg.Deploy.Timeout)
			if err != nil {
				return fmt.Errorf("deploy: %w (set THEMEFORGE_DEPLOY_BASE_URL and THEMEFORGE_DEPLOY_TOKEN)", err)
			}
			s, err := loadArchive(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("→ Uploading %d files... ", s.Count())
			id, err := deploy.Push(ctx, client, s, deploy.Options{Name: name, Publish: publish, Log: log})
			if err != nil {
				fmt.Println("failed")
				return err
			}
			fmt.Println("done")

			if publish {
				fmt.Printf("\n✓ Published theme %s\n", id)
			} else {
				fmt.Printf("\n✓ Created draft theme %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Theme name (default: archive file name)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the theme after upload")
	return cmd
}
