package deploy

import (
	"context"
	"fmt"

	"github.com/v0xg/themeforge/internal/export"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

// Remote is the subset of Client that Push needs.
type Remote interface {
	CreateDraft(ctx context.Context, name string) (string, error)
	UploadEntry(ctx context.Context, id, key, content string) error
	Publish(ctx context.Context, id string) error
}

// Options control Push.
type Options struct {
	Name    string
	Publish bool
	Log     *logging.Logger
}

// Push creates a draft, uploads every file in archive order and optionally
// publishes it. The first failed upload stops the push; the draft is left
// in place for inspection.
func Push(ctx context.Context, r Remote, s *theme.Structure, opts Options) (string, error) {
	if err := export.CheckPaths(s); err != nil {
		return "", err
	}
	id, err := r.CreateDraft(ctx, opts.Name)
	if err != nil {
		return "", err
	}
	opts.Log.Info("draft created", "id", id, "name", opts.Name)

	n := 0
	for _, b := range theme.Buckets {
		for _, name := range s.Names(b) {
			content, ok := s.Text(b, name)
			if !ok {
				return id, fmt.Errorf("encode %s/%s", b, name)
			}
			if err := r.UploadEntry(ctx, id, export.EntryPath(b, name), content); err != nil {
				return id, err
			}
			n++
		}
	}
	opts.Log.Info("files uploaded", "id", id, "count", n)

	if opts.Publish {
		if err := r.Publish(ctx, id); err != nil {
			return id, err
		}
		opts.Log.Info("theme published", "id", id)
	}
	return id, nil
}
