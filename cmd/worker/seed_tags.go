package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mentormap/mentormap-backend/internal/db"
	"github.com/mentormap/mentormap-backend/internal/qa/repository"
)

// tagFile is the seed format:
//
//	tags:
//	  - transfer
//	  - housing
type tagFile struct {
	Tags []string `yaml:"tags"`
}

var seedTagsCmd = &cobra.Command{
	Use:   "seed-tags <file.yaml>",
	Short: "Insert missing tags from a YAML catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		titles, err := parseTagFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		ctx := cmd.Context()
		pool, err := db.Open(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		return seedTags(ctx, repository.NewTagRepository(pool.Pool), titles)
	},
}

type tagSeeder interface {
	Seed(ctx context.Context, titles []string) (int, error)
}

func seedTags(ctx context.Context, repo tagSeeder, titles []string) error {
	inserted, err := repo.Seed(ctx, titles)
	if err != nil {
		return err
	}
	logger.Info("tags seeded", zap.Int("listed", len(titles)), zap.Int("inserted", inserted))
	return nil
}

// parseTagFile trims titles and drops blanks and duplicates, keeping file order.
func parseTagFile(r io.Reader) ([]string, error) {
	var tf tagFile
	if err := yaml.NewDecoder(r).Decode(&tf); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty tag file")
		}
		return nil, fmt.Errorf("failed to parse tag file: %w", err)
	}

	seen := make(map[string]struct{}, len(tf.Tags))
	out := make([]string, 0, len(tf.Tags))
	for _, t := range tf.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no tags listed")
	}
	return out, nil
}
