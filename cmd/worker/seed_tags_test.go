package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseTagFile(t *testing.T) {
	in := `
tags:
  - transfer
  - " housing "
  - transfer
  - ""
  - financial-aid
`
	got, err := parseTagFile(strings.NewReader(in))
	require.NoError(t, err)

	want := []string{"transfer", "housing", "financial-aid"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTagFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTagFile_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":     "",
		"no tags":   "tags: []\n",
		"malformed": "tags: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseTagFile(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

type fakeSeeder struct {
	got []string
	err error
}

func (f *fakeSeeder) Seed(_ context.Context, titles []string) (int, error) {
	f.got = titles
	return len(titles), f.err
}

func TestSeedTags(t *testing.T) {
	logger = zap.NewNop()

	repo := &fakeSeeder{}
	require.NoError(t, seedTags(context.Background(), repo, []string{"clubs"}))
	assert.Equal(t, []string{"clubs"}, repo.got)

	repo.err = errors.New("db down")
	assert.Error(t, seedTags(context.Background(), repo, []string{"clubs"}))
}
