package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-intake/pkg/export"
	"contact-intake/pkg/storage"
)

func noEnv(string) string { return "" }

func execute(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(noEnv, func() time.Time { return now })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportFromLocalDir(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewLocal(dir)
	_, err := store.Put(context.Background(), storage.Object{
		Key:  "contact-submissions/2024/05/01/a.json",
		Body: []byte(`{"submissionId":"a","submittedAt":"2024-05-01T10:00:00.000Z"}`),
	})
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "leads.xlsx")
	stdout, err := execute(t, time.Now(), "--dir", dir, "--year", "2024", "--month", "5", "--out", outPath)
	require.NoError(t, err)

	var summary export.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, outPath, summary.File)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 5, summary.Month)
	assert.FileExists(t, outPath)
}

func TestExportDefaultsToCurrentUTCMonth(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "leads.xlsx")
	now := time.Date(2025, 2, 28, 23, 0, 0, 0, time.FixedZone("x", -5*3600))

	stdout, err := execute(t, now, "--dir", t.TempDir(), "--out", outPath)
	require.NoError(t, err)

	var summary export.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 3, summary.Month)
	assert.Zero(t, summary.Count)
}

func TestExportArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"year without month", []string{"--dir", ".", "--year", "2024"}},
		{"month without year", []string{"--dir", ".", "--month", "4"}},
		{"month out of range", []string{"--dir", ".", "--year", "2024", "--month", "13"}},
		{"bad layout", []string{"--dir", ".", "--layout", "weekly"}},
		{"no bucket", []string{"--year", "2024", "--month", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, time.Now(), tt.args...)
			assert.Error(t, err)
		})
	}
}
