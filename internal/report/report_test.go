// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/convert-engine/pkg/types"
)

func TestWriteRoundTrip(t *testing.T) {
	started := time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC)
	finished := started.Add(42 * time.Second)
	job := types.ConversionJob{
		Roots:   []string{"/data/in"},
		Source:  types.FormatExcel,
		Target:  types.FormatPDF,
		Workers: 4,
	}
	result := types.RunResult{
		Total:    5,
		Failures: []types.Failure{{Path: "/data/in/x.xls", Reason: "external-tool: exit status 1"}},
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, Write(path, New(started, finished, job, result)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 4, got.Succeeded)
	assert.Equal(t, types.FormatExcel, got.Job.Source)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "/data/in/x.xls", got.Failures[0].Path)
	assert.True(t, got.StartedAt.Equal(started))
}
