// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/convert-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := types.ConversionJob{
		Roots:   []string{"/data/in"},
		Source:  types.FormatPNG,
		Target:  types.FormatPDF,
		Workers: 4,
	}
	result := types.RunResult{
		Total: 3,
		Failures: []types.Failure{
			{Path: "/data/in/bad.png", Reason: "io: decode error"},
		},
	}

	started := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	id, err := s.Record(ctx, started, job, result)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, types.FormatPNG, r.Source)
	assert.Equal(t, types.FormatPDF, r.Target)
	assert.Equal(t, []string{"/data/in"}, r.Roots)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.Failed)
	assert.True(t, r.StartedAt.Equal(started))
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := types.ConversionJob{Roots: []string{"/in"}, Source: types.FormatPDF, Target: types.FormatPNG}
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, time.Now(), job, types.RunResult{Total: i})
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Greater(t, runs[1].ID, runs[2].ID)
}

func TestFailures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := types.ConversionJob{Roots: []string{"/in"}, Source: types.FormatExcel, Target: types.FormatPDF}
	result := types.RunResult{
		Total: 2,
		Failures: []types.Failure{
			{Path: "/in/a.xls", Reason: "external-tool: exit status 1"},
			{Path: "/in/b.xlsx", Reason: "external-tool: timed out"},
		},
	}

	id, err := s.Record(ctx, time.Now(), job, result)
	require.NoError(t, err)

	failures, err := s.Failures(ctx, id)
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "/in/a.xls", failures[0].Path)
	assert.Equal(t, "/in/b.xlsx", failures[1].Path)

	// Unknown run IDs yield an empty list, not an error.
	none, err := s.Failures(ctx, id+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil)
	assert.Contains(t, buf.String(), "no recorded runs")

	buf.Reset()
	Render(&buf, []Run{{
		ID:        7,
		StartedAt: time.Now(),
		Source:    types.FormatPNG,
		Target:    types.FormatPDF,
		Total:     12,
		Failed:    2,
	}})
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "png")
	assert.Contains(t, out, "pdf")
}
