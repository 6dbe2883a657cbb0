// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/srctools/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{Dir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store) {
	t.Helper()
	runs := []types.RunRecord{
		{Tool: types.ToolFdec, Target: "LastEmperor.c", Output: "fdec.h", Status: types.RunSucceeded, Items: 42, Elapsed: 3 * time.Millisecond, StartedAt: base},
		{Tool: types.ToolWsolve, Target: ".", Status: types.RunSucceeded, Items: 7, Elapsed: 20 * time.Millisecond, StartedAt: base.Add(time.Minute)},
		{Tool: types.ToolFdec, Target: "missing.c", Status: types.RunFailed, Error: "reading input missing.c: no such file", StartedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		_, err := s.Record(context.Background(), r)
		require.NoError(t, err)
	}
}

// --- tests ---

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "history")
	store, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopensExisting(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	_, err = first.Record(context.Background(), types.RunRecord{Tool: types.ToolFdec, Target: "a.c", Status: types.RunSucceeded})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer second.Close()

	runs, err := second.List(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a.c", runs[0].Target)
}

func TestRecord_AssignsIDsAndTime(t *testing.T) {
	s := testStore(t)

	id1, err := s.Record(context.Background(), types.RunRecord{Tool: types.ToolFdec, Target: "a.c", Status: types.RunSucceeded})
	require.NoError(t, err)
	id2, err := s.Record(context.Background(), types.RunRecord{Tool: types.ToolFdec, Target: "b.c", Status: types.RunSucceeded})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := s.List(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.False(t, runs[0].StartedAt.IsZero())
}

func TestList(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	tests := []struct {
		name        string
		opts        QueryOptions
		wantTargets []string
	}{
		{name: "newest first with store default limit", opts: QueryOptions{}, wantTargets: []string{"missing.c", "."}},
		{name: "explicit limit", opts: QueryOptions{MaxResults: 10}, wantTargets: []string{"missing.c", ".", "LastEmperor.c"}},
		{name: "filter by tool", opts: QueryOptions{Tool: types.ToolFdec, MaxResults: 10}, wantTargets: []string{"missing.c", "LastEmperor.c"}},
		{name: "filter by status", opts: QueryOptions{Status: types.RunSucceeded, MaxResults: 10}, wantTargets: []string{".", "LastEmperor.c"}},
		{name: "tool and status", opts: QueryOptions{Tool: types.ToolWsolve, Status: types.RunFailed}, wantTargets: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.List(context.Background(), tt.opts)
			require.NoError(t, err)

			var targets []string
			for _, r := range runs {
				targets = append(targets, r.Target)
			}
			assert.Equal(t, tt.wantTargets, targets)
		})
	}
}

func TestList_RoundTripsFields(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	runs, err := s.List(context.Background(), QueryOptions{Tool: types.ToolFdec, Status: types.RunSucceeded})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, types.ToolFdec, r.Tool)
	assert.Equal(t, "LastEmperor.c", r.Target)
	assert.Equal(t, "fdec.h", r.Output)
	assert.Equal(t, types.RunSucceeded, r.Status)
	assert.Equal(t, 42, r.Items)
	assert.Equal(t, 3*time.Millisecond, r.Elapsed)
	assert.True(t, base.Equal(r.StartedAt))
	assert.Empty(t, r.Error)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(context.Background(), QueryOptions{}, &buf))

	var runs []types.RunRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 3, "export ignores the list default limit")
	assert.Equal(t, "missing.c", runs[0].Target)
	assert.Equal(t, types.RunFailed, runs[0].Status)
	assert.Equal(t, "reading input missing.c: no such file", runs[0].Error)
	assert.Equal(t, 20*time.Millisecond, runs[1].Elapsed)
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), QueryOptions{Tool: types.ToolWsolve}, &buf))

	var runs []types.RunRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 7, runs[0].Items)
}

func TestExport_Empty(t *testing.T) {
	s := testStore(t)

	var y bytes.Buffer
	require.NoError(t, s.ExportYAML(context.Background(), QueryOptions{}, &y))
	assert.Equal(t, "[]\n", y.String())

	var j bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), QueryOptions{}, &j))
	assert.Equal(t, "[]\n", j.String())
}
