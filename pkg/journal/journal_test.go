package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postgen/pkg/step"
	"postgen/pkg/testutil"
)

func openTestJournal(t *testing.T) (*Journal, string) {
	path := testutil.TempDBPath(t)
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, path
}

func sampleRun(startedAt time.Time) Run {
	return Run{
		ID:          NewRunID(),
		StartedAt:   startedAt,
		Duration:    1500 * time.Millisecond,
		Dir:         "/tmp/demo",
		ProjectName: "Demo",
		ProjectSlug: "demo",
		License:     "MIT",
		Steps: step.Summary{
			step.OK(step.GitInit, "/tmp/demo"),
			step.Failed(step.GitCommit, "exit status 128"),
			step.Skipped(step.GitRemote, `use_github is "n"`),
			step.OK(step.License, "MIT"),
		},
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "journal.db"))
	assert.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	j, path := openTestJournal(t)
	require.NoError(t, j.RecordRun(sampleRun(time.Now())))
	require.NoError(t, j.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	runs, err := again.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordRun_RoundTrip(t *testing.T) {
	j, path := openTestJournal(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun(started)

	require.NoError(t, j.RecordRun(run))

	runs, err := j.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, run.Duration, got.Duration)
	assert.Equal(t, "demo", got.ProjectSlug)
	assert.Equal(t, "MIT", got.License)
	assert.Equal(t, run.Steps, got.Steps)
	assert.Equal(t, 1, got.Failures())

	h := testutil.NewSQLiteTestHelper(t, path)
	assert.Equal(t, 4, h.Count(t, "steps"))
	assert.True(t, h.RowExists(t, "runs", "id = ? AND failures = 1", run.ID))
	assert.Equal(t, int64(1500), h.QuerySingle(t, "SELECT duration_ms FROM runs WHERE id = ?", run.ID))
	assert.Equal(t, "git-commit", h.QuerySingle(t, "SELECT name FROM steps WHERE run_id = ? AND status = 'failed'", run.ID))
}

func TestRecordRun_GeneratesID(t *testing.T) {
	j, _ := openTestJournal(t)
	run := sampleRun(time.Now())
	run.ID = ""

	require.NoError(t, j.RecordRun(run))

	runs, err := j.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
}

func TestRecordRun_DuplicateIDRollsBack(t *testing.T) {
	j, path := openTestJournal(t)
	run := sampleRun(time.Now())

	require.NoError(t, j.RecordRun(run))
	assert.Error(t, j.RecordRun(run))

	h := testutil.NewSQLiteTestHelper(t, path)
	assert.Equal(t, 1, h.Count(t, "runs"))
	assert.Equal(t, len(run.Steps), h.Count(t, "steps"))
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	j, _ := openTestJournal(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Hour))
		ids = append(ids, run.ID)
		require.NoError(t, j.RecordRun(run))
	}

	runs, err := j.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestListRuns_Empty(t *testing.T) {
	j, _ := openTestJournal(t)

	runs, err := j.ListRuns(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
