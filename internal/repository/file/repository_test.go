package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "task-board/internal/errors"
	"task-board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New("")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}

func TestRead_Missing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Read(context.Background(), "tasks")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestWriteReadDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[]`)))
	assert.FileExists(t, repo.Path("tasks"))

	data, err := repo.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[{"id":"x"}]`)))
	data, err = repo.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(data))

	require.NoError(t, repo.Delete(ctx, "tasks"))
	require.NoError(t, repo.Delete(ctx, "tasks"))
	assert.NoFileExists(t, repo.Path("tasks"))
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Write(context.Background(), "tasks", []byte(`[]`)))

	entries, err := os.ReadDir(filepath.Dir(repo.Path("tasks")))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"tasks.json", ".taskboard.lock"}, names)
}

func TestInvalidKeys(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", `a\b`, ".hidden"} {
		t.Run(key, func(t *testing.T) {
			err := repo.Write(ctx, key, []byte(`[]`))
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
		})
	}
}

func TestTwoRepositoriesShareDirectory(t *testing.T) {
	dir := t.TempDir()
	first, err := New(dir)
	require.NoError(t, err)
	defer first.Close()
	second, err := New(dir)
	require.NoError(t, err)
	defer second.Close()

	ctx := context.Background()
	require.NoError(t, first.Write(ctx, "tasks", []byte(`[1]`)))

	data, err := second.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}

func TestTaskSlotOverFiles(t *testing.T) {
	repo := setupRepo(t)
	slot := repository.NewTaskSlot(repo, "board")
	ctx := context.Background()

	records := []repository.TaskRecord{{ID: "1", Title: "Buy milk", Priority: "Low", DueDate: "2026-10-19T00:00:00Z", CreatedAt: "2026-10-18T10:00:00Z"}}
	require.NoError(t, slot.Save(ctx, records))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.FileExists(t, repo.Path("board"))
}
