package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "task-board/internal/errors"
	"task-board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countSlots(t *testing.T, repo *SlotRepository) int {
	t.Helper()
	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM slots`).Scan(&n))
	return n
}

func setupTestDB(t *testing.T) *SlotRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRead_MissingSlot(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Read(context.Background(), "tasks")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestWriteThenRead(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[{"id":"a"}]`)))

	value, err := repo.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(value))
}

func TestWrite_Overwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[1]`)))
	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[2]`)))

	value, err := repo.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(value))

	assert.Equal(t, 1, countSlots(t, repo))
}

func TestDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, repo.Delete(ctx, "tasks"))
	require.NoError(t, repo.Delete(ctx, "tasks"), "deleting a missing slot is a no-op")

	_, err := repo.Read(ctx, "tasks")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestWrite_StampsUpdatedAt(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[]`)))

	slot, err := ScanSlot(repo.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM slots WHERE key = ?`, "tasks"))
	require.NoError(t, err)
	assert.Equal(t, "tasks", slot.Key)
	_, err = repository.ParseTimeFromStore(slot.UpdatedAt)
	assert.NoError(t, err)
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Write(ctx, "tasks", []byte(`[]`)))
	value, err := repo.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestTaskSlotOverSQLite(t *testing.T) {
	repo := setupTestDB(t)
	slot := repository.NewTaskSlot(repo, "")
	ctx := context.Background()

	records, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	want := []repository.TaskRecord{{
		ID:        "0b7e",
		Title:     "Write report",
		Priority:  "High",
		DueDate:   "2026-10-20T00:00:00+02:00",
		CreatedAt: "2026-10-19T08:30:00.123456789+02:00",
	}}
	require.NoError(t, slot.Save(ctx, want))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContextCancelled(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Write(ctx, "tasks", []byte(`[]`))
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}
