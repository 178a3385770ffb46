package services

import (
	"context"
	"testing"
	"time"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTodoRepo struct {
	todos  map[int]*models.Todo
	nextID int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[int]*models.Todo), nextID: 1}
}

func (f *fakeTodoRepo) Create(ctx context.Context, t *models.Todo) error {
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	stored := *t
	f.todos[t.ID] = &stored
	return nil
}

func (f *fakeTodoRepo) Get(ctx context.Context, id, userID int) (*models.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.CreatedBy != userID {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTodoRepo) ListByUser(ctx context.Context, userID int) ([]*models.Todo, error) {
	var out []*models.Todo
	for _, t := range f.todos {
		if t.CreatedBy == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, t *models.Todo) error {
	stored, ok := f.todos[t.ID]
	if !ok || stored.CreatedBy != t.CreatedBy {
		return pgx.ErrNoRows
	}
	copied := *t
	f.todos[t.ID] = &copied
	return nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, id, userID int) error {
	t, ok := f.todos[id]
	if !ok || t.CreatedBy != userID {
		return pgx.ErrNoRows
	}
	delete(f.todos, id)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestTodoCreateDefaults(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	todo, err := svc.Create(context.Background(), &models.TodoRequest{Title: "Telepon klien"}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.False(t, todo.Completed)

	_, err = svc.Create(context.Background(), &models.TodoRequest{}, 1)
	assert.Error(t, err)

	// Todos have no urgent level.
	_, err = svc.Create(context.Background(), &models.TodoRequest{
		Title: "x", Priority: models.PriorityUrgent,
	}, 1)
	assert.Error(t, err)
}

func TestTodoScopedToOwner(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	todo, err := svc.Create(context.Background(), &models.TodoRequest{Title: "Telepon klien"}, 1)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), todo.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), todo.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestTodoCompletedTogglesIndependently(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	todo, err := svc.Create(context.Background(), &models.TodoRequest{
		Title:       "Telepon klien",
		Description: "Konfirmasi jadwal",
	}, 1)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), todo.ID, &models.TodoRequest{
		Completed: boolPtr(true),
	}, 1)
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, "Telepon klien", updated.Title)
	assert.Equal(t, "Konfirmasi jadwal", updated.Description)
}
