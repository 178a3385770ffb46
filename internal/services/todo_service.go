package services

import (
	"context"
	"strings"

	"tracker-backend/internal/models"
)

// TodoRepository is satisfied by *repositories.TodoRepository. Every
// operation is scoped to the creating user at the storage layer.
type TodoRepository interface {
	Create(ctx context.Context, t *models.Todo) error
	Get(ctx context.Context, id, userID int) (*models.Todo, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Todo, error)
	Update(ctx context.Context, t *models.Todo) error
	Delete(ctx context.Context, id, userID int) error
}

type TodoService struct {
	Repo TodoRepository
}

func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{Repo: repo}
}

func (s *TodoService) Create(ctx context.Context, req *models.TodoRequest, userID int) (*models.Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ValidationError("judul tugas wajib diisi")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidTodoPriority(priority) {
		return nil, ValidationError("prioritas tugas tidak valid")
	}

	todo := &models.Todo{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		JobID:       req.JobID,
		CreatedBy:   userID,
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.Repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID int) ([]*models.Todo, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *TodoService) Get(ctx context.Context, id, userID int) (*models.Todo, error) {
	todo, err := s.Repo.Get(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return todo, nil
}

// Update replaces the editable fields. Completed toggles independently:
// a request carrying only {"completed": true} leaves the rest untouched.
func (s *TodoService) Update(ctx context.Context, id int, req *models.TodoRequest, userID int) (*models.Todo, error) {
	todo, err := s.Repo.Get(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Title != "" {
		todo.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		todo.Description = req.Description
	}
	if req.Priority != "" {
		if !models.ValidTodoPriority(req.Priority) {
			return nil, ValidationError("prioritas tugas tidak valid")
		}
		todo.Priority = req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.JobID != nil {
		todo.JobID = req.JobID
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.Repo.Update(ctx, todo); err != nil {
		return nil, mapNotFound(err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, userID int) error {
	return mapNotFound(s.Repo.Delete(ctx, id, userID))
}
