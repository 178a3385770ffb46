package models

import "time"

// ValidTodoPriority reports whether the priority is valid for todos
// (todos have no "urgent" level).
func ValidTodoPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a personal task item, visible only to its creator.
type Todo struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	JobID       *int       `json:"job_id"`
	CreatedBy   int        `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	JobID       *int       `json:"job_id"`
}
