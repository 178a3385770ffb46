package models

import "time"

// Job statuses
const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusWaitingClient = "waiting_client_confirmation"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
)

// Job priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// statusLabels is the single source of truth for user-facing status names.
var statusLabels = map[string]string{
	StatusPending:       "Menunggu",
	StatusInProgress:    "Sedang Dikerjakan",
	StatusWaitingClient: "Menunggu Konfirmasi Klien",
	StatusCompleted:     "Selesai",
	StatusCancelled:     "Dibatalkan",
}

// StatusLabel returns the Indonesian display label for a status key.
// Unknown keys are returned unchanged so stale data still renders.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// ValidJobStatus reports whether the status is a member of the enumeration.
func ValidJobStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

// ValidJobPriority reports whether the priority is a member of the enumeration.
func ValidJobPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Job struct {
	ID                      int        `json:"id"`
	TrackingCode            string     `json:"tracking_code"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	ClientName              string     `json:"client_name"`
	ClientEmail             string     `json:"client_email"`
	ClientPhone             string     `json:"client_phone"`
	Status                  string     `json:"status"`
	Priority                string     `json:"priority"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	ActualCompletionDate    *time.Time `json:"actual_completion_date"`
	Budget                  *float64   `json:"budget"`
	Notes                   string     `json:"notes"`
	CreatedBy               *int       `json:"created_by"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// JobHistory is an append-only audit row. Rows are never updated or deleted;
// deleting the job cascades at the storage layer.
type JobHistory struct {
	ID                      int        `json:"id"`
	JobID                   int        `json:"job_id"`
	Status                  string     `json:"status"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	Notes                   string     `json:"notes"`
	StatusNote              string     `json:"status_note"`
	CreatedBy               *int       `json:"created_by"`
	CreatedByName           string     `json:"created_by_name,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
}

type JobWithHistory struct {
	Job
	History []*JobHistory `json:"history"`
}

type CreateJobRequest struct {
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	ClientName              string     `json:"client_name"`
	ClientEmail             string     `json:"client_email"`
	ClientPhone             string     `json:"client_phone"`
	Status                  string     `json:"status"`
	Priority                string     `json:"priority"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	Budget                  *float64   `json:"budget"`
	Notes                   string     `json:"notes"`
}

// UpdateJobRequest serves both update modes. A non-nil StatusNote selects
// status-update mode; nil selects full-update mode.
type UpdateJobRequest struct {
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	ClientName              string     `json:"client_name"`
	ClientEmail             string     `json:"client_email"`
	ClientPhone             string     `json:"client_phone"`
	Status                  string     `json:"status"`
	Priority                string     `json:"priority"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	Budget                  *float64   `json:"budget"`
	Notes                   string     `json:"notes"`
	StatusNote              *string    `json:"status_note"`
}

// JobFilter carries list filters and pagination.
type JobFilter struct {
	Search   string
	Status   string
	Priority string
	Page     int
	Limit    int
}

type JobListResponse struct {
	Jobs       []*Job `json:"jobs"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// JobOption is a compact job reference for linking (todo forms).
type JobOption struct {
	ID           int    `json:"id"`
	TrackingCode string `json:"tracking_code"`
	Title        string `json:"title"`
	Status       string `json:"status"`
}
