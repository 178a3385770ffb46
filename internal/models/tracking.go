package models

import "time"

// PublicJobView is the unauthenticated tracking projection of a job.
// The client name is masked and the budget is omitted entirely.
type PublicJobView struct {
	TrackingCode            string               `json:"tracking_code"`
	Title                   string               `json:"title"`
	Description             string               `json:"description"`
	ClientName              string               `json:"client_name"`
	Status                  string               `json:"status"`
	StatusLabel             string               `json:"status_label"`
	Priority                string               `json:"priority"`
	EstimatedCompletionDate *time.Time           `json:"estimated_completion_date"`
	ActualCompletionDate    *time.Time           `json:"actual_completion_date"`
	CreatedAt               time.Time            `json:"created_at"`
	UpdatedAt               time.Time            `json:"updated_at"`
	History                 []*PublicHistoryView `json:"history"`
}

type PublicHistoryView struct {
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Notes       string    `json:"notes"`
	StatusNote  string    `json:"status_note"`
	CreatedAt   time.Time `json:"created_at"`
}
