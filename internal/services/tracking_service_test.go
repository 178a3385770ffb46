package services

import (
	"context"
	"encoding/json"
	"testing"

	"tracker-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskClientName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single rune", "A", "A"},
		{"two runes keeps both", "Jo", "Jo"},
		{"three runes", "Ana", "A*a"},
		{"four runes", "Budi", "B**i"},
		{"long name keeps first two and last", "Budi Santoso", "Bu*********o"},
		{"trims whitespace", "  Ana  ", "A*a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskClientName(tc.in))
		})
	}
}

func TestTrackByCodeMasksAndOmitsBudget(t *testing.T) {
	jobs := newFakeJobRepo()
	history := &fakeHistoryRepo{}
	jobSvc := NewJobService(jobs, history)
	svc := NewTrackingService(jobs, history)

	budget := 1500000.0
	job, err := jobSvc.Create(context.Background(), &models.CreateJobRequest{
		Title:      "Servis AC",
		ClientName: "Budi Santoso",
		Budget:     &budget,
	}, 1)
	require.NoError(t, err)

	view, err := svc.TrackByCode(context.Background(), job.TrackingCode)
	require.NoError(t, err)

	assert.Equal(t, "Bu*********o", view.ClientName)
	assert.Equal(t, "Menunggu", view.StatusLabel)

	// The serialized public view must never leak the budget.
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "budget")
	assert.NotContains(t, string(data), "1500000")
}

func TestTrackByCodeIsCaseInsensitive(t *testing.T) {
	jobs := newFakeJobRepo()
	history := &fakeHistoryRepo{}
	jobSvc := NewJobService(jobs, history)
	svc := NewTrackingService(jobs, history)

	job, err := jobSvc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	lower := ""
	for _, c := range job.TrackingCode {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower += string(c)
	}

	view, err := svc.TrackByCode(context.Background(), lower)
	require.NoError(t, err)
	assert.Equal(t, job.TrackingCode, view.TrackingCode)
}

func TestTrackByCodeHidesNotelessHistory(t *testing.T) {
	jobs := newFakeJobRepo()
	history := &fakeHistoryRepo{}
	jobSvc := NewJobService(jobs, history)
	svc := NewTrackingService(jobs, history)

	job, err := jobSvc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	// A bare system row with neither note; public view must skip it.
	require.NoError(t, history.Append(context.Background(), &models.JobHistory{
		JobID:  job.ID,
		Status: job.Status,
	}))

	view, err := svc.TrackByCode(context.Background(), job.TrackingCode)
	require.NoError(t, err)

	require.Len(t, view.History, 1)
	assert.Equal(t, "Pekerjaan dibuat", view.History[0].Notes)
}

func TestTrackByCodeNotFound(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewTrackingService(jobs, &fakeHistoryRepo{})

	_, err := svc.TrackByCode(context.Background(), "TRK-ZZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}
