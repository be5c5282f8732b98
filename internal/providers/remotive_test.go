package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

const remotiveBody = `{
	"total-job-count": 1,
	"jobs": [
		{
			"id": 42,
			"url": "https://remotive.example/42",
			"title": "Backend Go Engineer",
			"company_name": "Initech",
			"category": "Software Development",
			"job_type": "full_time",
			"publication_date": "2026-08-18T09:30:00",
			"candidate_required_location": "Worldwide",
			"salary": "$130k-$150k",
			"description": "<p>Write Go services.</p>",
			"tags": ["go", "postgresql"]
		}
	]
}`

// TestRemotive_Fetch tests parsing and normalisation.
func TestRemotive_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go engineer", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remotiveBody))
	}))
	defer srv.Close()

	p := NewRemotive(RemotiveConfig{BaseURL: srv.URL})
	result, err := p.Fetch(context.Background(), "go engineer", domain.DiscoveryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalFound)
	require.Len(t, result.Postings, 1)

	job := result.Postings[0]
	assert.Equal(t, "Backend Go Engineer", job.Title)
	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, "remote", job.WorkMode)
	assert.Equal(t, "full-time", job.EmploymentType)
	assert.Equal(t, "$130k-$150k", job.SalarySnippet)
	assert.Equal(t, []string{"go", "postgresql"}, job.Skills)
	assert.Equal(t, RemotiveName, job.Source)
	assert.Equal(t, "42", job.SourceID)
	assert.False(t, job.PostedAt.IsZero())
	assert.Equal(t, domain.ContentHash("Backend Go Engineer", "Initech", "Worldwide", ""), job.Hash)
}

// TestRemotive_FetchPassesLimit tests limit propagation.
func TestRemotive_FetchPassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"total-job-count": 0, "jobs": []}`))
	}))
	defer srv.Close()

	p := NewRemotive(RemotiveConfig{BaseURL: srv.URL})
	_, err := p.Fetch(context.Background(), "go", domain.DiscoveryOptions{Limit: 25})
	require.NoError(t, err)
}

// TestRemotive_FetchServerError tests error propagation.
func TestRemotive_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewRemotive(RemotiveConfig{BaseURL: srv.URL})
	_, err := p.Fetch(context.Background(), "go", domain.DiscoveryOptions{})
	assert.Error(t, err)
}
