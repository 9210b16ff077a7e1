package models

import "time"

// Record is one loosely-typed item in the jobs table. Job and application
// records share the table, so beyond "id" there is no fixed schema: whatever
// the client sends on create/update is stored as-is.
type Record map[string]any

// ID returns the record's identity field, or "" when absent or not a string.
func (r Record) ID() string {
	s, _ := r["id"].(string)
	return s
}

// Title returns the job title, or "" when absent.
func (r Record) Title() string {
	s, _ := r["title"].(string)
	return s
}

// IsValidJob reports whether listing should expose this record.
// Application records (and any other non-job rows sharing the table) have no
// title and are filtered out here.
func (r Record) IsValidJob() bool {
	return r.ID() != "" && r.Title() != ""
}

// Clone returns a shallow copy so stores can hand out records without
// aliasing their internal state.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Application is the record written by the apply flow. It is write-only from
// this service's perspective: nothing here ever reads one back.
type Application struct {
	ID          string `json:"id" dynamodbav:"id"`
	JobID       string `json:"jobId" dynamodbav:"jobId"`
	CVFileKey   string `json:"cvFileKey" dynamodbav:"cvFileKey"`
	CoverLetter string `json:"coverLetter" dynamodbav:"coverLetter"`
	AllowSearch bool   `json:"allowSearch" dynamodbav:"allowSearch"`
	Status      string `json:"status" dynamodbav:"status"`
	SubmittedAt string `json:"submittedAt" dynamodbav:"submittedAt"`
}

// StatusPending is the only status this service ever writes; transitions
// belong to whichever system reviews applications.
const StatusPending = "pending"

// NewApplication builds an application for the given job with a fresh id and
// submission timestamp.
func NewApplication(id, jobID, cvFileKey, coverLetter string, allowSearch bool) Application {
	return Application{
		ID:          id,
		JobID:       jobID,
		CVFileKey:   cvFileKey,
		CoverLetter: coverLetter,
		AllowSearch: allowSearch,
		Status:      StatusPending,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Record converts the application into the loose table representation.
func (a Application) Record() Record {
	return Record{
		"id":          a.ID,
		"jobId":       a.JobID,
		"cvFileKey":   a.CVFileKey,
		"coverLetter": a.CoverLetter,
		"allowSearch": a.AllowSearch,
		"status":      a.Status,
		"submittedAt": a.SubmittedAt,
	}
}
