package client

import (
	"fmt"
	"time"

	"github.com/cloudhire/cloudhire-backend/internal/ident"
)

// Fixture records served in offline/demo mode. Shapes match what the backend
// stores so UI code paths cannot tell the difference.
var fixtureJobs = []Job{
	{
		"id":       "1",
		"title":    "Senior Full Stack Developer",
		"company":  "TechCorp Vietnam",
		"location": "Ho Chi Minh City",
		"type":     "Full-time",
		"salary":   "30,000,000 - 50,000,000 VND",
		"description": "Build modern web applications with React, Node.js and AWS " +
			"as part of an agile product team.",
		"requirements": "5+ years JavaScript/TypeScript, React/Next.js, AWS (Lambda, API Gateway, DynamoDB)",
		"createdAt":    "2024-01-15T10:00:00Z",
	},
	{
		"id":       "2",
		"title":    "AWS Solutions Architect",
		"company":  "Cloud Solutions Inc",
		"location": "Ha Noi",
		"type":     "Full-time",
		"salary":   "40,000,000 - 60,000,000 VND",
		"description": "Design and deliver AWS architectures directly with customers, " +
			"from requirements through deployment.",
		"requirements": "AWS SA certification, 3+ years AWS, serverless architecture, IaC (Terraform/CloudFormation)",
		"createdAt":    "2024-01-14T09:00:00Z",
	},
	{
		"id":       "3",
		"title":    "Backend Engineer (Go)",
		"company":  "CloudHire",
		"location": "Remote",
		"type":     "Full-time",
		"salary":   "Negotiable",
		"description": "Own the job-board API: request handling, storage access " +
			"patterns and the apply pipeline.",
		"requirements": "Solid Go, HTTP API design, experience with key-value stores",
		"createdAt":    "2024-01-12T08:30:00Z",
	},
}

func fixtureList(page, limit int) *JobList {
	total := len(fixtureJobs)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &JobList{
		Jobs:  fixtureJobs[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

func fixtureJob(id string) (Job, error) {
	for _, j := range fixtureJobs {
		if jid, _ := j["id"].(string); jid == id {
			return j, nil
		}
	}
	return nil, &APIError{StatusCode: 404, Code: "not_found", Message: fmt.Sprintf("job %s not found", id)}
}

func fixtureReceipt(jobID, cvFileKey string) *ApplicationReceipt {
	return &ApplicationReceipt{
		Success:       true,
		ApplicationID: ident.NewApplicationID(),
		JobID:         jobID,
		CVFileKey:     cvFileKey,
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
