package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyJob = errors.New("email job needs a recipient and a template or body")

// EmailJob is the JSON payload put on the email queue. A job names either a
// Template rendered with Data, or carries a ready Subject/Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

func TemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: template, Data: data}
}

// Decode parses a queue payload and rejects jobs that can never be sent.
func Decode(body []byte) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return EmailJob{}, fmt.Errorf("decode email job: %w", err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" || (job.Template == "" && job.Text == "" && job.HTML == "") {
		return EmailJob{}, ErrEmptyJob
	}
	return job, nil
}
