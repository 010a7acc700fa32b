package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/placebook/pkg/mailer"
	mailtpl "github.com/oksasatya/placebook/pkg/mailer/templates"
)

// SubjectFor returns the subject line for a templated job.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.Welcome:
		return "Welcome aboard"
	default:
		return "Notification"
	}
}

// EnsureRecipient fills the recipient fields of job.Data from job.To.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}
