package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxMessageLength caps the message body.
const MaxMessageLength = 5000

// Status of a stored submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusForwarded Status = "forwarded"
	StatusFailed    Status = "failed"
)

var (
	ErrSubmissionNotFound = errors.New("contact submission not found")
	// ErrDeliveryFailed is what the sender sees when forwarding fails.
	ErrDeliveryFailed = errors.New("message could not be delivered, please try again later")
)

// Form is the body posted by the contact page. Website is a honeypot that
// real visitors never fill in.
type Form struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Website string `json:"website"`
}

// Normalize trims surrounding whitespace from every field.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
	f.Website = strings.TrimSpace(f.Website)
}

// IsSpam reports whether the honeypot was filled in.
func (f *Form) IsSpam() bool {
	return f.Website != ""
}

// Submission is a stored contact message.
type Submission struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Subject     string     `json:"subject,omitempty"`
	Message     string     `json:"message"`
	ClientIP    string     `json:"client_ip,omitempty"`
	Status      Status     `json:"status"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ForwardedAt *time.Time `json:"forwarded_at,omitempty"`
}

// Receipt is returned to the sender.
type Receipt struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}
