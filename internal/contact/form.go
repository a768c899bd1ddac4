// Package contact validates contact form submissions, hands them to a mail
// sender, and tracks the form's submission state.
package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Message is one contact form submission.
type Message struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Sender delivers a message to the site owner.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, m Message) error

func (f SenderFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

// ErrInvalid wraps field validation failures.
var ErrInvalid = errors.New("contact: invalid submission")

// FailureNotice is shown for every delivery failure, whatever the cause.
const FailureNotice = "Failed to send message. Please try again later."

// SuccessNotice is shown once a message is delivered.
const SuccessNotice = "Thank you for your message! I'll get back to you soon."

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldErrors maps form field names to a message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, k := range []string{"name", "email", "subject", "message"} {
		if msg, ok := fe[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error { return ErrInvalid }

// Validate checks every field is present and the email looks like one.
func (m Message) Validate() error {
	fe := FieldErrors{}
	if strings.TrimSpace(m.Name) == "" {
		fe["name"] = "Name is required"
	}
	if strings.TrimSpace(m.Email) == "" {
		fe["email"] = "Email is required"
	} else if !emailPattern.MatchString(m.Email) {
		fe["email"] = "Email is invalid"
	}
	if strings.TrimSpace(m.Subject) == "" {
		fe["subject"] = "Subject is required"
	}
	if strings.TrimSpace(m.Message) == "" {
		fe["message"] = "Message is required"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Status is where the form is in its submission cycle.
type Status int

const (
	Idle Status = iota
	Submitting
	Submitted
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("contact: submission in progress")

// View is what the page shows for the form.
type View struct {
	Status Status
	Values Message
	Errors FieldErrors
	Notice string
}

// Form is the state of one contact form. It is safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	sender  Sender
	logger  *zap.Logger
	success time.Duration
	view    View
	timer   *time.Timer
}

// NewForm returns an idle form delivering through sender. After a
// successful send the form returns to Idle once successWindow elapses; zero
// keeps it in Submitted until Reset.
func NewForm(sender Sender, successWindow time.Duration, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{sender: sender, success: successWindow, logger: logger}
}

// View returns a copy of the current view.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.view
	if v.Errors != nil {
		v.Errors = make(FieldErrors, len(f.view.Errors))
		for k, e := range f.view.Errors {
			v.Errors[k] = e
		}
	}
	return v
}

// Status returns the current status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.Status
}

// Submit validates m and, if valid, sends it. Invalid input leaves the form
// where it was, with the values and field errors kept for correction. A send
// failure moves the form to Failed with the values cleared; Submit may be
// called again from there.
func (f *Form) Submit(ctx context.Context, m Message) error {
	f.mu.Lock()
	if f.view.Status == Submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if err := m.Validate(); err != nil {
		var fe FieldErrors
		errors.As(err, &fe)
		f.view.Values = m
		f.view.Errors = fe
		f.mu.Unlock()
		return err
	}
	f.stopTimer()
	f.view = View{Status: Submitting, Values: m}
	f.mu.Unlock()

	err := f.sender.Send(ctx, m)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.logger.Error("Error sending contact message", zap.Error(err))
		f.view = View{Status: Failed, Notice: FailureNotice}
		return err
	}
	f.logger.Info("Contact message sent", zap.String("subject", m.Subject))
	f.view = View{Status: Submitted, Notice: SuccessNotice}
	if f.success > 0 {
		f.timer = time.AfterFunc(f.success, f.expire)
	}
	return nil
}

// Reset returns the form to an empty Idle state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimer()
	f.view = View{}
}

func (f *Form) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.view.Status == Submitted {
		f.view = View{}
	}
	f.timer = nil
}

func (f *Form) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
