package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() Message {
	return Message{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "Loved the particles."}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validMessage().Validate())

	err := Message{Email: "not-an-email", Subject: " "}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Name is required", fe["name"])
	assert.Equal(t, "Email is invalid", fe["email"])
	assert.Equal(t, "Subject is required", fe["subject"])
	assert.Equal(t, "Message is required", fe["message"])
	assert.True(t, strings.HasPrefix(fe.Error(), "Name is required; Email is invalid"))

	err = Message{Name: "a", Subject: "b", Message: "c"}.Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Email is required", fe["email"])
}

func TestSubmitSuccess(t *testing.T) {
	var got Message
	var seen []Status
	var form *Form
	form = NewForm(SenderFunc(func(_ context.Context, m Message) error {
		seen = append(seen, form.Status())
		got = m
		return nil
	}), 0, nil)

	require.Equal(t, Idle, form.Status())
	require.NoError(t, form.Submit(context.Background(), validMessage()))

	assert.Equal(t, []Status{Submitting}, seen)
	assert.Equal(t, validMessage(), got)
	v := form.View()
	assert.Equal(t, Submitted, v.Status)
	assert.Equal(t, SuccessNotice, v.Notice)
	assert.Equal(t, Message{}, v.Values, "form is cleared after sending")
}

func TestSubmitFailureDiscardsValuesAndAllowsRetry(t *testing.T) {
	fail := true
	form := NewForm(SenderFunc(func(context.Context, Message) error {
		if fail {
			return errors.New("relay down")
		}
		return nil
	}), 0, nil)

	err := form.Submit(context.Background(), validMessage())
	require.Error(t, err)
	v := form.View()
	assert.Equal(t, Failed, v.Status)
	assert.Equal(t, FailureNotice, v.Notice)
	assert.Equal(t, Message{}, v.Values)

	fail = false
	require.NoError(t, form.Submit(context.Background(), validMessage()))
	assert.Equal(t, Submitted, form.Status())
}

func TestSubmitInvalidKeepsValues(t *testing.T) {
	called := false
	form := NewForm(SenderFunc(func(context.Context, Message) error {
		called = true
		return nil
	}), 0, nil)

	bad := Message{Name: "Ada", Email: "nope"}
	err := form.Submit(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)

	v := form.View()
	assert.Equal(t, Idle, v.Status)
	assert.Equal(t, bad, v.Values)
	assert.Contains(t, v.Errors, "email")
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	form := NewForm(SenderFunc(func(context.Context, Message) error {
		close(entered)
		<-release
		return nil
	}), 0, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = form.Submit(context.Background(), validMessage())
	}()
	<-entered
	assert.ErrorIs(t, form.Submit(context.Background(), validMessage()), ErrBusy)
	close(release)
	wg.Wait()
	assert.Equal(t, Submitted, form.Status())
}

func TestSuccessWindowExpires(t *testing.T) {
	form := NewForm(SenderFunc(func(context.Context, Message) error { return nil }), 10*time.Millisecond, nil)
	require.NoError(t, form.Submit(context.Background(), validMessage()))
	assert.Equal(t, Submitted, form.Status())
	assert.Eventually(t, func() bool { return form.Status() == Idle }, time.Second, 2*time.Millisecond)

	require.NoError(t, form.Submit(context.Background(), validMessage()))
	form.Reset()
	assert.Equal(t, View{}, form.View())
}

func TestSMTPSender(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "", "", "owner@example.com")
	assert.ErrorIs(t, s.Send(context.Background(), validMessage()), ErrNotConfigured)

	var addr, from string
	var to []string
	var body []byte
	s = NewSMTPSender("smtp.example.com", "587", "site@example.com", "secret", "owner@example.com")
	s.sendMail = func(a string, _ smtp.Auth, f string, t []string, msg []byte) error {
		addr, from, to, body = a, f, t, msg
		return nil
	}
	m := validMessage()
	m.Subject = "Hi\r\nBcc: everyone@example.com"
	require.NoError(t, s.Send(context.Background(), m))

	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, "site@example.com", from)
	assert.Equal(t, []string{"owner@example.com"}, to)
	assert.Contains(t, string(body), "Reply-To: ada@example.com\r\n")
	assert.Contains(t, string(body), "Subject: Portfolio Contact: Hi  Bcc: everyone@example.com\r\n")
	assert.NotContains(t, string(body), "\r\nBcc:")

	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("535 auth") }
	assert.ErrorContains(t, s.Send(context.Background(), validMessage()), "535 auth")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, validMessage()), context.Canceled)
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(2, 2)
	now := time.Now()
	assert.True(t, l.allowAt("1.2.3.4", now))
	assert.True(t, l.allowAt("1.2.3.4", now))
	assert.False(t, l.allowAt("1.2.3.4", now))
	assert.True(t, l.allowAt("5.6.7.8", now))
	assert.True(t, l.allowAt("1.2.3.4", now.Add(31*time.Second)))

	l.idle = 0
	time.Sleep(time.Millisecond)
	assert.Equal(t, 2, l.Prune())
}
