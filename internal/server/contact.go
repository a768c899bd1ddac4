package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/store"
)

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title":  "Contact Me",
		"values": contact.Message{},
	})
}

// submitContact handles the HTMX form post and answers with a fragment.
func (s *Server) submitContact(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		c.HTML(http.StatusTooManyRequests, "contact-error.html", gin.H{
			"error": "Too many messages. Please wait a minute and try again.",
		})
		return
	}

	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact.html", gin.H{
			"title":  "Contact Me",
			"values": msg,
			"errors": fieldErrors(err, msg),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Contact.SendTimeout)
	defer cancel()

	form := contact.NewForm(s.recordingSender(), 0, s.logger.Named("contact"))
	err := form.Submit(ctx, msg)
	view := form.View()

	var fe contact.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.HTML(http.StatusUnprocessableEntity, "contact.html", gin.H{
			"title":  "Contact Me",
			"values": view.Values,
			"errors": fe,
		})
	case err != nil:
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  view.Notice,
			"values": view.Values,
		})
	default:
		c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": view.Notice})
	}
}

// recordingSender stores each message and its delivery outcome around the
// configured sender.
func (s *Server) recordingSender() contact.Sender {
	if s.store == nil {
		return s.sender
	}
	return contact.SenderFunc(func(ctx context.Context, m contact.Message) error {
		rec, err := s.store.SaveMessage(ctx, m.Name, m.Email, m.Subject, m.Message)
		if err != nil {
			s.logger.Error("Error saving contact message", zap.Error(err))
		}
		sendErr := s.sender.Send(ctx, m)
		if rec.ID != "" {
			status := store.StatusSent
			if sendErr != nil {
				status = store.StatusFailed
			}
			if err := s.store.SetMessageStatus(context.WithoutCancel(ctx), rec.ID, status); err != nil {
				s.logger.Error("Error updating contact message", zap.String("id", rec.ID), zap.Error(err))
			}
		}
		return sendErr
	})
}

// fieldErrors turns binding failures into the per-field messages the form
// shows.
func fieldErrors(err error, msg contact.Message) contact.FieldErrors {
	var fe contact.FieldErrors
	if errors.As(msg.Validate(), &fe) {
		return fe
	}
	fe = contact.FieldErrors{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			fe[jsonName(e.Field())] = e.Field() + " is required"
		}
		return fe
	}
	fe["message"] = "Could not read the form. Please try again."
	return fe
}

func jsonName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Subject":
		return "subject"
	default:
		return "message"
	}
}
