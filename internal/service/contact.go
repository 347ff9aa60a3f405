package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/olegiv/portfolio-go/internal/metrics"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `form:"name" validate:"min=2"`
	Email   string `form:"email" validate:"required,contains=@"`
	Message string `form:"message" validate:"min=10"`
}

var contactMessages = messages{
	"name":    "Name must be at least 2 characters",
	"email":   "Please enter a valid email address",
	"message": "Message must be at least 10 characters",
}

// ContactService accepts contact form submissions. Messages are logged, not
// mailed.
type ContactService struct {
	logger *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(logger *slog.Logger) *ContactService {
	return &ContactService{logger: logger}
}

// Submit validates in and records it. userAgent is parsed for the log entry.
func (s *ContactService) Submit(_ context.Context, in ContactInput, userAgent string) error {
	in = ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}

	if verr := validateStruct(in, contactMessages); !verr.empty() {
		return verr
	}

	ua := useragent.Parse(userAgent)
	s.logger.Info("contact form submission",
		"name", in.Name,
		"email", in.Email,
		"message_length", len(in.Message),
		"browser", ua.Name,
		"os", ua.OS,
		"device", deviceType(ua),
	)
	metrics.ContactSubmissions.Inc()
	return nil
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}
