// Package email renders and dispatches the bill notification emails.
//
// Every send returns a plain success indicator instead of an error:
// notifications are never allowed to fail the operation that triggered
// them, so callers only use the result to decide whether to persist
// notification tracking fields.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/financegenie/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const (
	templateBillCreated  = "bill_created.html.tmpl"
	templateBillReminder = "bill_reminder.html.tmpl"
	templateBillOverdue  = "bill_overdue.html.tmpl"
)

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// BillData is the data bundle rendered into the notification templates.
//
// DaysUntilDue is only used by the reminder template, DaysOverdue only
// by the overdue template. Recurrence info is only used by the creation
// confirmation.
type BillData struct {
	Name              string
	Amount            decimal.Decimal
	DueDate           time.Time
	Status            models.BillStatus
	IsRecurring       bool
	RecurringInterval models.RecurringInterval
	DaysUntilDue      int
	DaysOverdue       int
}

// Service renders notification templates and hands them to a Transport.
//
// A Service with a nil transport is valid: every send is skipped and
// reports failure without erroring out. This covers deployments without
// mail credentials.
type Service struct {
	transport Transport
	printer   *message.Printer
}

// NewService returns a Service sending through the given transport.
// transport may be nil.
func NewService(transport Transport) *Service {
	return &Service{
		transport: transport,
		printer:   message.NewPrinter(language.English),
	}
}

// NewServiceFromEnv builds a Service with an SMTP transport configured
// from the environment. With EMAIL_USER or EMAIL_PASSWORD unset the
// transport stays unconfigured and all sends are skipped.
func NewServiceFromEnv() *Service {
	user := os.Getenv("EMAIL_USER")
	password := os.Getenv("EMAIL_PASSWORD")

	if user == "" || password == "" {
		log.Warn().Msg("email credentials are not configured, notification emails will be skipped")
		return NewService(nil)
	}

	host, ok := os.LookupEnv("EMAIL_HOST")
	if !ok {
		host = "smtp.gmail.com"
	}

	port, ok := os.LookupEnv("EMAIL_PORT")
	if !ok {
		port = "587"
	}

	from, ok := os.LookupEnv("EMAIL_FROM")
	if !ok {
		from = fmt.Sprintf("\"Finance Genie\" <%s>", user)
	}

	log.Info().Str("host", host).Str("port", port).Msg("email service initialized")

	return NewService(&SMTPTransport{
		Host:     host,
		Port:     port,
		Username: user,
		Password: password,
		From:     from,
	})
}

// Configured reports whether a transport is set up.
func (s *Service) Configured() bool {
	return s != nil && s.transport != nil
}

// SendBillCreated sends the creation confirmation for a bill.
func (s *Service) SendBillCreated(to string, data BillData) bool {
	subject := fmt.Sprintf("Bill Created: %s", data.Name)
	return s.send(to, subject, templateBillCreated, data)
}

// SendBillReminder sends the upcoming-due reminder for a bill.
func (s *Service) SendBillReminder(to string, data BillData) bool {
	subject := fmt.Sprintf("Reminder: %s due in %d %s", data.Name, data.DaysUntilDue, pluralDays(data.DaysUntilDue))
	return s.send(to, subject, templateBillReminder, data)
}

// SendBillOverdue sends the overdue notification for a bill.
func (s *Service) SendBillOverdue(to string, data BillData) bool {
	subject := fmt.Sprintf("OVERDUE: %s - %d %s past due", data.Name, data.DaysOverdue, pluralDays(data.DaysOverdue))
	return s.send(to, subject, templateBillOverdue, data)
}

// send renders one template and hands the result to the transport.
// Exactly one email goes out per successful call, there are no retries.
func (s *Service) send(to, subject, templateName string, data BillData) bool {
	if !s.Configured() {
		log.Warn().Str("template", templateName).Msg("email service not initialized, skipping email")
		return false
	}

	var body bytes.Buffer
	err := templates.ExecuteTemplate(&body, templateName, s.templateData(data))
	if err != nil {
		log.Error().Err(err).Str("template", templateName).Msg("error rendering email template")
		return false
	}

	err = s.transport.Send(to, subject, body.Bytes())
	if err != nil {
		log.Error().Err(err).Str("template", templateName).Msg("error sending email")
		return false
	}

	log.Info().Str("template", templateName).Msg("email sent")
	return true
}

// templateData converts a BillData to the map the templates render.
func (s *Service) templateData(data BillData) map[string]interface{} {
	interval := "N/A"
	if data.IsRecurring {
		interval = string(data.RecurringInterval)
	}

	return map[string]interface{}{
		"BillName":          data.Name,
		"BillAmount":        s.printer.Sprintf("%.2f", data.Amount.InexactFloat64()),
		"DueDate":           data.DueDate.Format("January 2, 2006"),
		"Status":            string(data.Status),
		"IsRecurring":       data.IsRecurring,
		"RecurringInterval": interval,
		"DaysUntilDue":      data.DaysUntilDue,
		"DaysOverdue":       data.DaysOverdue,
	}
}

func pluralDays(days int) string {
	if days == 1 {
		return "day"
	}
	return "days"
}
