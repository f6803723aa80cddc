package usecase

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

// NotifyConfig names the back-office recipients.
type NotifyConfig struct {
	AdminEmail string
	AdminPhone string
}

type submissionView struct {
	RequestID     string
	PropertyType  string
	Purpose       string
	Governorate   string
	City          string
	Area          string
	Price         string
	ContactName   string
	ContactPhone  string
	ContactEmail  string
	PreferredTime string
	ImageURLs     []string
}

func newSubmissionView(e domain.PropertySubmittedEvent) submissionView {
	cat := domain.DefaultCatalog()
	return submissionView{
		RequestID:     e.RequestID,
		PropertyType:  domain.LabelOf(cat.PropertyTypes, e.PropertyType),
		Purpose:       domain.LabelOf(cat.Purposes, e.Purpose),
		Governorate:   domain.LabelOf(cat.Governorates, e.Governorate),
		City:          e.City,
		Area:          e.Area,
		Price:         e.Price,
		ContactName:   e.ContactName,
		ContactPhone:  e.ContactPhone,
		ContactEmail:  e.ContactEmail,
		PreferredTime: domain.LabelOf(cat.PreferredTimes, e.PreferredTime),
		ImageURLs:     e.ImageURLs,
	}
}

var (
	adminEmailHTML = htmltemplate.Must(htmltemplate.New("admin").Parse(`<div dir="rtl">
<h2>طلب عرض عقار جديد {{.RequestID}}</h2>
<ul>
<li>نوع العقار: {{.PropertyType}}</li>
<li>الغرض: {{.Purpose}}</li>
<li>الموقع: {{.Governorate}} - {{.City}}</li>
<li>المساحة: {{.Area}} م²</li>
<li>السعر: {{.Price}} ج.م</li>
<li>الاسم: {{.ContactName}}</li>
<li>الهاتف: {{.ContactPhone}}</li>
{{if .ContactEmail}}<li>البريد: {{.ContactEmail}}</li>{{end}}
{{if .PreferredTime}}<li>وقت التواصل المفضل: {{.PreferredTime}}</li>{{end}}
</ul>
{{range .ImageURLs}}<a href="{{.}}"><img src="{{.}}" width="160"></a> {{end}}
</div>`))

	adminEmailText = texttemplate.Must(texttemplate.New("admin").Parse(`طلب عرض عقار جديد {{.RequestID}}
{{.PropertyType}} - {{.Purpose}}
{{.Governorate}} - {{.City}}
المساحة: {{.Area}} م² / السعر: {{.Price}} ج.م
{{.ContactName}} {{.ContactPhone}}
`))

	ackEmailHTML = htmltemplate.Must(htmltemplate.New("ack").Parse(`<div dir="rtl">
<p>مرحباً {{.ContactName}}،</p>
<p>تم استلام طلب عرض عقارك بنجاح. رقم الطلب: <strong>{{.RequestID}}</strong></p>
<p>سيتواصل معك فريق AMG خلال 24 ساعة.</p>
</div>`))

	ackEmailText = texttemplate.Must(texttemplate.New("ack").Parse(`مرحباً {{.ContactName}}،
تم استلام طلب عرض عقارك بنجاح. رقم الطلب: {{.RequestID}}
سيتواصل معك فريق AMG خلال 24 ساعة.
`))

	adminSMS = texttemplate.Must(texttemplate.New("sms").Parse(
		`AMG: طلب جديد {{.RequestID}} - {{.PropertyType}} {{.Purpose}} في {{.City}} - {{.ContactName}} {{.ContactPhone}}`))
)

// NotifySubmissionUseCase tells the back office about a new listing and thanks the owner.
// Any failing channel fails the whole call so the message is redelivered.
type NotifySubmissionUseCase struct {
	email   port.EmailSenderPort
	sms     port.SMSSenderPort
	metrics port.MetricsPort
	cfg     NotifyConfig
}

func NewNotifySubmissionUseCase(email port.EmailSenderPort, sms port.SMSSenderPort, metrics port.MetricsPort, cfg NotifyConfig) *NotifySubmissionUseCase {
	return &NotifySubmissionUseCase{email: email, sms: sms, metrics: metrics, cfg: cfg}
}

func (uc *NotifySubmissionUseCase) Execute(ctx context.Context, event domain.PropertySubmittedEvent) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "NotifySubmission",
		"request_id": event.RequestID,
	})
	ucLogger.Info("Use case started", nil)

	view := newSubmissionView(event)

	if uc.cfg.AdminEmail != "" {
		msg, err := buildEmail([]string{uc.cfg.AdminEmail}, "طلب عرض عقار جديد "+event.RequestID, adminEmailHTML, adminEmailText, view)
		if err != nil {
			return err
		}
		if err := uc.send(ctx, "email", func() error { return uc.email.SendEmail(ctx, msg) }); err != nil {
			ucLogger.Error("Admin e-mail failed", err, nil)
			return err
		}
	}

	if uc.cfg.AdminPhone != "" {
		text, err := renderText(adminSMS, view)
		if err != nil {
			return err
		}
		if err := uc.send(ctx, "sms", func() error { return uc.sms.SendSMS(ctx, uc.cfg.AdminPhone, text) }); err != nil {
			ucLogger.Error("Admin SMS failed", err, nil)
			return err
		}
	}

	if email := strings.TrimSpace(event.ContactEmail); email != "" {
		msg, err := buildEmail([]string{email}, "تم استلام طلبك "+event.RequestID, ackEmailHTML, ackEmailText, view)
		if err != nil {
			return err
		}
		if err := uc.send(ctx, "ack_email", func() error { return uc.email.SendEmail(ctx, msg) }); err != nil {
			ucLogger.Error("Acknowledgement e-mail failed", err, nil)
			return err
		}
	}

	ucLogger.Info("Use case finished: notifications sent", nil)
	return nil
}

func (uc *NotifySubmissionUseCase) send(ctx context.Context, channel string, fn func() error) error {
	err := fn()
	uc.metrics.NotificationSent(channel, err == nil)
	if err != nil {
		return fmt.Errorf("%s notification: %w", channel, err)
	}
	return nil
}

func buildEmail(to []string, subject string, html *htmltemplate.Template, text *texttemplate.Template, view submissionView) (port.EmailMessage, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := html.Execute(&htmlBuf, view); err != nil {
		return port.EmailMessage{}, fmt.Errorf("render e-mail: %w", err)
	}
	if err := text.Execute(&textBuf, view); err != nil {
		return port.EmailMessage{}, fmt.Errorf("render e-mail: %w", err)
	}
	return port.EmailMessage{To: to, Subject: subject, HTML: htmlBuf.String(), Text: textBuf.String()}, nil
}

func renderText(tmpl *texttemplate.Template, view submissionView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render sms: %w", err)
	}
	return buf.String(), nil
}
