package service

import (
	"bytes"
	"fmt"
	"html/template"

	appointmentModel "bookly/internal/domains/appointment/model"
	"bookly/internal/domains/notification/model"
	"bookly/shared/constant"
)

const (
	displayDay   = "Monday, 02 January 2006"
	layoutHeader = `<div style="font-family:sans-serif;max-width:560px">`
	layoutFooter = `<p style="color:#888">{{.BusinessName}}</p></div>`
)

type content struct {
	subject string
	body    *template.Template
}

var contents = map[model.Type]content{
	model.TypeConfirmation: {
		subject: "Your appointment at %s is confirmed",
		body: template.Must(template.New("confirmation").Parse(layoutHeader +
			`<p>Hi {{.CustomerName}},</p>` +
			`<p>Your {{.ServiceName}} with {{.ProfessionalName}} is confirmed for {{.Day}} at {{.Clock}}.</p>` +
			`{{if .CancellationHours}}<p>Need to cancel? Please let us know at least {{.CancellationHours}} hours before.</p>{{end}}` +
			layoutFooter)),
	},
	model.TypeCancellation: {
		subject: "Your appointment at %s was cancelled",
		body: template.Must(template.New("cancellation").Parse(layoutHeader +
			`<p>Hi {{.CustomerName}},</p>` +
			`<p>Your {{.ServiceName}} on {{.Day}} at {{.Clock}} has been cancelled.</p>` +
			`{{if .BookingURL}}<p>You can book a new time at <a href="{{.BookingURL}}">{{.BookingURL}}</a>.</p>{{end}}` +
			layoutFooter)),
	},
	model.TypeReminder: {
		subject: "Reminder: your appointment at %s is tomorrow",
		body: template.Must(template.New("reminder").Parse(layoutHeader +
			`<p>Hi {{.CustomerName}},</p>` +
			`<p>This is a reminder of your {{.ServiceName}} with {{.ProfessionalName}} on {{.Day}} at {{.Clock}}.</p>` +
			layoutFooter)),
	},
	model.TypeReminder2h: {
		subject: "See you soon at %s",
		body: template.Must(template.New("reminder_2h").Parse(layoutHeader +
			`<p>Hi {{.CustomerName}},</p>` +
			`<p>Your {{.ServiceName}} with {{.ProfessionalName}} starts at {{.Clock}} today.</p>` +
			layoutFooter)),
	},
}

type templateData struct {
	CustomerName      string
	BusinessName      string
	ServiceName       string
	ProfessionalName  string
	Day               string
	Clock             string
	CancellationHours int
	BookingURL        string
}

type rendered struct {
	subject string
	html    string
}

// render produces the message for kind with times shown in the business timezone.
func render(kind model.Type, detail appointmentModel.AppointmentDetail, baseURL string) (rendered, error) {
	c, ok := contents[kind]
	if !ok {
		return rendered{}, fmt.Errorf("unknown notification type %q", kind)
	}

	start := detail.StartTime.In(detail.Location())

	data := templateData{
		CustomerName:      detail.CustomerName,
		BusinessName:      detail.BusinessName,
		ServiceName:       detail.ServiceName,
		ProfessionalName:  detail.ProfessionalName,
		Day:               start.Format(displayDay),
		Clock:             start.Format(constant.ClockFormat),
		CancellationHours: detail.BusinessCancellationHours,
	}

	if baseURL != constant.Empty && detail.BusinessSlug != constant.Empty {
		data.BookingURL = baseURL + "/" + detail.BusinessSlug
	}

	var buf bytes.Buffer
	if err := c.body.Execute(&buf, data); err != nil {
		return rendered{}, fmt.Errorf("failed to render %s template: %w", kind, err)
	}

	return rendered{
		subject: fmt.Sprintf(c.subject, detail.BusinessName),
		html:    buf.String(),
	}, nil
}
