// Package notify turns stored submissions into Resend email notifications.
package notify

import (
	"bytes"
	"context"
	"encoding/csv"
	"html/template"
	"sort"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"

	"github.com/inspectana/leadgen/internal/model"
	"github.com/inspectana/leadgen/pkg/resend"
)

// Notifier sends a notification email for a submission and returns the
// provider's email ID.
type Notifier interface {
	NotifyInspectionRequest(ctx context.Context, req model.InspectionRequest) (string, error)
	NotifyInterestLead(ctx context.Context, lead model.InterestLead) (string, error)
	// NotifyRaw handles relayed payloads whose fields are not known ahead of
	// time. Rows are emitted in sorted key order.
	NotifyRaw(ctx context.Context, kind model.SubmissionKind, data map[string]string) (string, error)
}

// Service implements Notifier on top of the Resend client.
type Service struct {
	client    resend.Client
	from      string
	recipient string
}

// NewService creates a notification service. from and recipient are the
// configured sender identity and destination inbox.
func NewService(client resend.Client, from, recipient string) *Service {
	return &Service{client: client, from: from, recipient: recipient}
}

// fieldRow is one labeled value in the notification body and CSV attachment.
type fieldRow struct {
	Label string
	Value string
}

var bodyTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
	<h2>{{.Title}}</h2>
	<table cellpadding="6" cellspacing="0" border="0">
	{{- range .Rows}}
		<tr>
			<td style="font-weight: bold; vertical-align: top;">{{.Label}}</td>
			<td>{{.Value}}</td>
		</tr>
	{{- end}}
	</table>
</body>
</html>
`))

func (s *Service) NotifyInspectionRequest(ctx context.Context, req model.InspectionRequest) (string, error) {
	rows := []fieldRow{
		{"Full Name", req.FullName},
		{"Email", req.Email},
		{"Phone", req.Phone},
		{"Street", req.Street},
		{"City", req.City},
		{"State", req.State},
		{"Zip Code", req.ZipCode},
		{"Inspection Type", req.InspectionType},
		{"Insurance Company", req.InsuranceCompany},
		{"Policy Number", req.PolicyNumber},
		{"Agency Name", req.AgencyName},
		{"Agent Name", req.AgentName},
		{"Agent Phone", req.AgentPhone},
		{"Agent Email", req.AgentEmail},
	}
	subject := "New Inspection Request from " + req.FullName
	return s.send(ctx, subject, "New Inspection Request", rows)
}

func (s *Service) NotifyInterestLead(ctx context.Context, lead model.InterestLead) (string, error) {
	rows := []fieldRow{
		{"First Name", lead.FirstName},
		{"Last Name", lead.LastName},
		{"Email", lead.Email},
		{"Company", lead.Company},
		{"Phone", lead.Phone},
		{"Message", lead.Message},
	}
	subject := "New Interest Form Submission from " + lead.FirstName + " " + lead.LastName
	return s.send(ctx, subject, "New Interest Form Submission", rows)
}

func (s *Service) NotifyRaw(ctx context.Context, kind model.SubmissionKind, data map[string]string) (string, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]fieldRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, fieldRow{Label: labelize(k), Value: data[k]})
	}

	title := "New Interest Form Submission"
	name := strings.TrimSpace(data["firstName"] + " " + data["lastName"])
	if kind == model.KindInspectionRequest {
		title = "New Inspection Request"
		name = data["fullName"]
	}
	subject := title
	if name != "" {
		subject += " from " + name
	}
	return s.send(ctx, subject, title, rows)
}

func (s *Service) send(ctx context.Context, subject, title string, rows []fieldRow) (string, error) {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, struct {
		Title string
		Rows  []fieldRow
	}{Title: title, Rows: rows}); err != nil {
		return "", eris.Wrap(err, "notify: render body")
	}

	attachment, err := csvAttachment(rows)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Send(ctx, resend.SendRequest{
		From:    s.from,
		To:      []string{s.recipient},
		Subject: subject,
		HTML:    body.String(),
		Attachments: []resend.Attachment{
			{Filename: "submission.csv", Content: attachment},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "notify: send email")
	}
	return resp.ID, nil
}

// csvAttachment renders rows as a two-column Field,Value CSV.
func csvAttachment(rows []fieldRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, eris.Wrap(err, "notify: write csv header")
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Label, row.Value}); err != nil {
			return nil, eris.Wrap(err, "notify: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, eris.Wrap(err, "notify: flush csv")
	}
	return buf.Bytes(), nil
}

// labelize converts a camelCase field key to a spaced title, e.g.
// "insuranceCompany" becomes "Insurance Company".
func labelize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
