// Package submit runs the validate, persist, notify pipeline shared by the
// wizard and the HTTP handlers.
package submit

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inspectana/leadgen/internal/form"
	"github.com/inspectana/leadgen/internal/model"
	"github.com/inspectana/leadgen/internal/notify"
	"github.com/inspectana/leadgen/internal/store"
)

// ErrDuplicateSubmission carries the user-facing message for a repeat email.
var ErrDuplicateSubmission = eris.New("a request with this email was already submitted")

// ErrSubmissionFailed is the user-facing message for any other persistence
// failure. The underlying cause is logged, never shown.
var ErrSubmissionFailed = eris.New("something went wrong submitting your request, please try again")

// ValidationError reports per-field validation failures for a submission that
// never reached the store.
type ValidationError struct {
	Fields form.Errors
}

func (e *ValidationError) Error() string {
	return "submit: validation failed"
}

// Pipeline validates submissions, persists them, and kicks off the email
// notification. It implements form.Submitter.
type Pipeline struct {
	store    store.Store
	notifier notify.Notifier
}

// NewPipeline creates a submission pipeline. notifier may be nil, in which
// case submissions persist without sending email.
func NewPipeline(st store.Store, notifier notify.Notifier) *Pipeline {
	return &Pipeline{store: st, notifier: notifier}
}

// SubmitInspection validates the full draft, persists it with phone numbers
// stripped to digits, and fires the notification email in the background.
func (p *Pipeline) SubmitInspection(ctx context.Context, d form.Draft) (*model.InspectionRequest, error) {
	if errs := form.ValidateAll(d); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	req := model.InspectionRequest{
		FullName:         d.FullName,
		Email:            d.Email,
		Phone:            form.StripPhone(d.Phone),
		Street:           d.Street,
		City:             d.City,
		State:            d.State,
		ZipCode:          d.ZipCode,
		InspectionType:   d.InspectionType,
		InsuranceCompany: d.InsuranceCompany,
		PolicyNumber:     d.PolicyNumber,
		AgencyName:       d.AgencyName,
		AgentName:        d.AgentName,
		AgentPhone:       form.StripPhone(d.AgentPhone),
		AgentEmail:       d.AgentEmail,
	}

	created, err := p.store.CreateInspectionRequest(ctx, req)
	if err != nil {
		if eris.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrDuplicateSubmission
		}
		zap.L().Error("persist inspection request", zap.Error(err))
		return nil, ErrSubmissionFailed
	}

	zap.L().Info("inspection request stored",
		zap.String("id", created.ID),
		zap.String("inspection_type", created.InspectionType))

	p.notifyAsync(ctx, created.ID, func(ctx context.Context) (string, error) {
		return p.notifier.NotifyInspectionRequest(ctx, *created)
	})
	return created, nil
}

// SubmitInterest validates and persists a short-form demo request.
func (p *Pipeline) SubmitInterest(ctx context.Context, d form.InterestDraft) (*model.InterestLead, error) {
	if errs := form.ValidateInterest(d); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	lead := model.InterestLead{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Company:   d.Company,
		Phone:     d.Phone,
		Message:   d.Message,
	}

	created, err := p.store.CreateInterestLead(ctx, lead)
	if err != nil {
		if eris.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrDuplicateSubmission
		}
		zap.L().Error("persist interest lead", zap.Error(err))
		return nil, ErrSubmissionFailed
	}

	zap.L().Info("interest lead stored", zap.String("id", created.ID))

	p.notifyAsync(ctx, created.ID, func(ctx context.Context) (string, error) {
		return p.notifier.NotifyInterestLead(ctx, *created)
	})
	return created, nil
}

// notifyAsync sends the notification email in a detached goroutine. Delivery
// failures are logged and never surfaced; the submission already succeeded.
func (p *Pipeline) notifyAsync(ctx context.Context, submissionID string, send func(context.Context) (string, error)) {
	if p.notifier == nil {
		return
	}
	go func(ctx context.Context) {
		emailID, err := send(ctx)
		if err != nil {
			zap.L().Warn("notification email failed",
				zap.String("submission_id", submissionID),
				zap.Error(err))
			return
		}
		zap.L().Info("notification email sent",
			zap.String("submission_id", submissionID),
			zap.String("email_id", emailID))
	}(context.WithoutCancel(ctx))
}
