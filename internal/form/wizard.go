package form

import (
	"context"

	"github.com/inspectana/leadgen/internal/model"
)

// State is the wizard's lifecycle position.
type State string

const (
	StateStep1      State = "step1"
	StateStep2      State = "step2"
	StateStep3      State = "step3"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Submitter runs the submission pipeline for a completed draft.
type Submitter interface {
	SubmitInspection(ctx context.Context, d Draft) (*model.InspectionRequest, error)
}

// Wizard drives the three-step inspection request form. A wizard instance
// owns its draft exclusively; all methods are called from a single
// event-handling goroutine.
type Wizard struct {
	submitter Submitter

	step       Step
	draft      Draft
	errors     Errors
	submitting bool
	submitted  bool
	submitErr  string
	record     *model.InspectionRequest
}

// NewWizard returns a wizard positioned at step 1 with an empty draft.
func NewWizard(s Submitter) *Wizard {
	w := &Wizard{submitter: s}
	w.Open()
	return w
}

// Open resets the wizard unconditionally: step 1, empty draft, no errors.
// Called when the hosting dialog opens, regardless of prior state.
func (w *Wizard) Open() {
	w.step = StepIdentity
	w.draft = Draft{}
	w.errors = Errors{}
	w.submitting = false
	w.submitted = false
	w.submitErr = ""
	w.record = nil
}

// Close discards the draft. A close during an in-flight submission is
// ignored; the submission itself is never cancelled.
func (w *Wizard) Close() {
	if w.submitting {
		return
	}
	w.Open()
}

// State reports the current lifecycle state.
func (w *Wizard) State() State {
	switch {
	case w.submitted:
		return StateSubmitted
	case w.submitting:
		return StateSubmitting
	case w.step == StepSelection:
		return StateStep2
	case w.step == StepInsurance:
		return StateStep3
	default:
		return StateStep1
	}
}

// Step returns the current step number.
func (w *Wizard) Step() Step { return w.step }

// Draft returns a copy of the current field values.
func (w *Wizard) Draft() Draft { return w.draft }

// Errors returns the error map from the last advance or submit attempt.
func (w *Wizard) Errors() Errors { return w.errors }

// SubmitError returns the user-facing message from the last failed
// submission, or "" if the last attempt succeeded or none was made.
func (w *Wizard) SubmitError() string { return w.submitErr }

// Record returns the stored submission after a successful submit.
func (w *Wizard) Record() *model.InspectionRequest { return w.record }

// SetField updates one draft field. Phone fields are re-formatted for
// display from their stripped digits. Any standing error for the field is
// cleared immediately; the step is not re-validated until the next advance.
func (w *Wizard) SetField(f Field, v string) {
	if w.submitting || w.submitted {
		return
	}
	if IsPhoneField(f) {
		v = FormatPhone(v)
	}
	w.draft.Set(f, v)
	delete(w.errors, f)
}

// Next validates the current step and advances if it passes, staying put and
// publishing the error map otherwise. Reports whether the step advanced.
func (w *Wizard) Next() bool {
	if w.submitting || w.submitted || w.step >= TotalSteps {
		return false
	}
	errs := ValidateStep(w.step, w.draft)
	w.errors = errs
	if len(errs) > 0 {
		return false
	}
	w.step++
	return true
}

// Previous moves back one step without validating, clamped at step 1.
func (w *Wizard) Previous() {
	if w.submitting || w.submitted {
		return
	}
	if w.step > StepIdentity {
		w.step--
	}
}

// Submit validates the final step and runs the submission pipeline. On
// success the wizard is terminal at StateSubmitted. On any failure it
// returns to StateStep3 with the submitting flag cleared so the user can
// retry, and SubmitError carries the user-facing message.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.submitting || w.submitted || w.step != StepInsurance {
		return nil
	}
	errs := ValidateStep(StepInsurance, w.draft)
	w.errors = errs
	if len(errs) > 0 {
		return nil
	}

	w.submitting = true
	w.submitErr = ""

	rec, err := w.submitter.SubmitInspection(ctx, w.draft)
	w.submitting = false
	if err != nil {
		w.submitErr = err.Error()
		return err
	}

	w.submitted = true
	w.record = rec
	return nil
}
