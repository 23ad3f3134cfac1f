package form

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectana/leadgen/internal/model"
)

// fakeSubmitter records the draft it receives and returns a canned result.
type fakeSubmitter struct {
	got   *Draft
	rec   *model.InspectionRequest
	err   error
	calls int
}

func (f *fakeSubmitter) SubmitInspection(_ context.Context, d Draft) (*model.InspectionRequest, error) {
	f.calls++
	f.got = &d
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		f.rec = &model.InspectionRequest{ID: "rec-1", CreatedAt: time.Now().UTC()}
	}
	return f.rec, nil
}

func fillStep(w *Wizard, d Draft, step Step) {
	for _, f := range StepFields(step) {
		w.SetField(f, d.Get(f))
	}
}

func TestWizard_HappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewWizard(sub)
	d := validDraft()

	assert.Equal(t, StateStep1, w.State())
	fillStep(w, d, StepIdentity)
	require.True(t, w.Next())
	assert.Equal(t, StateStep2, w.State())

	fillStep(w, d, StepSelection)
	require.True(t, w.Next())
	assert.Equal(t, StateStep3, w.State())

	fillStep(w, d, StepInsurance)
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, StateSubmitted, w.State())
	assert.Equal(t, 1, sub.calls)
	require.NotNil(t, w.Record())
	assert.Equal(t, "rec-1", w.Record().ID)
}

func TestWizard_NextBlockedByInvalidStep(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})
	d := validDraft()
	d.Email = ""
	fillStep(w, d, StepIdentity)

	assert.False(t, w.Next())
	assert.Equal(t, StepIdentity, w.Step())
	assert.Equal(t, "Email is required", w.Errors()[FieldEmail])
}

func TestWizard_EditClearsFieldError(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})
	w.Next() // empty step 1, everything errors

	assert.Contains(t, w.Errors(), FieldEmail)
	assert.Contains(t, w.Errors(), FieldCity)

	w.SetField(FieldEmail, "jane@example.com")

	// Only the edited field's entry is cleared; no re-validation happens.
	assert.NotContains(t, w.Errors(), FieldEmail)
	assert.Contains(t, w.Errors(), FieldCity)
}

func TestWizard_PhoneFieldFormattedOnEdit(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})

	w.SetField(FieldPhone, "2395550142")
	assert.Equal(t, "(239) 555-0142", w.Draft().Phone)

	w.SetField(FieldAgentPhone, "239555")
	assert.Equal(t, "(239) 555", w.Draft().AgentPhone)

	// Non-phone fields pass through untouched.
	w.SetField(FieldFullName, "Jane (Homeowner)")
	assert.Equal(t, "Jane (Homeowner)", w.Draft().FullName)
}

func TestWizard_PreviousNeverValidates(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})
	fillStep(w, validDraft(), StepIdentity)
	require.True(t, w.Next())

	// Step 2 is empty and invalid, but Previous still moves back.
	w.Previous()
	assert.Equal(t, StepIdentity, w.Step())

	// Clamped at step 1.
	w.Previous()
	assert.Equal(t, StepIdentity, w.Step())
}

func TestWizard_SubmitOnlyFromStepThree(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewWizard(sub)

	require.NoError(t, w.Submit(context.Background()))
	assert.Zero(t, sub.calls)
	assert.Equal(t, StateStep1, w.State())
}

func TestWizard_SubmitBlockedByInvalidStepThree(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewWizard(sub)
	d := validDraft()
	fillStep(w, d, StepIdentity)
	w.Next()
	fillStep(w, d, StepSelection)
	w.Next()
	// Step 3 left empty.

	require.NoError(t, w.Submit(context.Background()))
	assert.Zero(t, sub.calls)
	assert.Equal(t, StateStep3, w.State())
	assert.Contains(t, w.Errors(), FieldInsuranceCompany)
}

func TestWizard_SubmitFailureReturnsToStepThree(t *testing.T) {
	sub := &fakeSubmitter{err: eris.New("a request with this email was already submitted")}
	w := NewWizard(sub)
	d := validDraft()
	fillStep(w, d, StepIdentity)
	w.Next()
	fillStep(w, d, StepSelection)
	w.Next()
	fillStep(w, d, StepInsurance)

	err := w.Submit(context.Background())
	require.Error(t, err)

	// The machine must land back on a submittable step 3, not a stuck spinner.
	assert.Equal(t, StateStep3, w.State())
	assert.Contains(t, w.SubmitError(), "already submitted")

	// Retry after the backend recovers.
	sub.err = nil
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateSubmitted, w.State())
	assert.Empty(t, w.SubmitError())
}

func TestWizard_SubmittedIsTerminal(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewWizard(sub)
	d := validDraft()
	fillStep(w, d, StepIdentity)
	w.Next()
	fillStep(w, d, StepSelection)
	w.Next()
	fillStep(w, d, StepInsurance)
	require.NoError(t, w.Submit(context.Background()))

	// Further edits, navigation, and submits are ignored.
	w.SetField(FieldFullName, "Someone Else")
	w.Next()
	w.Previous()
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, StateSubmitted, w.State())
	assert.Equal(t, "Jane Homeowner", w.Draft().FullName)
	assert.Equal(t, 1, sub.calls)
}

func TestWizard_OpenResetsEverything(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})
	d := validDraft()
	fillStep(w, d, StepIdentity)
	w.Next()
	w.Next() // fails, publishes step-2 errors

	w.Open()

	assert.Equal(t, StateStep1, w.State())
	assert.Equal(t, Draft{}, w.Draft())
	assert.Empty(t, w.Errors())
}

func TestWizard_CloseDiscardsDraft(t *testing.T) {
	w := NewWizard(&fakeSubmitter{})
	w.SetField(FieldFullName, "Partial Entry")

	w.Close()

	assert.Equal(t, Draft{}, w.Draft())
	assert.Equal(t, StepIdentity, w.Step())
}

func TestWizard_SubmitterReceivesDisplayDraft(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewWizard(sub)
	d := validDraft()
	fillStep(w, d, StepIdentity)
	w.Next()
	fillStep(w, d, StepSelection)
	w.Next()
	fillStep(w, d, StepInsurance)
	require.NoError(t, w.Submit(context.Background()))

	// The wizard hands over the display-formatted draft; normalization to
	// digits-only is the pipeline's job.
	require.NotNil(t, sub.got)
	assert.Equal(t, "(239) 555-0142", sub.got.Phone)
	assert.Equal(t, "(239) 555-0188", sub.got.AgentPhone)
}
