package form

import "github.com/inspectana/leadgen/internal/model"

// Step identifies one of the three wizard pages.
type Step int

const (
	StepIdentity  Step = 1 // contact details and property address
	StepSelection Step = 2 // inspection type
	StepInsurance Step = 3 // insurance and agent details
	TotalSteps         = 3
)

// Errors maps a field to its current validation message. An absent key means
// the field is valid as far as the last advance attempt determined.
type Errors map[Field]string

// StepFields returns the fields owned by a step, in display order. Fields of
// other steps are never validated while this step is active.
func StepFields(step Step) []Field {
	switch step {
	case StepIdentity:
		return []Field{FieldFullName, FieldEmail, FieldPhone, FieldStreet, FieldCity, FieldState, FieldZipCode}
	case StepSelection:
		return []Field{FieldInspectionType}
	case StepInsurance:
		return []Field{FieldInsuranceCompany, FieldPolicyNumber, FieldAgencyName, FieldAgentName, FieldAgentPhone, FieldAgentEmail}
	}
	return nil
}

// ValidateStep checks the named step's fields against the draft and returns
// the resulting error map. An empty map means the step is valid. The draft
// is never mutated.
func ValidateStep(step Step, d Draft) Errors {
	errs := Errors{}

	switch step {
	case StepIdentity:
		if blank(d.FullName) {
			errs[FieldFullName] = "Full name is required"
		}
		if blank(d.Email) {
			errs[FieldEmail] = "Email is required"
		} else if !ValidEmail(d.Email) {
			errs[FieldEmail] = "Please enter a valid email address"
		}
		if blank(d.Phone) {
			errs[FieldPhone] = "Phone number is required"
		} else if !ValidPhone(d.Phone) {
			errs[FieldPhone] = "Please enter a valid 10-digit phone number"
		}
		if blank(d.Street) {
			errs[FieldStreet] = "Street address is required"
		}
		if blank(d.City) {
			errs[FieldCity] = "City is required"
		}
		if blank(d.State) {
			errs[FieldState] = "State is required"
		}
		if blank(d.ZipCode) {
			errs[FieldZipCode] = "ZIP code is required"
		} else if !ValidZip(d.ZipCode) {
			errs[FieldZipCode] = "Please enter a valid ZIP code"
		}

	case StepSelection:
		if blank(d.InspectionType) {
			errs[FieldInspectionType] = "Please select an inspection type"
		} else if !model.ValidInspectionType(d.InspectionType) {
			errs[FieldInspectionType] = "Please select an inspection type"
		}

	case StepInsurance:
		if blank(d.InsuranceCompany) {
			errs[FieldInsuranceCompany] = "Insurance company is required"
		}
		// Policy number is optional.
		if blank(d.AgencyName) {
			errs[FieldAgencyName] = "Agency name is required"
		}
		if blank(d.AgentName) {
			errs[FieldAgentName] = "Agent name is required"
		}
		if blank(d.AgentPhone) {
			errs[FieldAgentPhone] = "Agent phone is required"
		} else if !ValidPhone(d.AgentPhone) {
			errs[FieldAgentPhone] = "Please enter a valid 10-digit phone number"
		}
		if blank(d.AgentEmail) {
			errs[FieldAgentEmail] = "Agent email is required"
		} else if !ValidEmail(d.AgentEmail) {
			errs[FieldAgentEmail] = "Please enter a valid email address"
		}
	}

	return errs
}

// ValidateAll validates every step and merges the results. Used by the HTTP
// path, which receives the whole draft at once.
func ValidateAll(d Draft) Errors {
	errs := Errors{}
	for step := StepIdentity; step <= StepInsurance; step++ {
		for f, msg := range ValidateStep(step, d) {
			errs[f] = msg
		}
	}
	return errs
}
