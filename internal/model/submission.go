// Package model defines the persisted record types for lead submissions.
package model

import "time"

// SubmissionKind discriminates the two lead-capture flows.
type SubmissionKind string

const (
	KindInspectionRequest SubmissionKind = "inspection_request"
	KindInterestForm      SubmissionKind = "interest_form"
)

// InspectionType is one of the fixed inspection offerings.
type InspectionType string

const (
	InspectionFourPoint      InspectionType = "4 Point Inspection"
	InspectionWindMitigation InspectionType = "Wind Mitigation"
	InspectionRoof           InspectionType = "Roof Inspection"
	InspectionPostClaim      InspectionType = "Post Claim Inspection"
)

// InspectionTypes lists the selectable inspection offerings in display order.
var InspectionTypes = []InspectionType{
	InspectionFourPoint,
	InspectionWindMitigation,
	InspectionRoof,
	InspectionPostClaim,
}

// ValidInspectionType reports whether s names a known inspection offering.
func ValidInspectionType(s string) bool {
	for _, t := range InspectionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// InspectionRequest is a stored three-step inspection request. Phone fields
// hold digits only; display formatting is stripped before persistence.
type InspectionRequest struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Street           string    `json:"street"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	InspectionType   string    `json:"inspection_type"`
	InsuranceCompany string    `json:"insurance_company"`
	PolicyNumber     string    `json:"policy_number,omitempty"`
	AgencyName       string    `json:"agency_name"`
	AgentName        string    `json:"agent_name"`
	AgentPhone       string    `json:"agent_phone"`
	AgentEmail       string    `json:"agent_email"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// InterestLead is a stored short-form demo request.
type InterestLead struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// USStates lists the two-letter state codes accepted by the identity step.
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// ValidState reports whether s is a recognized two-letter state code.
func ValidState(s string) bool {
	for _, st := range USStates {
		if st == s {
			return true
		}
	}
	return false
}
