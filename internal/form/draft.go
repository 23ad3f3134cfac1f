package form

import "strings"

// Field names a single draft field. The values double as error-map keys and
// as the JSON field names the API reports validation errors under.
type Field string

const (
	FieldFullName         Field = "fullName"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldStreet           Field = "street"
	FieldCity             Field = "city"
	FieldState            Field = "state"
	FieldZipCode          Field = "zipCode"
	FieldInspectionType   Field = "inspectionType"
	FieldInsuranceCompany Field = "insuranceCompany"
	FieldPolicyNumber     Field = "policyNumber"
	FieldAgencyName       Field = "agencyName"
	FieldAgentName        Field = "agentName"
	FieldAgentPhone       Field = "agentPhone"
	FieldAgentEmail       Field = "agentEmail"
)

// Draft holds the in-progress form values. All fields are strings; phone
// fields carry display formatting until submission strips them.
type Draft struct {
	FullName         string
	Email            string
	Phone            string
	Street           string
	City             string
	State            string
	ZipCode          string
	InspectionType   string
	InsuranceCompany string
	PolicyNumber     string
	AgencyName       string
	AgentName        string
	AgentPhone       string
	AgentEmail       string
}

// Get returns the current value of the named field.
func (d *Draft) Get(f Field) string {
	switch f {
	case FieldFullName:
		return d.FullName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldStreet:
		return d.Street
	case FieldCity:
		return d.City
	case FieldState:
		return d.State
	case FieldZipCode:
		return d.ZipCode
	case FieldInspectionType:
		return d.InspectionType
	case FieldInsuranceCompany:
		return d.InsuranceCompany
	case FieldPolicyNumber:
		return d.PolicyNumber
	case FieldAgencyName:
		return d.AgencyName
	case FieldAgentName:
		return d.AgentName
	case FieldAgentPhone:
		return d.AgentPhone
	case FieldAgentEmail:
		return d.AgentEmail
	}
	return ""
}

// Set stores a value into the named field. Unknown fields are ignored.
func (d *Draft) Set(f Field, v string) {
	switch f {
	case FieldFullName:
		d.FullName = v
	case FieldEmail:
		d.Email = v
	case FieldPhone:
		d.Phone = v
	case FieldStreet:
		d.Street = v
	case FieldCity:
		d.City = v
	case FieldState:
		d.State = v
	case FieldZipCode:
		d.ZipCode = v
	case FieldInspectionType:
		d.InspectionType = v
	case FieldInsuranceCompany:
		d.InsuranceCompany = v
	case FieldPolicyNumber:
		d.PolicyNumber = v
	case FieldAgencyName:
		d.AgencyName = v
	case FieldAgentName:
		d.AgentName = v
	case FieldAgentPhone:
		d.AgentPhone = v
	case FieldAgentEmail:
		d.AgentEmail = v
	}
}

// IsPhoneField reports whether f carries a display-formatted phone number.
func IsPhoneField(f Field) bool {
	return f == FieldPhone || f == FieldAgentPhone
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
