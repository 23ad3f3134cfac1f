package form

// Interest form field names. Email and phone reuse the wizard's field keys.
const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldCompany   Field = "company"
	FieldMessage   Field = "message"
)

// InterestDraft holds the short-form demo request values.
type InterestDraft struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Phone     string
	Message   string
}

// ValidateInterest checks the interest form. Phone only needs to be present;
// the short form never formats it. Message is optional.
func ValidateInterest(d InterestDraft) Errors {
	errs := Errors{}
	if blank(d.FirstName) {
		errs[FieldFirstName] = "First name is required"
	}
	if blank(d.LastName) {
		errs[FieldLastName] = "Last name is required"
	}
	if blank(d.Email) {
		errs[FieldEmail] = "Email is required"
	} else if !ValidEmail(d.Email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
	if blank(d.Company) {
		errs[FieldCompany] = "Company is required"
	}
	if blank(d.Phone) {
		errs[FieldPhone] = "Phone number is required"
	}
	return errs
}
