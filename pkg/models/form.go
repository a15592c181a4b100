package models

// Field names of the contact form JSON body.
const (
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldCareerStage    = "careerStage"
	FieldSport          = "sport"
	FieldMessage        = "message"
	FieldReferral       = "referral"
	FieldWebsite        = "website"
	FieldTurnstileToken = "turnstileToken"
)

// SubmissionInput is the contact form as received from the browser. Values are
// untrusted until they have been through services.ValidateSubmission.
type SubmissionInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CareerStage    string `json:"careerStage"`
	Sport          string `json:"sport"`
	Message        string `json:"message"`
	Referral       string `json:"referral"`
	Website        string `json:"website"` // honeypot
	TurnstileToken string `json:"turnstileToken"`
}

// RequestMeta carries the best-effort request details stored with a submission.
type RequestMeta struct {
	Source    string
	UserAgent string
}

// SubmissionRecord is what gets persisted for one accepted submission.
type SubmissionRecord struct {
	SubmissionID string `json:"submissionId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CareerStage  string `json:"careerStage"`
	Sport        string `json:"sport"`
	Message      string `json:"message"`
	Referral     string `json:"referral"`
	SubmittedAt  string `json:"submittedAt"`
	Source       string `json:"source"`
	UserAgent    string `json:"userAgent"`
}

// SubmissionResult describes where an accepted submission ended up.
type SubmissionResult struct {
	ID   string
	Path string
	URL  string
}

// ContactResponse is the JSON envelope returned by the contact endpoint.
type ContactResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Path  string `json:"path,omitempty"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}
