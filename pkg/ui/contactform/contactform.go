// Package contactform submits the contact page form to the intake endpoint.
package contactform

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"contact-intake/pkg/models"
	"contact-intake/pkg/ui/dom"
	"contact-intake/pkg/utils"
)

const (
	PageClass     = "page-contact"
	FormID        = "contact-form"
	StatusID      = "contact-form-status"
	SubmitClass   = ".contact-submit"
	EndpointPath  = "/api/contact"
	SuccessClass  = "is-success"
	ErrorClass    = "is-error"
	StatusSending = "Sending..."
)

// Messages shown in the status line.
const (
	MsgIncomplete   = "Please complete first name, last name, and email."
	MsgInvalidEmail = "Please enter a valid email address."
	MsgSuccess      = "Thanks. Your message was received successfully."
	MsgFallback     = "Unable to send your message. Please try again."
	MsgUnexpected   = "Unexpected server response."
)

// State is where the form is in its submit cycle.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

// Form is the contact form controller.
type Form struct {
	form      dom.Element
	submit    dom.Element
	status    dom.Element
	endpoint  string
	transport Transport
	async     func(func())

	busy  atomic.Bool
	state atomic.Int32
}

// Option customizes a Form.
type Option func(*Form)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(f *Form) { f.transport = t }
}

// WithAsync replaces how the request is run off the event handler. The
// default starts a goroutine.
func WithAsync(run func(func())) Option {
	return func(f *Form) { f.async = run }
}

// Init binds the submit handler. It returns nil off the contact page or
// when the form is missing.
func Init(env dom.Env, opts ...Option) *Form {
	doc := env.Document
	body := doc.Body()
	if body == nil || !body.HasClass(PageClass) {
		return nil
	}
	form := doc.GetElementByID(FormID)
	if form == nil {
		return nil
	}

	f := &Form{
		form:     form,
		submit:   form.QuerySelector(SubmitClass),
		status:   doc.GetElementByID(StatusID),
		endpoint: strings.TrimRight(env.Window.Origin(), "/") + EndpointPath,
		async:    func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.transport == nil {
		f.transport = NewTransport()
	}

	form.AddEventListener("submit", f.onSubmit)
	return f
}

// State returns the current state.
func (f *Form) State() State { return State(f.state.Load()) }

// Payload reads the form fields, trimmed.
func (f *Form) Payload() models.SubmissionInput {
	get := func(name string) string { return strings.TrimSpace(f.form.FormValue(name)) }
	token := get(models.FieldTurnstileToken)
	if token == "" {
		token = get("cf-turnstile-response")
	}
	return models.SubmissionInput{
		FirstName:      get("first-name"),
		LastName:       get("last-name"),
		Email:          get("email"),
		Phone:          get("phone"),
		CareerStage:    get("career-stage"),
		Sport:          get("sport"),
		Message:        get("message"),
		Referral:       get("referral"),
		Website:        get("website"),
		TurnstileToken: token,
	}
}

func (f *Form) onSubmit(ev dom.Event) {
	ev.PreventDefault()
	if f.busy.Load() {
		return
	}

	payload := f.Payload()
	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" {
		f.setStatus(ErrorClass, MsgIncomplete)
		return
	}
	if !utils.IsValidEmail(payload.Email) {
		f.setStatus(ErrorClass, MsgInvalidEmail)
		return
	}

	if !f.busy.CompareAndSwap(false, true) {
		return
	}
	f.state.Store(int32(Submitting))
	f.setDisabled(true)
	f.setStatus("", StatusSending)

	f.async(func() {
		defer func() {
			f.busy.Store(false)
			f.setDisabled(false)
		}()
		if msg, ok := f.send(payload); ok {
			f.state.Store(int32(Succeeded))
			f.setStatus(SuccessClass, MsgSuccess)
			f.form.Reset()
		} else {
			f.state.Store(int32(Failed))
			f.setStatus(ErrorClass, msg)
		}
	})
}

// send posts the payload. On failure it returns the message to show.
func (f *Form) send(payload models.SubmissionInput) (string, bool) {
	status, body, err := f.transport.PostJSON(context.Background(), f.endpoint, payload)
	if err != nil {
		return MsgFallback, false
	}

	var resp models.ContactResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		resp = models.ContactResponse{OK: false, Error: MsgUnexpected}
	}
	if status < 200 || status > 299 || !resp.OK {
		if resp.Error != "" {
			return resp.Error, false
		}
		return MsgFallback, false
	}
	return "", true
}

func (f *Form) setStatus(class, msg string) {
	if f.status == nil {
		return
	}
	f.status.SetTextContent(msg)
	f.status.RemoveClass(SuccessClass, ErrorClass)
	if class != "" {
		f.status.AddClass(class)
	}
}

func (f *Form) setDisabled(disabled bool) {
	if f.submit != nil {
		f.submit.SetDisabled(disabled)
	}
}
