package services

import (
	"errors"

	"contact-intake/pkg/models"
	"contact-intake/pkg/utils"
)

// Validation errors. The honeypot shares the generic wording on purpose so a
// bot cannot tell it was caught.
var (
	ErrUnableToProcess = errors.New("unable to process submission")
	ErrMissingRequired = errors.New("first name, last name, and email are required")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// NormalizeInput runs every field through utils.CleanText.
func NormalizeInput(in models.SubmissionInput) models.SubmissionInput {
	return models.SubmissionInput{
		FirstName:      utils.CleanText(in.FirstName),
		LastName:       utils.CleanText(in.LastName),
		Email:          utils.CleanText(in.Email),
		Phone:          utils.CleanText(in.Phone),
		CareerStage:    utils.CleanText(in.CareerStage),
		Sport:          utils.CleanText(in.Sport),
		Message:        utils.CleanText(in.Message),
		Referral:       utils.CleanText(in.Referral),
		Website:        utils.CleanText(in.Website),
		TurnstileToken: utils.CleanText(in.TurnstileToken),
	}
}

// ValidateSubmission normalizes the input and checks it. The order is fixed:
// honeypot, then required fields, then the email format.
func ValidateSubmission(in models.SubmissionInput) (models.SubmissionInput, error) {
	in = NormalizeInput(in)

	if in.Website != "" {
		return in, ErrUnableToProcess
	}
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return in, ErrMissingRequired
	}
	if !utils.IsValidEmail(in.Email) {
		return in, ErrInvalidEmail
	}
	return in, nil
}
