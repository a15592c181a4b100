package models

import "contact-intake/pkg/utils"

// InputFromMap builds a SubmissionInput from a decoded JSON object, normalizing
// every field. Missing keys and non-string values become "".
func InputFromMap(raw map[string]any) SubmissionInput {
	return SubmissionInput{
		FirstName:      utils.CleanText(raw[FieldFirstName]),
		LastName:       utils.CleanText(raw[FieldLastName]),
		Email:          utils.CleanText(raw[FieldEmail]),
		Phone:          utils.CleanText(raw[FieldPhone]),
		CareerStage:    utils.CleanText(raw[FieldCareerStage]),
		Sport:          utils.CleanText(raw[FieldSport]),
		Message:        utils.CleanText(raw[FieldMessage]),
		Referral:       utils.CleanText(raw[FieldReferral]),
		Website:        utils.CleanText(raw[FieldWebsite]),
		TurnstileToken: utils.CleanText(raw[FieldTurnstileToken]),
	}
}
