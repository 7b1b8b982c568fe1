package ngolaw

import "strings"

// Question identifies one coded legal question in the NGO-law dataset.
type Question string

// The closed set of law questions the pipeline understands.
const (
	// QuestionRegistration: does the law require NGOs to register?
	QuestionRegistration Question = "registration"

	// QuestionRegistrationBurden: is the registration process burdensome?
	QuestionRegistrationBurden Question = "reg-burden"

	// QuestionForeignFunding: does the law restrict foreign funding?
	QuestionForeignFunding Question = "foreign-funding"

	// QuestionAdvocacy: does the law bar policy advocacy by NGOs?
	QuestionAdvocacy Question = "advocacy"
)

// Questions returns the known questions in stable presentation order.
func Questions() []Question {
	return []Question{
		QuestionRegistration,
		QuestionRegistrationBurden,
		QuestionForeignFunding,
		QuestionAdvocacy,
	}
}

// Description returns a short human-readable label for the question.
func (question Question) Description() string {
	switch question {
	case QuestionRegistration:
		return "registration required"
	case QuestionRegistrationBurden:
		return "burdensome registration"
	case QuestionForeignFunding:
		return "foreign funding restricted"
	case QuestionAdvocacy:
		return "policy advocacy barred"
	}
	return string(question)
}

// questionHeaders maps normalized sheet headers onto questions. Workbook
// exports vary in header wording; every variant seen so far lands here.
var questionHeaders = map[string]Question{
	"registration":               QuestionRegistration,
	"registration required":      QuestionRegistration,
	"reg burden":                 QuestionRegistrationBurden,
	"registration burden":        QuestionRegistrationBurden,
	"burdensome registration":    QuestionRegistrationBurden,
	"foreign funding":            QuestionForeignFunding,
	"foreign funding restricted": QuestionForeignFunding,
	"advocacy":                   QuestionAdvocacy,
	"policy advocacy":            QuestionAdvocacy,
	"political advocacy":         QuestionAdvocacy,
}

// questionForHeader resolves a raw sheet header to a question.
func questionForHeader(header string) (Question, bool) {
	question, ok := questionHeaders[normalizeHeader(header)]
	return question, ok
}

// normalizeHeader lowers the header and folds separators to single spaces.
func normalizeHeader(header string) string {
	lowered := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', '/':
			return ' '
		}
		return r
	}, strings.ToLower(header))
	return strings.Join(strings.Fields(lowered), " ")
}
