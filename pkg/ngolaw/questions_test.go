package ngolaw

import "testing"

func TestQuestionForHeader(t *testing.T) {
	tests := []struct {
		header string
		want   Question
		ok     bool
	}{
		{"Registration", QuestionRegistration, true},
		{"registration required", QuestionRegistration, true},
		{"Reg_Burden", QuestionRegistrationBurden, true},
		{"Burdensome Registration", QuestionRegistrationBurden, true},
		{"FOREIGN-FUNDING", QuestionForeignFunding, true},
		{"foreign funding restricted", QuestionForeignFunding, true},
		{"Political  Advocacy", QuestionAdvocacy, true},
		{"Notes", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := questionForHeader(tt.header)
		if ok != tt.ok || got != tt.want {
			t.Errorf("questionForHeader(%q): got (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foreign_Funding", "foreign funding"},
		{"reg-burden", "reg burden"},
		{"  Policy   Advocacy  ", "policy advocacy"},
		{"country.name", "country name"},
	}

	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuestionDescriptions(t *testing.T) {
	for _, question := range Questions() {
		if question.Description() == "" || question.Description() == string(question) {
			t.Errorf("Description(%s): got %q, want a human label", question, question.Description())
		}
	}
}
