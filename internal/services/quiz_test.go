package services

import (
	"testing"
)

func mustCatalog(t *testing.T) *QuizCatalog {
	t.Helper()
	catalog, err := LoadQuizCatalog()
	if err != nil {
		t.Fatalf("LoadQuizCatalog: %v", err)
	}
	return catalog
}

func TestLoadQuizCatalog(t *testing.T) {
	catalog := mustCatalog(t)

	if len(catalog.Questions) != 4 {
		t.Fatalf("question count = %d, want 4", len(catalog.Questions))
	}
	wantFields := []string{"addiction_type", "addiction_duration", "main_trigger", "main_goal"}
	for i, want := range wantFields {
		if catalog.Questions[i].Field != want {
			t.Fatalf("question %d field = %q, want %q", i, catalog.Questions[i].Field, want)
		}
	}
}

func TestValidateAnswers(t *testing.T) {
	catalog := mustCatalog(t)

	full := map[string]string{
		"addiction_type":     "alcohol",
		"addiction_duration": "1-3",
		"main_trigger":       "stress",
		"main_goal":          "stop",
	}
	if err := catalog.ValidateAnswers(full); err != nil {
		t.Fatalf("ValidateAnswers(full): %v", err)
	}

	missing := map[string]string{
		"addiction_type": "alcohol",
		"main_trigger":   "stress",
		"main_goal":      "stop",
	}
	if err := catalog.ValidateAnswers(missing); err == nil {
		t.Fatal("ValidateAnswers with missing answer succeeded")
	}

	invalid := map[string]string{
		"addiction_type":     "alcohol",
		"addiction_duration": "1-3",
		"main_trigger":       "volcanoes",
		"main_goal":          "stop",
	}
	if err := catalog.ValidateAnswers(invalid); err == nil {
		t.Fatal("ValidateAnswers with invalid option succeeded")
	}

	unknown := map[string]string{
		"addiction_type":     "alcohol",
		"addiction_duration": "1-3",
		"main_trigger":       "stress",
		"main_goal":          "stop",
		"favorite_color":     "green",
	}
	if err := catalog.ValidateAnswers(unknown); err == nil {
		t.Fatal("ValidateAnswers with unknown field succeeded")
	}
}

func TestQuizFlowLinearSteps(t *testing.T) {
	flow := NewQuizFlow(mustCatalog(t))

	if flow.CanProceed() {
		t.Fatal("CanProceed on unanswered first question")
	}
	if err := flow.Next(); err == nil {
		t.Fatal("Next on unanswered question succeeded")
	}

	if err := flow.Answer("cigarette"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !flow.CanProceed() {
		t.Fatal("CanProceed false after answering")
	}
	if err := flow.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if flow.Step() != 1 {
		t.Fatalf("Step = %d, want 1", flow.Step())
	}

	// Back moves exactly one step and preserves the earlier answer.
	flow.Back()
	if flow.Step() != 0 {
		t.Fatalf("Step after Back = %d, want 0", flow.Step())
	}
	if !flow.CanProceed() {
		t.Fatal("answer lost after Back")
	}
	flow.Back()
	if flow.Step() != 0 {
		t.Fatalf("Back below zero: step = %d", flow.Step())
	}

	if err := flow.Answer("not-an-option"); err == nil {
		t.Fatal("Answer accepted a value outside the catalog")
	}
}

func TestQuizFlowComplete(t *testing.T) {
	flow := NewQuizFlow(mustCatalog(t))

	answers := []string{"games", "+5", "boredom", "reduce"}
	for i, a := range answers {
		if err := flow.Answer(a); err != nil {
			t.Fatalf("Answer(%q): %v", a, err)
		}
		if i < len(answers)-1 {
			if err := flow.Next(); err != nil {
				t.Fatalf("Next after %q: %v", a, err)
			}
		}
	}

	if !flow.IsLastStep() {
		t.Fatal("not at last step after answering all questions")
	}
	if err := flow.Next(); err == nil {
		t.Fatal("Next past the last step succeeded")
	}
	if !flow.Complete() {
		t.Fatal("Complete false with all questions answered")
	}

	got := flow.Answers()
	if got["addiction_type"] != "games" || got["main_goal"] != "reduce" {
		t.Fatalf("Answers = %v", got)
	}
}
