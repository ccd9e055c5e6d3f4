package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ruanfdev/cleanbreak-backend/internal/normalization"
)

//go:embed quiz_questions.yaml
var quizQuestionsYAML []byte

type QuizOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type QuizQuestion struct {
	Field   string       `yaml:"field" json:"field"`
	Prompt  string       `yaml:"prompt" json:"prompt"`
	Options []QuizOption `yaml:"options" json:"options"`
}

// QuizCatalog is the fixed, ordered onboarding questionnaire. It is loaded
// once at startup from the embedded YAML definition.
type QuizCatalog struct {
	Questions []QuizQuestion `yaml:"questions" json:"questions"`
}

func LoadQuizCatalog() (*QuizCatalog, error) {
	var catalog QuizCatalog
	if err := yaml.Unmarshal(quizQuestionsYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse quiz question catalog: %w", err)
	}
	if len(catalog.Questions) == 0 {
		return nil, fmt.Errorf("quiz question catalog is empty")
	}
	for _, q := range catalog.Questions {
		if q.Field == "" || len(q.Options) == 0 {
			return nil, fmt.Errorf("quiz question %q has no field or options", q.Prompt)
		}
	}
	return &catalog, nil
}

func (qc *QuizCatalog) question(field string) *QuizQuestion {
	for i := range qc.Questions {
		if qc.Questions[i].Field == field {
			return &qc.Questions[i]
		}
	}
	return nil
}

// ValidateAnswers checks that every question has an answer and that every
// answer is one of the question's options. Unknown fields are rejected.
func (qc *QuizCatalog) ValidateAnswers(answers map[string]string) error {
	for field := range answers {
		if qc.question(field) == nil {
			return fmt.Errorf("unknown quiz field %q", field)
		}
	}
	for _, q := range qc.Questions {
		answer := normalization.ParseInputString(answers[q.Field])
		if answer == "" {
			return fmt.Errorf("question %q is unanswered", q.Field)
		}
		valid := false
		for _, opt := range q.Options {
			if opt.Value == answer {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("answer %q is not an option for %q", answer, q.Field)
		}
	}
	return nil
}

// QuizFlow is the strictly linear cursor over the catalog: one step at a
// time, no advancing past an unanswered question.
type QuizFlow struct {
	catalog *QuizCatalog
	step    int
	answers map[string]string
}

func NewQuizFlow(catalog *QuizCatalog) *QuizFlow {
	return &QuizFlow{
		catalog: catalog,
		answers: make(map[string]string),
	}
}

func (qf *QuizFlow) Current() QuizQuestion {
	return qf.catalog.Questions[qf.step]
}

func (qf *QuizFlow) Step() int {
	return qf.step
}

func (qf *QuizFlow) IsLastStep() bool {
	return qf.step == len(qf.catalog.Questions)-1
}

// CanProceed reports whether the current question has a non-empty answer,
// which is what enables the next/finish control.
func (qf *QuizFlow) CanProceed() bool {
	return qf.answers[qf.Current().Field] != ""
}

func (qf *QuizFlow) Answer(value string) error {
	value = normalization.ParseInputString(value)
	q := qf.Current()
	for _, opt := range q.Options {
		if opt.Value == value {
			qf.answers[q.Field] = value
			return nil
		}
	}
	return fmt.Errorf("answer %q is not an option for %q", value, q.Field)
}

func (qf *QuizFlow) Next() error {
	if !qf.CanProceed() {
		return fmt.Errorf("question %q is unanswered", qf.Current().Field)
	}
	if qf.IsLastStep() {
		return fmt.Errorf("already at the last question")
	}
	qf.step++
	return nil
}

func (qf *QuizFlow) Back() {
	if qf.step > 0 {
		qf.step--
	}
}

// Complete reports whether every question has an answer.
func (qf *QuizFlow) Complete() bool {
	return qf.catalog.ValidateAnswers(qf.answers) == nil
}

func (qf *QuizFlow) Answers() map[string]string {
	out := make(map[string]string, len(qf.answers))
	for k, v := range qf.answers {
		out[k] = v
	}
	return out
}
