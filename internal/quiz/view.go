package quiz

import "github.com/abhisek/edugenius/internal/content"

// Mark is how an option is rendered.
type Mark int

const (
	MarkNeutral   Mark = iota // question unanswered
	MarkCorrect               // the correct option, once answered
	MarkIncorrect             // the selected option when it is wrong
	MarkDimmed                // every other option, once answered
)

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkIncorrect:
		return "incorrect"
	case MarkDimmed:
		return "dimmed"
	}
	return "neutral"
}

// Toggle labels for the explanation button.
const (
	LabelShowExplanation = "Show Analysis & Explanation"
	LabelHideExplanation = "Hide Analysis"
)

// OptionView is one option ready for rendering.
type OptionView struct {
	content.Option
	Mark     Mark
	Selected bool
}

// QuestionView is one question ready for rendering.
type QuestionView struct {
	content.Question
	Number             int // 1-based display position
	Answered           bool
	SelectedKey        string
	IsCorrect          bool
	ExplanationVisible bool
	Options            []OptionView
}

// ToggleLabel returns the label of the explanation button.
func (v QuestionView) ToggleLabel() string {
	if v.ExplanationVisible {
		return LabelHideExplanation
	}
	return LabelShowExplanation
}

// MarkOption computes the rendering mark of one option.
func (q Quiz) MarkOption(question content.Question, key string) Mark {
	selected, answered := q.Selected(question.ID)
	switch {
	case !answered:
		return MarkNeutral
	case key == question.CorrectAnswer:
		return MarkCorrect
	case key == selected:
		return MarkIncorrect
	default:
		return MarkDimmed
	}
}

// ViewQuestion builds the render model of a single question.
func (q Quiz) ViewQuestion(number int, question content.Question) QuestionView {
	selected, answered := q.Selected(question.ID)
	v := QuestionView{
		Question:           question,
		Number:             number,
		Answered:           answered,
		SelectedKey:        selected,
		IsCorrect:          answered && selected == question.CorrectAnswer,
		ExplanationVisible: answered && q.ExplanationVisible(question.ID),
		Options:            make([]OptionView, len(question.Options)),
	}
	for i, o := range question.Options {
		v.Options[i] = OptionView{
			Option:   o,
			Mark:     q.MarkOption(question, o.Key),
			Selected: answered && o.Key == selected,
		}
	}
	return v
}

// View builds the render model of every question, in order.
func (q Quiz) View() []QuestionView {
	if q.content == nil {
		return nil
	}
	out := make([]QuestionView, len(q.content.Questions))
	for i, question := range q.content.Questions {
		out[i] = q.ViewQuestion(i+1, question)
	}
	return out
}
