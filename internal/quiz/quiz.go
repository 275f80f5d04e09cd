// Package quiz holds the per-question answer and explanation state of an
// interactive quiz. State changes only through Apply.
package quiz

import "github.com/abhisek/edugenius/internal/content"

// Event is an input to the quiz state machine.
type Event interface {
	isEvent()
}

// SelectOption answers a question. It has no effect once the question is
// answered.
type SelectOption struct {
	QuestionID int
	Key        string
}

// ToggleExplanation flips the explanation of an answered question.
type ToggleExplanation struct {
	QuestionID int
}

func (SelectOption) isEvent()      {}
func (ToggleExplanation) isEvent() {}

// Quiz is an immutable snapshot of quiz state over one generated module.
type Quiz struct {
	content  *content.GeneratedContent
	selected map[int]string
	shown    map[int]bool
}

// New returns a quiz with every question unanswered.
func New(c *content.GeneratedContent) Quiz {
	return Quiz{
		content:  c,
		selected: map[int]string{},
		shown:    map[int]bool{},
	}
}

// Apply returns the state after ev. Events naming unknown questions or
// keys, repeated selections and toggles on unanswered questions leave the
// state unchanged.
func (q Quiz) Apply(ev Event) Quiz {
	switch ev := ev.(type) {
	case SelectOption:
		question, ok := q.content.Question(ev.QuestionID)
		if !ok || !question.HasKey(ev.Key) || q.Answered(ev.QuestionID) {
			return q
		}
		next := q.clone()
		next.selected[ev.QuestionID] = ev.Key
		return next

	case ToggleExplanation:
		if !q.Answered(ev.QuestionID) {
			return q
		}
		next := q.clone()
		next.shown[ev.QuestionID] = !q.shown[ev.QuestionID]
		return next
	}
	return q
}

func (q Quiz) clone() Quiz {
	next := Quiz{
		content:  q.content,
		selected: make(map[int]string, len(q.selected)+1),
		shown:    make(map[int]bool, len(q.shown)+1),
	}
	for k, v := range q.selected {
		next.selected[k] = v
	}
	for k, v := range q.shown {
		next.shown[k] = v
	}
	return next
}

// Content returns the module the quiz runs over.
func (q Quiz) Content() *content.GeneratedContent { return q.content }

// Selected returns the chosen key for a question.
func (q Quiz) Selected(id int) (string, bool) {
	k, ok := q.selected[id]
	return k, ok
}

// Answered reports whether a question has a selection.
func (q Quiz) Answered(id int) bool {
	_, ok := q.selected[id]
	return ok
}

// ExplanationVisible reports whether a question's explanation is shown.
func (q Quiz) ExplanationVisible(id int) bool {
	return q.shown[id]
}

// AnsweredCount returns how many questions have a selection.
func (q Quiz) AnsweredCount() int { return len(q.selected) }

// Len returns the number of questions.
func (q Quiz) Len() int {
	if q.content == nil {
		return 0
	}
	return len(q.content.Questions)
}
