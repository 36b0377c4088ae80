package question

// OptionCount is the fixed number of answer options every question carries.
const OptionCount = 4

// Bank size bounds enforced by the loader. A bank outside these bounds is
// rejected at load time, never silently truncated.
const (
	MinQuestions = 11
	MaxQuestions = 500
)

// Question is a single multi-select entry from the bank. Immutable once loaded.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"` // exactly OptionCount entries, none blank
	Correct []int    `json:"correct"` // sorted option numbers, each in 1..OptionCount
}

// CorrectOptionTexts returns the option texts for the correct answers,
// in option order.
func (q Question) CorrectOptionTexts() []string {
	texts := make([]string, 0, len(q.Correct))
	for _, n := range q.Correct {
		texts = append(texts, q.Options[n-1])
	}
	return texts
}

// Bank is the validated, ordered collection of all loaded questions.
type Bank struct {
	Questions []Question
}

func (b *Bank) Size() int {
	return len(b.Questions)
}
