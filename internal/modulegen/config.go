package modulegen

// DefaultQuestionCount is the number of questions requested per module.
const DefaultQuestionCount = 5

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated module. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// QuestionCount is the number of questions the prompt asks for.
	QuestionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionSetValidator{},
			&UniqueIDValidator{},
		},
		QuestionCount: DefaultQuestionCount,
		MaxTokens:     8192,
		Temperature:   0.4,
	}
}
