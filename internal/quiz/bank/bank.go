// Package bank loads the built-in quiz questions.
package bank

import (
	_ "embed"
	"fmt"

	"github.com/accessguide/accessguide-backend/internal/quiz/domain"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

type file struct {
	Questions []domain.Question `yaml:"questions"`
}

// Default returns the built-in quiz.
func Default() (*domain.Quiz, error) {
	return Parse(defaultQuestions)
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*domain.Quiz, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: id is required", i)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %s: prompt is required", q.ID)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %s: needs at least 2 options", q.ID)
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("question %s: correct index %d out of range", q.ID, q.Correct)
		}
	}

	return domain.NewQuiz(f.Questions)
}
