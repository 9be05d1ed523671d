package llm_port

//go:generate mockgen -source=llm_port.go -destination=../../mocks/mock_llm_port.go -package=mocks

import (
	"context"
)

// GeneratorPort calls one completion backend. model selects the candidate;
// the returned text is the raw completion.
type GeneratorPort interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Name() string
}
