package ports

import "context"

// Prompter asks the operator a yes/no question.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm returns true only when the operator accepts.
	Confirm(ctx context.Context, question string) (bool, error)
}
