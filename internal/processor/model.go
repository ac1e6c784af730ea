package processor

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/voxlate/internal/translation"
)

// sharedModel is the process-wide language model. It is created on first use
// and rebuilt only when the credential it was built with changes.
type sharedModel struct {
	mu    sync.Mutex
	model translation.Model
	key   string
	build func(ctx context.Context, key string) (translation.Model, error)
}

// ensure makes sure a model built from key is in place
func (s *sharedModel) ensure(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil && s.key == key {
		return nil
	}

	model, err := s.build(ctx, key)
	if err != nil {
		return err
	}
	s.model = model
	s.key = key
	return nil
}

// Generate delegates to the current model
func (s *sharedModel) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	s.mu.Lock()
	model := s.model
	s.mu.Unlock()

	if model == nil {
		return "", fmt.Errorf("language model not initialized")
	}
	return model.Generate(ctx, prompt, temperature)
}
