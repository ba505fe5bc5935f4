package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/windoze95/mealhound-api/internal/images"
	"github.com/windoze95/mealhound-api/internal/models"
	"github.com/windoze95/mealhound-api/internal/providers"
)

// --- MockRecipeProvider ---

// MockRecipeProvider is a mock implementation of providers.RecipeProvider.
// Calls counts Search invocations so tests can assert cache short-circuits.
type MockRecipeProvider struct {
	NameVal    models.Source
	SearchFunc func(ctx context.Context, query string) ([]models.Recipe, error)
	Calls      int32
}

func (m *MockRecipeProvider) Name() models.Source {
	return m.NameVal
}

func (m *MockRecipeProvider) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	atomic.AddInt32(&m.Calls, 1)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, fmt.Errorf("Search not configured")
}

// CallCount returns how many times Search has been invoked.
func (m *MockRecipeProvider) CallCount() int {
	return int(atomic.LoadInt32(&m.Calls))
}

// --- MockValidator ---

// MockValidator is a mock implementation of images.Validator. The default
// behavior accepts every candidate.
type MockValidator struct {
	ValidateFunc func(ctx context.Context, url string) bool
	Calls        int32
	Seen         []string
}

func (m *MockValidator) Validate(ctx context.Context, url string) bool {
	atomic.AddInt32(&m.Calls, 1)
	m.Seen = append(m.Seen, url)
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, url)
	}
	return true
}

// CallCount returns how many times Validate has been invoked.
func (m *MockValidator) CallCount() int {
	return int(atomic.LoadInt32(&m.Calls))
}

// Compile-time interface checks.
var _ providers.RecipeProvider = (*MockRecipeProvider)(nil)
var _ images.Validator = (*MockValidator)(nil)
