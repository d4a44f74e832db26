package factory

import (
	"time"

	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/dependencies/mocks"
	"github.com/ktanaka/coderelay-go/internal/storage/memory"
	"github.com/ktanaka/coderelay-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. The tick interval is an hour so countdowns never fire
// unless a test drives them.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := testutil.NopLogger()
	cat := catalog.New(mockRandom, logger)

	app := newWithDependencies(store, cat, mockClock, mockRandom, time.Hour, nil, 0, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
