package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/minefield/internal/dependencies/mocks"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/auth"
	"github.com/mcoot/minefield/internal/storage/memory"
	"github.com/mcoot/minefield/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Without queued values the mock random places mines from column 0 onwards.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueGameIDs makes the next created games use the given ids
func (t *TestApp) QueueGameIDs(ids ...model.GameID) {
	for _, id := range ids {
		t.MockRandom.QueueString(string(id))
	}
}
