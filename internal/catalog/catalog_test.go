package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/dependencies/mocks"
	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/testutil"
)

func newCatalog() (*catalog.Catalog, *mocks.MockRandom) {
	rnd := mocks.NewMockRandom()
	return catalog.New(rnd, testutil.NopLogger()), rnd
}

func TestBuiltinProblemsLoaded(t *testing.T) {
	cat, _ := newCatalog()

	require.Positive(t, cat.Len())
	for _, p := range cat.List() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.Positive(t, p.TimeLimitSeconds)
		assert.Positive(t, p.MaxPlayers)
		assert.NotEmpty(t, p.InitialCode)
		assert.NotEmpty(t, p.VisibleTestCases)
	}
}

func TestPickUsesRandom(t *testing.T) {
	cat, rnd := newCatalog()
	require.Greater(t, cat.Len(), 1)

	rnd.QueueIntn(1)
	p, err := cat.Pick()
	require.NoError(t, err)
	assert.Equal(t, cat.List()[1].ID, p.ID)
}

func TestPickEmptyCatalog(t *testing.T) {
	cat := catalog.NewEmpty(mocks.NewMockRandom(), testutil.NopLogger())

	_, err := cat.Pick()
	assert.ErrorIs(t, err, model.ErrCatalogEmpty)
}

func TestGet(t *testing.T) {
	cat, _ := newCatalog()

	p, ok := cat.Get("reverse-string")
	require.True(t, ok)
	assert.Equal(t, model.ProblemID("reverse-string"), p.ID)

	_, ok = cat.Get("no-such-problem")
	assert.False(t, ok)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.json")
	content := `[
		{
			"title": "FizzBuzz",
			"description": "Classic FizzBuzz",
			"difficulty": "easy",
			"timeLimit": 45,
			"maxPlayers": 4,
			"initialCode": "function fizzbuzz(n) {}",
			"testCases": [{"input": "3", "expectedOutput": "Fizz"}]
		},
		{
			"title": "Broken entry without code",
			"timeLimit": 45,
			"maxPlayers": 4
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat := catalog.NewEmpty(mocks.NewMockRandom(), testutil.NopLogger())
	require.NoError(t, cat.LoadFromFile(path))

	// the invalid entry is skipped, the valid one gets a slugged id
	require.Equal(t, 1, cat.Len())
	p, ok := cat.Get("fizzbuzz")
	require.True(t, ok)
	assert.Equal(t, "FizzBuzz", p.Title)
	assert.Equal(t, 45, p.TimeLimitSeconds)
}

func TestLoadFromFileMissing(t *testing.T) {
	cat, _ := newCatalog()
	assert.Error(t, cat.LoadFromFile("no/such/file.json"))
}
