package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsFixedCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	ids := make([]string, len(all))
	for i, b := range all {
		ids[i] = b.ID
		assert.Equal(t, "USD/bbl", b.Unit)
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Region)
	}
	assert.Equal(t, []string{"brent", "wti", "opec", "urals", "dubai"}, ids)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].ID = "mutated"

	assert.Equal(t, "brent", All()[0].ID)
}

func TestSearchEmptyTermMatchesEverything(t *testing.T) {
	assert.Len(t, Search(""), 5)
	assert.Len(t, Search("   "), 5)
}

func TestSearchByID(t *testing.T) {
	got := Search("brent")
	require.Len(t, got, 1)
	assert.Equal(t, "brent", got[0].ID)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Search("brent"), Search("BRENT"))
	assert.Equal(t, Search("brent"), Search("  Brent  "))
}

func TestSearchByRegion(t *testing.T) {
	got := Search("middle")
	require.Len(t, got, 1)
	assert.Equal(t, "dubai", got[0].ID)
	assert.Equal(t, "Middle East", got[0].Region)
}

func TestSearchByNameKeepsCatalogOrder(t *testing.T) {
	got := Search("crude")
	require.Len(t, got, 2)
	assert.Equal(t, "brent", got[0].ID)
	assert.Equal(t, "wti", got[1].ID)
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search("nonexistent-xyz"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "brent", Normalize("  BRENT "))
	assert.Equal(t, "", Normalize("   "))
}
