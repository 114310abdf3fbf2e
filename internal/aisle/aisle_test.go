package aisle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooklang/cookcli-sub000/internal/aisle"
)

const conf = `[produce]
tomatoes
spring onions|scallions

[dairy]
milk
eggs

[pantry]
flour
sugar
`

func TestParseAndLookup(t *testing.T) {
	t.Parallel()

	c, warnings := aisle.Parse(conf)
	require.Empty(t, warnings)
	require.Len(t, c.Categories, 3)

	cat, ok := c.CategoryOf("Tomatoes")
	require.True(t, ok)
	assert.Equal(t, "produce", cat)

	cat, ok = c.CategoryOf("SCALLIONS")
	require.True(t, ok)
	assert.Equal(t, "produce", cat)
	assert.Equal(t, "spring onions", c.Canonical("scallions"))

	_, ok = c.CategoryOf("saffron")
	assert.False(t, ok)
	assert.Equal(t, 7, c.Len())
}

func TestParseIsLenient(t *testing.T) {
	t.Parallel()

	c, warnings := aisle.Parse("orphan\n[]\n[produce\n[dairy]\nmilk\n[dairy]\ncream\n[other]\nMilk\n")
	require.Len(t, warnings, 5)
	assert.Equal(t, 1, warnings[0].Line)

	cat, ok := c.CategoryOf("milk")
	require.True(t, ok)
	assert.Equal(t, "dairy", cat)
	cat, ok = c.CategoryOf("cream")
	require.True(t, ok)
	assert.Equal(t, "dairy", cat)
}

func TestNilConf(t *testing.T) {
	t.Parallel()

	var c *aisle.Conf
	_, ok := c.CategoryOf("milk")
	assert.False(t, ok)
	assert.Equal(t, "milk", c.Canonical("milk"))
}
