package quantity_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooklang/cookcli-sub000/internal/quantity"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0.5:           "1/2",
		0.25:          "1/4",
		1.0 / 3:       "1/3",
		0.125:         "1/8",
		0.875:         "7/8",
		2:             "2",
		100:           "100",
		1.5:           "1.5",
		2.333333:      "2.333",
		0.89999999999: "0.9",
		0.1:           "0.1",
		0:             "0",
		1.9999999999:  "2",
	}
	for in, want := range cases {
		assert.Equal(t, want, quantity.FormatNumber(in), "FormatNumber(%v)", in)
	}
	assert.Equal(t, "0", quantity.FormatNumber(math.Copysign(0, -1)))
	assert.Equal(t, "0", quantity.FormatNumber(-0.0000001))
	assert.Equal(t, "-2", quantity.FormatNumber(-2))
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, quantity.Number(3), quantity.ParseValue("3"))
	assert.Equal(t, quantity.Number(0.5), quantity.ParseValue("1/2"))
	assert.Equal(t, quantity.Number(1.5), quantity.ParseValue("1 1/2"))
	assert.Equal(t, quantity.Range(1, 2), quantity.ParseValue("1-2"))
	assert.Equal(t, quantity.Text("a pinch"), quantity.ParseValue("a pinch"))
}

func TestValueString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 - 2", quantity.Range(1, 2).String())
	assert.Equal(t, "1/2 - 3/4", quantity.Range(0.5, 0.75).String())
	assert.Equal(t, "some", quantity.Text("some").String())
	assert.Equal(t, "2 tbsp", quantity.New(quantity.Number(2), "tbsp").String())
	assert.Equal(t, "3", quantity.New(quantity.Number(3), "").String())
}

func TestAddSameUnit(t *testing.T) {
	t.Parallel()

	sum, err := quantity.Add(
		quantity.New(quantity.Number(1), "tbsp"),
		quantity.New(quantity.Number(1), "tbsp"),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "2 tbsp", sum.String())
}

func TestAddConvertsIntoFirstUnit(t *testing.T) {
	t.Parallel()

	sum, err := quantity.Add(
		quantity.New(quantity.Number(1), "kg"),
		quantity.New(quantity.Number(500), "g"),
		units.New(),
	)
	require.NoError(t, err)
	assert.Equal(t, "kg", sum.Unit)
	assert.Equal(t, "1.5 kg", sum.String())
}

func TestAddRanges(t *testing.T) {
	t.Parallel()

	sum, err := quantity.Add(
		quantity.New(quantity.Range(1, 2), "cup"),
		quantity.New(quantity.Number(1), "cup"),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, quantity.Range(2, 3), sum.Value)
}

func TestAddIncompatible(t *testing.T) {
	t.Parallel()

	conv := units.New()
	pairs := [][2]quantity.Quantity{
		{quantity.New(quantity.Number(2), "cup"), quantity.New(quantity.Number(200), "g")},
		{quantity.New(quantity.Text("some"), ""), quantity.New(quantity.Text("some"), "")},
		{quantity.New(quantity.Number(2), ""), quantity.New(quantity.Number(2), "g")},
		{quantity.New(quantity.Number(2), "cloves"), quantity.New(quantity.Number(2), "g")},
	}
	for _, p := range pairs {
		_, err := quantity.Add(p[0], p[1], conv)
		assert.True(t, errors.Is(err, quantity.ErrIncompatible), "%s + %s", p[0], p[1])
	}
}

func TestGroupedSameUnitIsOrderIndependent(t *testing.T) {
	t.Parallel()

	amounts := []float64{1.5, 2, 0.25, 4}
	var forward, backward quantity.Grouped
	for i := range amounts {
		forward.Add(quantity.New(quantity.Number(amounts[i]), "cup"), nil)
		backward.Add(quantity.New(quantity.Number(amounts[len(amounts)-1-i]), "cup"), nil)
	}

	total := forward.Total()
	require.Equal(t, quantity.TotalSingle, total.Kind)
	single, ok := total.Single()
	require.True(t, ok)
	assert.Equal(t, 7.75, single.Value.Num)
	assert.Equal(t, forward.String(), backward.String())
}

func TestGroupedIncompatibleUnitsKeepBoth(t *testing.T) {
	t.Parallel()

	var g quantity.Grouped
	g.Add(quantity.New(quantity.Number(2), "cups"), units.New())
	g.Add(quantity.New(quantity.Number(200), "g"), units.New())

	total := g.Total()
	require.Equal(t, quantity.TotalMany, total.Kind)
	assert.Equal(t, "2 cups, 200 g", g.String())
}

func TestGroupedKeepsFirstSeenOrderAndMergesLater(t *testing.T) {
	t.Parallel()

	conv := units.New()
	var g quantity.Grouped
	g.Add(quantity.New(quantity.Number(100), "g"), conv)
	g.Add(quantity.New(quantity.Number(1), "cup"), conv)
	g.Add(quantity.New(quantity.Number(1), "kg"), conv)
	g.Add(quantity.New(quantity.Text("a pinch"), ""), conv)
	g.Add(quantity.New(quantity.Text("a pinch"), ""), conv)

	entries := g.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "1100 g", entries[0].String())
	assert.Equal(t, "1 cup", entries[1].String())
	assert.Equal(t, "a pinch", entries[2].String())
	assert.Equal(t, "a pinch", entries[3].String())
}

func TestGroupedEmpty(t *testing.T) {
	t.Parallel()

	var g quantity.Grouped
	assert.True(t, g.IsEmpty())
	assert.Equal(t, quantity.TotalNone, g.Total().Kind)
	assert.Equal(t, "", g.String())
}

func TestGroupedJSON(t *testing.T) {
	t.Parallel()

	var g quantity.Grouped
	g.Add(quantity.New(quantity.Number(2), "tbsp"), nil)
	g.Add(quantity.New(quantity.Range(1, 2), "cloves"), nil)

	data, err := json.Marshal(&g)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"value":{"type":"number","value":2},"unit":"tbsp"},
		{"value":{"type":"range","value":{"start":1,"end":2}},"unit":"cloves"}
	]`, string(data))
}
