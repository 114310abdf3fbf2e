package pantry

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(today time.Time) string {
	day := func(n int) string { return today.AddDate(0, 0, n).Format("2006-01-02") }
	return fmt.Sprintf(`[pantry]
salt = { quantity = "1%%kg", low = "500%%g" }
oil = { quantity = "500%%ml", low = "200%%ml" }
flour = { quantity = "5%%kg", low = "1%%kg" }
water = "always available"

[dairy]
milk = { quantity = "1%%l", expire = "%s", low = "500%%ml" }
eggs = { quantity = "12", expire = "%s", low = "6" }
butter = { quantity = "200%%g", low = "50%%g" }
yogurt = { quantity = "500%%g", expire = "%s" }

[produce]
tomatoes = { quantity = "5", expire = "%s", low = "2" }
lettuce = { quantity = "1", expire = "%s" }

[spices]
"black pepper" = { quantity = "100%%g", low = "20%%g" }
oregano = { quantity = "50%%g" }

[depleted]
honey = { quantity = "0", low = "100%%g" }
vinegar = { quantity = "50%%ml", low = "200%%ml" }
"expired item" = { quantity = "1", expire = "%s" }
`, day(4), day(2), day(1), day(3), day(10), day(-1))
}

func mustParse(t *testing.T, today time.Time) *Pantry {
	t.Helper()
	p, warnings, err := Parse([]byte(fixture(today)))
	require.NoError(t, err)
	require.Empty(t, warnings)
	return p
}

func names[T interface{ itemName() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.itemName())
	}
	return out
}

func (d DepletedItem) itemName() string { return d.Name }
func (e ExpiringItem) itemName() string { return e.Name }

func TestParseSectionsAndItems(t *testing.T) {
	p := mustParse(t, time.Now())

	var sections []string
	for _, s := range p.Sections {
		sections = append(sections, s.Name)
	}
	assert.Equal(t, []string{"dairy", "depleted", "pantry", "produce", "spices"}, sections)

	water, ok := p.Find("WATER")
	require.True(t, ok)
	assert.Equal(t, "always available", water.Note)
	assert.Equal(t, "pantry", water.Section)

	salt, ok := p.Find("salt")
	require.True(t, ok)
	assert.Equal(t, "1%kg", salt.Quantity)
	assert.Equal(t, "500%g", salt.Low)

	assert.True(t, p.Has("Black Pepper"))
	assert.False(t, p.Has("saffron"))
}

func TestParseWarnsOnOddEntries(t *testing.T) {
	p, warnings, err := Parse([]byte(`
[pantry]
salt = { quantity = "1%kg", colour = "white" }
flags = [1, 2]
`))
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].String(), "flags")
	assert.Contains(t, warnings[1].String(), `unknown attribute "colour"`)
	assert.True(t, p.Has("salt"))
	assert.False(t, p.Has("flags"))
}

func TestParseRejectsInvalidToml(t *testing.T) {
	_, _, err := Parse([]byte("[pantry\nsalt = "))
	assert.Error(t, err)
}

func TestIsLow(t *testing.T) {
	tests := []struct {
		item Item
		want bool
	}{
		// same-unit threshold wins over the heuristic both ways
		{Item{Quantity: "150%g", Low: "200%g"}, true},
		{Item{Quantity: "50%ml", Low: "20%ml"}, false},
		{Item{Quantity: "50%ml", Low: "200%ml"}, true},
		{Item{Quantity: "100%g", Low: "20%g"}, false},
		{Item{Quantity: "3", Low: "6"}, true},
		// a threshold in another unit falls back to the heuristic
		{Item{Quantity: "400%g", Low: "0.5%kg"}, false},
		{Item{Quantity: "80%g", Low: "1%kg"}, true},
		{Item{Quantity: "1%kg", Low: "500%g"}, false},
		{Item{Quantity: "0", Low: "100%g"}, true},
		// heuristic only
		{Item{Quantity: "50%g"}, true},
		{Item{Quantity: "150%g"}, false},
		{Item{Quantity: "0.4 kg"}, true},
		{Item{Quantity: "0.5%l"}, false},
		{Item{Quantity: "1"}, true},
		{Item{Quantity: "2%items"}, false},
		{Item{Note: "always available"}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.item.IsLow(), "%+v", tc.item)
	}
}

func TestDepleted(t *testing.T) {
	p := mustParse(t, time.Now())

	low := p.Depleted(false)
	assert.ElementsMatch(t, []string{"honey", "vinegar", "expired item", "lettuce", "oregano"}, names(low))

	all := p.Depleted(true)
	assert.Len(t, all, len(p.Items()))
	for _, d := range all {
		if d.Name == "black pepper" {
			assert.False(t, d.IsLow)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	for _, s := range []string{"2024-03-05", "05.03.2024", "05/03/2024", "2024.03.05", "05-03-2024"} {
		got, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.True(t, want.Equal(got), s)
	}
	got, ok := ParseDate("03/25/2024")
	require.True(t, ok)
	assert.Equal(t, 25, got.Day())

	_, ok = ParseDate("next tuesday")
	assert.False(t, ok)
}

func TestExpiring(t *testing.T) {
	today := time.Now()
	p := mustParse(t, today)

	items := p.Expiring(today, 7, false)
	assert.Equal(t, []string{"expired item", "yogurt", "eggs", "tomatoes", "milk"}, names(items))
	assert.Equal(t, "EXPIRED 1 days ago", items[0].Status)
	assert.Equal(t, "expires tomorrow", items[1].Status)
	assert.Equal(t, "expires in 2 days", items[2].Status)
	require.NotNil(t, items[4].DaysLeft)
	assert.Equal(t, 4, *items[4].DaysLeft)

	wide := p.Expiring(today, 30, true)
	assert.Contains(t, names(wide), "lettuce")
	last := wide[len(wide)-1]
	assert.Equal(t, "No expiry date", last.Status)
	assert.Nil(t, last.DaysLeft)
}

func TestExpiryStatusToday(t *testing.T) {
	assert.Equal(t, "EXPIRES TODAY", expiryStatus(0))
	assert.Equal(t, "EXPIRED 3 days ago", expiryStatus(-3))
}

func TestSetRemoveAndSaveRoundTrip(t *testing.T) {
	p := mustParse(t, time.Now())

	p.Set("pantry", Item{Name: "rice", Quantity: "2%kg", Low: "500%g"})
	p.Set("pantry", Item{Name: "Salt", Quantity: "250%g"})
	p.Set("frozen", Item{Name: "peas", Quantity: "1%kg"})
	assert.True(t, p.Remove("dairy", "YOGURT"))
	assert.False(t, p.Remove("dairy", "yogurt"))

	path := filepath.Join(t.TempDir(), "pantry.conf")
	require.NoError(t, p.Save(path))

	reloaded, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, p.Sections, reloaded.Sections)

	salt, ok := reloaded.Find("salt")
	require.True(t, ok)
	assert.Equal(t, "Salt", salt.Name)
	assert.Equal(t, "250%g", salt.Quantity)
	assert.Empty(t, salt.Low)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "black pepper")
	assert.Contains(t, string(data), "[frozen]")
}
