package listing

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVillaListing(t *testing.T) {
	markers := Parse([]Source{{Title: "3 Cr Villa near Kowdiar, 8 cents plot", URL: "https://example.com/villa"}})
	require.Len(t, markers, 1)

	m := markers[0]
	require.NotNil(t, m.EstimatedPrice)
	require.NotNil(t, m.EstimatedSize)
	assert.Equal(t, 300.0, *m.EstimatedPrice)
	assert.Equal(t, 8.0, *m.EstimatedSize)
	assert.Equal(t, TierPremium, m.Tier)
	assert.Equal(t, 1000, m.ID)
}

func TestParsePriceFormats(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"₹1.5 Cr plot", 150},
		{"Rs. 50 Lakhs", 50},
		{"INR 75 lakh", 75},
		{"1.5cr independent house", 150},
		{"price 45L negotiable", 45},
		{"2 Crore villa", 200},
	}
	for _, tc := range cases {
		got, ok := ParsePrice(tc.text)
		require.True(t, ok, tc.text)
		assert.InDelta(t, tc.want, got, 1e-9, tc.text)
	}

	_, ok := ParsePrice("call for price")
	assert.False(t, ok)
}

func TestParseSizeFormats(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"5 cents", 5},
		{"5.5 cent plot", 5.5},
		{"1500 sqft house", 1500 / SqftPerCent},
		{"1500 sq ft", 1500 / SqftPerCent},
		{"1500sq.ft", 1500 / SqftPerCent},
		{"871.2 SQFT", 2},
	}
	for _, tc := range cases {
		got, ok := ParseSize(tc.text)
		require.True(t, ok, tc.text)
		assert.InDelta(t, tc.want, got, 1e-9, tc.text)
	}
}

func TestClassifyThresholds(t *testing.T) {
	assert.Equal(t, TierPremium, Classify(100.5, true))
	assert.Equal(t, TierMidRange, Classify(100, true))
	assert.Equal(t, TierMidRange, Classify(40.1, true))
	assert.Equal(t, TierBudget, Classify(40, true))
	assert.Equal(t, TierBudget, Classify(5, true))
	assert.Equal(t, TierUnknown, Classify(0, false))
}

func TestInclusionPolicy(t *testing.T) {
	sources := []Source{
		{Title: "Land for sale Pattom", URL: "https://www.99acres.com/land-in-pattom"},
		{Title: "Trivandrum news", URL: "https://news.example.com/story"},
		{Title: "Plot 6 cents", URL: "https://blog.example.com/plot"},
		{Title: "Budget plot 25 Lakhs", URL: "https://example.com/a"},
		{Title: "Houses", URL: "https://www.olx.in/trivandrum"},
	}

	markers := Parse(sources)
	require.Len(t, markers, 4)

	// Allowlisted domain with nothing extracted is still kept.
	assert.Equal(t, 1000, markers[0].ID)
	assert.Nil(t, markers[0].EstimatedPrice)
	assert.Nil(t, markers[0].EstimatedSize)
	assert.Equal(t, TierUnknown, markers[0].Tier)

	assert.Equal(t, 1002, markers[1].ID)
	assert.Nil(t, markers[1].EstimatedPrice)
	assert.Equal(t, TierUnknown, markers[1].Tier)

	assert.Equal(t, 1003, markers[2].ID)
	assert.Equal(t, TierBudget, markers[2].Tier)

	assert.Equal(t, 1004, markers[3].ID)
}

func TestParseSearchesURLToo(t *testing.T) {
	markers := Parse([]Source{{Title: "Plot in Kowdiar", URL: "https://example.com/listing/10cents-1.2cr"}})
	require.Len(t, markers, 1)
	require.NotNil(t, markers[0].EstimatedSize)
	assert.Equal(t, 10.0, *markers[0].EstimatedSize)
	require.NotNil(t, markers[0].EstimatedPrice)
	assert.InDelta(t, 120.0, *markers[0].EstimatedPrice, 1e-9)
}

func TestConflictingUnitsFirstMatchWins(t *testing.T) {
	// "1500 Lorry" is read as a lakh price before the real crore figure.
	markers := Parse([]Source{{Title: "1500 Lorry access, 1.2 Cr, 1500 sqft and 4 cents", URL: "https://example.com"}})
	require.Len(t, markers, 1)
	assert.Equal(t, 1500.0, *markers[0].EstimatedPrice)
	assert.InDelta(t, 1500/SqftPerCent, *markers[0].EstimatedSize, 1e-9)
	assert.Equal(t, TierPremium, markers[0].Tier)
}

func TestZeroValuesCountAsAbsent(t *testing.T) {
	markers := Parse([]Source{{Title: "0 Lakhs 0 cents", URL: "https://example.com"}})
	assert.Empty(t, markers)
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"3 Cr Villa near Kowdiar, 8 cents plot",
		"₹45 L 1200 sqft 3 cents",
		"Rs.1.2Crore 10cent",
		"5 L 5 Lakhs 5 Cr",
		"999999999999999999999999 cr",
		"..5.5 sq. ft..",
		"INR INR INR 0.0000001 l",
	}
	for _, s := range seeds {
		f.Add(s, "https://www.magicbricks.com/x")
		f.Add(s, "")
	}

	f.Fuzz(func(t *testing.T, title, url string) {
		if !utf8.ValidString(title) || !utf8.ValidString(url) {
			t.Skip()
		}
		markers := Parse([]Source{{Title: title, URL: url}})
		if len(markers) > 1 {
			t.Fatalf("one source produced %d markers", len(markers))
		}
		if len(markers) == 0 {
			if IsListingSite(url) {
				t.Fatalf("allowlisted url %q dropped", url)
			}
			return
		}

		m := markers[0]
		if m.ID != 1000 {
			t.Fatalf("unexpected id %d", m.ID)
		}
		if m.EstimatedPrice == nil && m.EstimatedSize == nil && !IsListingSite(url) {
			t.Fatalf("empty marker kept for %q", url)
		}
		if m.EstimatedPrice == nil && m.Tier != TierUnknown {
			t.Fatalf("tier %s without price", m.Tier)
		}
		if m.EstimatedPrice != nil {
			if *m.EstimatedPrice < 0 {
				t.Fatalf("negative price %v", *m.EstimatedPrice)
			}
			if m.Tier == TierUnknown {
				t.Fatalf("priced marker left unknown")
			}
		}
		if m.EstimatedSize != nil && *m.EstimatedSize < 0 {
			t.Fatalf("negative size %v", *m.EstimatedSize)
		}
		if m.Title != title || m.Link != url {
			t.Fatalf("source text rewritten")
		}
	})
}
