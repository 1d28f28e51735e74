package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateByURL(t *testing.T) {
	batches := []SourceBatch{
		{
			Source:   "sheet-a",
			Priority: 1,
			Rows: []SourceRow{
				{SupplierID: 1, Name: "Modul GPS VK-172", Price: 12.5, URL: "https://www.example.com/vk-172/"},
			},
		},
		{
			Source:   "sheet-b",
			Priority: 5,
			Rows: []SourceRow{
				{SupplierID: 1, Name: "VK-172 GPS module", Price: 11.9, URL: "HTTP://EXAMPLE.COM/vk-172"},
			},
		},
	}

	got := Deduplicate(batches)
	require.Len(t, got, 1)
	// The higher-priority source wins
	assert.Equal(t, "sheet-b", got[0].Source)
	assert.Equal(t, 11.9, got[0].Price)
}

func TestDeduplicateFallbackKey(t *testing.T) {
	t.Run("same name and price collapse", func(t *testing.T) {
		batches := []SourceBatch{
			{Source: "a", Priority: 2, Rows: []SourceRow{
				{SupplierID: 1, Name: "Senzor temperatura DS18B20", Price: 4.50},
			}},
			{Source: "b", Priority: 1, Rows: []SourceRow{
				{SupplierID: 1, Name: "senzor TEMPERATURA ds18b20", Price: 4.50},
			}},
		}
		got := Deduplicate(batches)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Source)
	})

	t.Run("different price stays distinct", func(t *testing.T) {
		batches := []SourceBatch{
			{Source: "a", Priority: 1, Rows: []SourceRow{
				{SupplierID: 1, Name: "Senzor temperatura DS18B20", Price: 4.50},
				{SupplierID: 1, Name: "Senzor temperatura DS18B20", Price: 5.00},
			}},
		}
		assert.Len(t, Deduplicate(batches), 2)
	})

	t.Run("url and no-url rows never collide", func(t *testing.T) {
		batches := []SourceBatch{
			{Source: "a", Priority: 1, Rows: []SourceRow{
				{SupplierID: 1, Name: "Releu 5V", Price: 2.00, URL: "https://example.com/releu"},
				{SupplierID: 1, Name: "Releu 5V", Price: 2.00},
			}},
		}
		assert.Len(t, Deduplicate(batches), 2)
	})
}

func TestDeduplicateEqualPriorityKeepsFirstBatch(t *testing.T) {
	batches := []SourceBatch{
		{Source: "first", Priority: 3, Rows: []SourceRow{
			{SupplierID: 1, Name: "Cablu HDMI", Price: 7.0, URL: "https://example.com/hdmi"},
		}},
		{Source: "second", Priority: 3, Rows: []SourceRow{
			{SupplierID: 1, Name: "Cablu HDMI 1.5m", Price: 7.2, URL: "https://example.com/hdmi"},
		}},
	}
	got := Deduplicate(batches)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Source)
}

func TestDeduplicateStampsBatchSource(t *testing.T) {
	batches := []SourceBatch{
		{Source: "sheet-a", Priority: 1, Rows: []SourceRow{
			{SupplierID: 1, Name: "Cablu USB", Price: 3.0},
		}},
	}
	got := Deduplicate(batches)
	require.Len(t, got, 1)
	assert.Equal(t, "sheet-a", got[0].Source)
}

func TestDeduplicateIsPure(t *testing.T) {
	batches := []SourceBatch{
		{Source: "a", Priority: 1, Rows: []SourceRow{
			{SupplierID: 1, Name: "Releu 5V", Price: 2.00, URL: "https://example.com/releu"},
		}},
	}
	first := Deduplicate(batches)
	second := Deduplicate(batches)
	assert.Equal(t, first, second, "no state may leak between calls")
}

func TestSourceRowValidate(t *testing.T) {
	valid := SourceRow{SupplierID: 1, Name: "Releu 5V", Price: 2.0, Source: "sheet-a"}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "  "
	assert.ErrorIs(t, noName.Validate(), ErrValidation)

	negative := valid
	negative.Price = -1
	assert.ErrorIs(t, negative.Validate(), ErrValidation)

	noSource := valid
	noSource.Source = ""
	assert.ErrorIs(t, noSource.Validate(), ErrValidation)
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.com/p/1/": "example.com/p/1",
		"HTTP://example.com/p/1":       "example.com/p/1",
		"  example.com/p/1  ":          "example.com/p/1",
		"":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeURL(in), "input %q", in)
	}
}
