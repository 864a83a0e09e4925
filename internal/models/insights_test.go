package models_test

import (
	"encoding/json"
	"testing"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected models.Score
		wantErr  bool
	}{
		{name: "plain number", input: `85`, expected: 85},
		{name: "quoted number", input: `"72"`, expected: 72},
		{name: "percentage", input: `"90%"`, expected: 90},
		{name: "fraction rounds", input: `88.6`, expected: 89},
		{name: "above range clamps", input: `140`, expected: 100},
		{name: "below range clamps", input: `-3`, expected: 0},
		{name: "null", input: `null`, expected: 0},
		{name: "garbage", input: `"great"`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s models.Score
			err := json.Unmarshal([]byte(tc.input), &s)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestSpecs_LenientDecoding(t *testing.T) {
	input := `{
		"processor": " Snapdragon 8 Gen 3 ",
		"ram": 12,
		"nfc": true,
		"card_slot": false,
		"bluetooth": 5.3,
		"wireless_charging": null
	}`

	var specs models.Specs
	require.NoError(t, json.Unmarshal([]byte(input), &specs))

	assert.Equal(t, models.FlexString("Snapdragon 8 Gen 3"), specs.Processor)
	assert.Equal(t, models.FlexString("12"), specs.RAM)
	assert.Equal(t, models.FlexString("Yes"), specs.NFC)
	assert.Equal(t, models.FlexString("No"), specs.CardSlot)
	assert.Equal(t, models.FlexString("5.3"), specs.Bluetooth)
	assert.Empty(t, specs.WirelessCharging)
}

func TestParseSortOption(t *testing.T) {
	assert.Equal(t, models.SortPriceLow, models.ParseSortOption("price-low"))
	assert.Equal(t, models.SortRating, models.ParseSortOption("rating"))
	assert.Equal(t, models.SortNewest, models.ParseSortOption(""))
	assert.Equal(t, models.SortNewest, models.ParseSortOption("cheapest"))
}

func TestCatalogChanges_Empty(t *testing.T) {
	var nilChanges *models.CatalogChanges
	assert.True(t, nilChanges.Empty())
	assert.True(t, (&models.CatalogChanges{}).Empty())
	assert.False(t, (&models.CatalogChanges{Added: []models.Listing{{Name: "X"}}}).Empty())

	drop := models.PriceChange{Old: models.Listing{Price: 100}, New: models.Listing{Price: 90}}
	assert.True(t, drop.Dropped())
}
