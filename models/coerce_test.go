package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListAcceptsArray(t *testing.T) {
	var plant Plant
	err := json.Unmarshal([]byte(`{"name":"Java Fern","smartTags":["red","easy"]}`), &plant)
	require.NoError(t, err)
	assert.Equal(t, StringList{"red", "easy"}, plant.SmartTags)
}

func TestStringListWrapsScalar(t *testing.T) {
	var plant Plant
	err := json.Unmarshal([]byte(`{"name":"Java Fern","smartTags":"red"}`), &plant)
	require.NoError(t, err)
	assert.Equal(t, StringList{"red"}, plant.SmartTags)
}

func TestStringListNullAndAbsent(t *testing.T) {
	var plant Plant
	err := json.Unmarshal([]byte(`{"name":"Java Fern","smartTags":null}`), &plant)
	require.NoError(t, err)
	assert.Nil(t, plant.SmartTags)

	plant = Plant{}
	err = json.Unmarshal([]byte(`{"name":"Java Fern"}`), &plant)
	require.NoError(t, err)
	assert.Nil(t, plant.SmartTags)
}

func TestRatingListWrapsSingleObject(t *testing.T) {
	var garden Garden
	err := json.Unmarshal([]byte(`{"name":"Iwagumi","ratings":{"level":5,"comment":"great"}}`), &garden)
	require.NoError(t, err)
	require.Len(t, garden.Ratings, 1)
	assert.Equal(t, int32(5), garden.Ratings[0].Level)
	assert.Equal(t, "great", garden.Ratings[0].Comment)
}

func TestPlantRefListWrapsSingleObject(t *testing.T) {
	var garden Garden
	err := json.Unmarshal([]byte(`{"name":"Iwagumi","plants":{"name":"Java Fern","care":"easy"}}`), &garden)
	require.NoError(t, err)
	require.Len(t, garden.Plants, 1)
	assert.Equal(t, "Java Fern", garden.Plants[0].Name)
}

func TestRatingListPassesArrayThrough(t *testing.T) {
	var garden Garden
	err := json.Unmarshal([]byte(`{"ratings":[{"level":3,"comment":"ok"},{"level":5,"comment":"wow"}]}`), &garden)
	require.NoError(t, err)
	assert.Len(t, garden.Ratings, 2)
}
