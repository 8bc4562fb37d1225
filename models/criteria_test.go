package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// criteriaValue returns the clause a filter holds for the given key
func criteriaValue(t *testing.T, criteria bson.D, key string) interface{} {
	t.Helper()
	for _, e := range criteria {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("criteria is missing key %q", key)
	return nil
}

func hasKey(criteria bson.D, key string) bool {
	for _, e := range criteria {
		if e.Key == key {
			return true
		}
	}
	return false
}

func TestThresholdClauseSignConvention(t *testing.T) {
	// non-negative values mean "at least"
	assert.Equal(t, bson.D{{Key: "$gte", Value: 5}}, thresholdClause(5))
	assert.Equal(t, bson.D{{Key: "$gte", Value: 0}}, thresholdClause(0))

	// negative values flip to "strictly below the absolute value"
	assert.Equal(t, bson.D{{Key: "$lt", Value: 5}}, thresholdClause(-5))
	assert.Equal(t, bson.D{{Key: "$lt", Value: 1}}, thresholdClause(-1))
}

func TestContainsIgnoreCase(t *testing.T) {
	clause := containsIgnoreCase("Fern")
	assert.Equal(t, primitive.Regex{Pattern: "Fern", Options: "i"}, clause)
}

func TestPlantSearchEmptyMatchesEverything(t *testing.T) {
	s := &PlantSearch{}
	assert.Empty(t, s.filter(), "absent parameters must contribute no clause")
}

func TestPlantSearchPerFieldClauses(t *testing.T) {
	s := &PlantSearch{
		Name:     "fern",
		Care:     "easy",
		SmartTag: "red",
	}

	criteria := s.filter()
	assert.Len(t, criteria, 3)
	assert.Equal(t, containsIgnoreCase("fern"), criteriaValue(t, criteria, "name"))
	assert.Equal(t, containsIgnoreCase("easy"), criteriaValue(t, criteria, "care"))
	assert.Equal(t, containsIgnoreCase("red"), criteriaValue(t, criteria, "smartTags"))
	assert.False(t, hasKey(criteria, "appearance"))
	assert.False(t, hasKey(criteria, "lighting"))
}

func TestPlantSearchTermFansOverSearchFields(t *testing.T) {
	s := &PlantSearch{Term: "java"}

	criteria := s.filter()
	require.Len(t, criteria, 1)

	or, ok := criteriaValue(t, criteria, "$or").(bson.A)
	require.True(t, ok)
	require.Len(t, or, len(plantSearchFields))

	for i, f := range plantSearchFields {
		assert.Equal(t, bson.D{{Key: f, Value: containsIgnoreCase("java")}}, or[i])
	}
}

func TestPlantSearchTermAndFieldsCombineByAND(t *testing.T) {
	// "search" and per-field parameters are independent filters
	s := &PlantSearch{Care: "easy", Term: "java"}

	criteria := s.filter()
	assert.Len(t, criteria, 2)
	assert.True(t, hasKey(criteria, "care"))
	assert.True(t, hasKey(criteria, "$or"))
}

func TestGardenSearchClauses(t *testing.T) {
	s := &GardenSearch{
		Complexity: "professional",
		Aquascaper: "amano",
	}

	criteria := s.filter()
	assert.Len(t, criteria, 2)
	assert.Equal(t, containsIgnoreCase("professional"), criteriaValue(t, criteria, "complexityLevel"))
	// the aquascaper parameter matches the embedded sub-document's name
	assert.Equal(t, containsIgnoreCase("amano"), criteriaValue(t, criteria, "aquascaper.name"))
}

func TestGardenSearchTermFansOverSearchFields(t *testing.T) {
	s := &GardenSearch{Term: "iwagumi"}

	criteria := s.filter()
	or, ok := criteriaValue(t, criteria, "$or").(bson.A)
	require.True(t, ok)
	assert.Len(t, or, len(gardenSearchFields))
}

func TestPlantTopSearchAlwaysAppliesLikesFloor(t *testing.T) {
	// the default floor 0 still yields a clause, unlike the list endpoints
	s := &PlantTopSearch{}

	criteria := s.filter()
	require.Len(t, criteria, 1)
	assert.Equal(t, bson.D{{Key: "$gte", Value: 0}}, criteriaValue(t, criteria, "likes"))
}

func TestPlantTopSearchFilters(t *testing.T) {
	s := &PlantTopSearch{
		MinLikes: -5,
		Care:     []string{"easy", "medium"},
		Lighting: "low",
	}

	criteria := s.filter()
	assert.Equal(t, bson.D{{Key: "$lt", Value: 5}}, criteriaValue(t, criteria, "likes"))
	assert.Equal(t, bson.D{{Key: "$in", Value: []string{"easy", "medium"}}}, criteriaValue(t, criteria, "care"))
	assert.Equal(t, containsIgnoreCase("low"), criteriaValue(t, criteria, "lighting"))
}

func TestGardenTopSearchFilters(t *testing.T) {
	s := &GardenTopSearch{MinRating: 4, Aquascaper: "amano"}

	criteria := s.filter()
	assert.Equal(t, bson.D{{Key: "$gte", Value: 4}}, criteriaValue(t, criteria, "ratings.level"))
	assert.Equal(t, containsIgnoreCase("amano"), criteriaValue(t, criteria, "aquascaper.name"))
	assert.False(t, hasKey(criteria, "complexityLevel"))
}
