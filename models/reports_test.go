package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageValue(t *testing.T, stage bson.D, op string) bson.D {
	t.Helper()
	require.Len(t, stage, 1)
	require.Equal(t, op, stage[0].Key)
	val, ok := stage[0].Value.(bson.D)
	require.True(t, ok)
	return val
}

func TestRatingStatsPipeline(t *testing.T) {
	pipeline := ratingStatsPipeline()
	require.Len(t, pipeline, 2)

	// ratings are unwound first so the group sees one row per rating
	assert.Equal(t, bson.D{{Key: "$unwind", Value: "$ratings"}}, pipeline[0])

	group := stageValue(t, pipeline[1], "$group")
	assert.Equal(t, "$_id", criteriaValue(t, group, "_id"))
	assert.Equal(t, bson.D{{Key: "$sum", Value: 1}}, criteriaValue(t, group, "count"))
	assert.Equal(t, bson.D{{Key: "$avg", Value: "$ratings.level"}}, criteriaValue(t, group, "ave"))
	assert.Equal(t, bson.D{{Key: "$min", Value: "$ratings.level"}}, criteriaValue(t, group, "min"))
	assert.Equal(t, bson.D{{Key: "$max", Value: "$ratings.level"}}, criteriaValue(t, group, "max"))
}

func TestGroupCountPipeline(t *testing.T) {
	pipeline := groupCountPipeline("$aquascaper.name")
	require.Len(t, pipeline, 2)

	group := stageValue(t, pipeline[0], "$group")
	assert.Equal(t, "$aquascaper.name", criteriaValue(t, group, "_id"))
	assert.Equal(t, bson.D{{Key: "$sum", Value: 1}}, criteriaValue(t, group, "count"))

	sort := stageValue(t, pipeline[1], "$sort")
	assert.Equal(t, -1, criteriaValue(t, sort, "count"))
}
