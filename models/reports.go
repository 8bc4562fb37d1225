package models

import (
	"context"
	"time"
	"water-gardens/database"
	"water-gardens/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fixed aggregation and distinct queries for the dashboards. Every report
// scans its full collection, so results are kept in a short-TTL cache; a
// cache problem never fails the request.

// cache keys, one per report
const (
	cacheKeyRatingStats      = "report:ratings"
	cacheKeyAquascaperCounts = "report:aquascapers"
	cacheKeyComplexityCounts = "report:complexity"
	cacheKeyAquascaperNames  = "report:aquascaper-names"
	cacheKeySmartTags        = "report:smarttags"
)

// GardenRatingStats is one row of the per-garden rating report
type GardenRatingStats struct {
	GardenID primitive.ObjectID `json:"gardenId" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Count    int32              `json:"count" bson:"count"`
	Average  float64            `json:"ave" bson:"ave"`
	Min      int32              `json:"min" bson:"min"`
	Max      int32              `json:"max" bson:"max"`
}

// GroupCount is one row of the group-and-count reports
type GroupCount struct {
	Key   string `json:"name" bson:"_id"`
	Count int32  `json:"count" bson:"count"`
}

// ReportModel provides the dashboard queries over both collections
type ReportModel struct {
	Gardens *mongo.Collection
	Plants  *mongo.Collection
	Cache   *database.Cache
}

// ratingStatsPipeline unwinds the embedded ratings and groups them back by
// garden, computing count, average, min and max of the rating level
func ratingStatsPipeline() mongo.Pipeline {
	unwindStage := bson.D{
		{Key: "$unwind", Value: "$ratings"},
	}

	groupStage := bson.D{
		{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "ave", Value: bson.D{{Key: "$avg", Value: "$ratings.level"}}},
			{Key: "min", Value: bson.D{{Key: "$min", Value: "$ratings.level"}}},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$ratings.level"}}},
		}},
	}

	return mongo.Pipeline{unwindStage, groupStage}
}

// groupCountPipeline groups the whole collection by a single field
func groupCountPipeline(field string) mongo.Pipeline {
	groupStage := bson.D{
		{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}},
	}

	sortStage := bson.D{
		{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}},
	}

	return mongo.Pipeline{groupStage, sortStage}
}

// RatingStats returns count/ave/min/max of the rating levels per garden;
// gardens without ratings do not appear (the unwind drops them)
func (m ReportModel) RatingStats() ([]GardenRatingStats, error) {

	stats := []GardenRatingStats{}
	if m.Cache.Fetch(cacheKeyRatingStats, &stats) {
		return stats, nil
	}

	opts := options.Aggregate().SetMaxTime(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Gardens.Aggregate(ctx, ratingStatsPipeline(), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if err = cursor.All(ctx, &stats); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	m.Cache.Store(cacheKeyRatingStats, stats)
	return stats, nil
}

// AquascaperCounts returns the number of gardens per aquascaper name
// (plain string equality, no dedup or normalization)
func (m ReportModel) AquascaperCounts() ([]GroupCount, error) {
	return m.groupCount(cacheKeyAquascaperCounts, "$aquascaper.name")
}

// ComplexityCounts returns the number of gardens per complexity level
func (m ReportModel) ComplexityCounts() ([]GroupCount, error) {
	return m.groupCount(cacheKeyComplexityCounts, "$complexityLevel")
}

func (m ReportModel) groupCount(cacheKey string, field string) ([]GroupCount, error) {

	counts := []GroupCount{}
	if m.Cache.Fetch(cacheKey, &counts) {
		return counts, nil
	}

	opts := options.Aggregate().SetMaxTime(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Gardens.Aggregate(ctx, groupCountPipeline(field), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if err = cursor.All(ctx, &counts); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	m.Cache.Store(cacheKey, counts)
	return counts, nil
}

// AquascaperNames returns the unique aquascaper.name values across all gardens
func (m ReportModel) AquascaperNames() ([]string, error) {
	return m.distinctStrings(cacheKeyAquascaperNames, m.Gardens, "aquascaper.name")
}

// SmartTags returns the unique tag values across all plants
// (the store-level distinct flattens the arrays)
func (m ReportModel) SmartTags() ([]string, error) {
	return m.distinctStrings(cacheKeySmartTags, m.Plants, "smartTags")
}

func (m ReportModel) distinctStrings(cacheKey string, collection *mongo.Collection, field string) ([]string, error) {

	values := []string{}
	if m.Cache.Fetch(cacheKey, &values) {
		return values, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raw, err := collection.Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}

	m.Cache.Store(cacheKey, values)
	return values, nil
}
