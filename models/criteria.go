package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Criteria construction for the list/search and top-N queries.
// Every helper contributes a clause only when its parameter is present, so an
// empty search yields the match-everything filter.

// fields fanned over by the free "search" parameter, per entity
var (
	plantSearchFields  = []string{"name", "appearance", "care", "lighting", "smartTags"}
	gardenSearchFields = []string{"name", "desc", "complexityLevel", "aquascaper.name", "aquascaper.email", "plants.name", "ratings.comment"}
)

// containsIgnoreCase builds a LIKE %term% clause (case-insensitive)
func containsIgnoreCase(term string) primitive.Regex {
	return primitive.Regex{Pattern: term, Options: "i"}
}

// thresholdClause implements the signed threshold convention of the top-N
// queries: a value >= 0 means "at least value", a NEGATIVE value flips the
// comparison to "strictly below |value|". The overload is a documented quirk
// of the service's query interface; keep it in this one place.
func thresholdClause(value int) bson.D {
	if value >= 0 {
		return bson.D{{Key: "$gte", Value: value}}
	}
	return bson.D{{Key: "$lt", Value: -value}}
}

// anyOfSearchFields OR-combines a contains-match over the given field list
func anyOfSearchFields(fields []string, term string) bson.E {
	or := bson.A{}
	for _, f := range fields {
		or = append(or, bson.D{{Key: f, Value: containsIgnoreCase(term)}})
	}
	return bson.E{Key: "$or", Value: or}
}

// PlantSearch carries the optional parameters of the plant list endpoint
type PlantSearch struct {
	Name       string
	Appearance string
	Care       string
	Lighting   string
	SmartTag   string
	Term       string // free search over plantSearchFields
}

func (s *PlantSearch) filter() bson.D {
	criteria := bson.D{}

	if s.Name != "" {
		criteria = append(criteria, bson.E{Key: "name", Value: containsIgnoreCase(s.Name)})
	}
	if s.Appearance != "" {
		criteria = append(criteria, bson.E{Key: "appearance", Value: containsIgnoreCase(s.Appearance)})
	}
	if s.Care != "" {
		criteria = append(criteria, bson.E{Key: "care", Value: containsIgnoreCase(s.Care)})
	}
	if s.Lighting != "" {
		criteria = append(criteria, bson.E{Key: "lighting", Value: containsIgnoreCase(s.Lighting)})
	}
	// a contains-match on the array field hits any element
	if s.SmartTag != "" {
		criteria = append(criteria, bson.E{Key: "smartTags", Value: containsIgnoreCase(s.SmartTag)})
	}
	// independent of the per-field parameters (implicit AND)
	if s.Term != "" {
		criteria = append(criteria, anyOfSearchFields(plantSearchFields, s.Term))
	}

	return criteria
}

// GardenSearch carries the optional parameters of the garden list endpoint
type GardenSearch struct {
	Name       string
	Desc       string
	Complexity string
	Aquascaper string // matched against the embedded aquascaper's name
	Term       string // free search over gardenSearchFields
}

func (s *GardenSearch) filter() bson.D {
	criteria := bson.D{}

	if s.Name != "" {
		criteria = append(criteria, bson.E{Key: "name", Value: containsIgnoreCase(s.Name)})
	}
	if s.Desc != "" {
		criteria = append(criteria, bson.E{Key: "desc", Value: containsIgnoreCase(s.Desc)})
	}
	if s.Complexity != "" {
		criteria = append(criteria, bson.E{Key: "complexityLevel", Value: containsIgnoreCase(s.Complexity)})
	}
	if s.Aquascaper != "" {
		criteria = append(criteria, bson.E{Key: "aquascaper.name", Value: containsIgnoreCase(s.Aquascaper)})
	}
	if s.Term != "" {
		criteria = append(criteria, anyOfSearchFields(gardenSearchFields, s.Term))
	}

	return criteria
}

// PlantTopSearch parametrizes the ranked plant listing.
// MinLikes follows the thresholdClause sign convention and is always applied
// (the endpoint defaults it to 0, not to "no clause").
type PlantTopSearch struct {
	MinLikes int
	Care     []string
	Lighting string
	Limit    int64
}

func (s *PlantTopSearch) filter() bson.D {
	criteria := bson.D{
		{Key: "likes", Value: thresholdClause(s.MinLikes)},
	}

	if len(s.Care) > 0 {
		criteria = append(criteria, bson.E{Key: "care", Value: bson.D{{Key: "$in", Value: s.Care}}})
	}
	if s.Lighting != "" {
		criteria = append(criteria, bson.E{Key: "lighting", Value: containsIgnoreCase(s.Lighting)})
	}

	return criteria
}

// GardenTopSearch parametrizes the ranked garden listing.
// MinRating follows the thresholdClause sign convention and matches gardens
// owning at least one rating inside the range.
type GardenTopSearch struct {
	MinRating  int
	Complexity string
	Aquascaper string
	Limit      int64
}

func (s *GardenTopSearch) filter() bson.D {
	criteria := bson.D{
		{Key: "ratings.level", Value: thresholdClause(s.MinRating)},
	}

	if s.Complexity != "" {
		criteria = append(criteria, bson.E{Key: "complexityLevel", Value: containsIgnoreCase(s.Complexity)})
	}
	if s.Aquascaper != "" {
		criteria = append(criteria, bson.E{Key: "aquascaper.name", Value: containsIgnoreCase(s.Aquascaper)})
	}

	return criteria
}
