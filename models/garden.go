package models

import (
	"context"
	"time"
	"water-gardens/apperror"
	"water-gardens/helpers"
	"water-gardens/lookups"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Aquascaper is an embedded snapshot, not a reference; there is no separate
// aquascaper collection and identity for reports is plain name equality
type Aquascaper struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// PlantRef is the denormalized plant snapshot embedded in a garden, taken at
// attach-time and NOT kept in sync with later edits of the source plant
type PlantRef struct {
	ID       primitive.ObjectID `json:"id" bson:"id"`
	Name     string             `json:"name" bson:"name"`
	Care     string             `json:"care" bson:"care"`
	PhotoURL string             `json:"photoURL" bson:"photoURL,omitempty"`
}

// Rating is an embedded sub-document; the id is generated at append time
// and the intended 1-5 range of level is not enforced
type Rating struct {
	ID      primitive.ObjectID `json:"id" bson:"id"`
	Level   int32              `json:"level" bson:"level"`
	Comment string             `json:"comment" bson:"comment"`
}

// Garden is the "interface" used for client communication
type Garden struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	Desc            string             `json:"desc" bson:"desc"`
	CompletionDate  string             `json:"completionDate" bson:"completionDate"`
	WeeksToComplete int32              `json:"weeksToComplete" bson:"weeksToComplete"`
	ComplexityLevel string             `json:"complexityLevel" bson:"complexityLevel"`
	Aquascaper      Aquascaper         `json:"aquascaper" bson:"aquascaper"`
	Plants          PlantRefList       `json:"plants" bson:"plants"`
	Ratings         RatingList         `json:"ratings" bson:"ratings"`
	Visits          int64              `json:"visits,omitempty" bson:"visits,omitempty"`
	PhotoURL        string             `json:"photoURL" bson:"photoURL,omitempty"`
	CreatedOn       time.Time          `json:"createdOn" bson:"createdOn"`
	ModifiedOn      time.Time          `json:"modifiedOn,omitempty" bson:"modifiedOn,omitempty"`
}

// GardenListItem is the reduced model returned by the ranked listing
type GardenListItem struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	ComplexityLevel string             `json:"complexityLevel" bson:"complexityLevel"`
	Aquascaper      Aquascaper         `json:"aquascaper" bson:"aquascaper"`
	PhotoURL        string             `json:"photoURL" bson:"photoURL,omitempty"`
}

// FeaturedGarden is returned by the top-aquascapers listing: the summary
// fields plus the full plant list and the first rating that matched the rule
type FeaturedGarden struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	ComplexityLevel string             `json:"complexityLevel" bson:"complexityLevel"`
	Aquascaper      Aquascaper         `json:"aquascaper" bson:"aquascaper"`
	Plants          PlantRefList       `json:"plants" bson:"plants"`
	Ratings         RatingList         `json:"ratings" bson:"ratings"`
}

// GardenModel provides the logic to the interface and access to the database
type GardenModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	// GetPlant is injected from the plant model so snapshots can be taken
	// without this model owning the plants collection
	GetPlant func(plantID string) (*Plant, error)
}

// Create adds a new garden; plants and ratings default to empty lists
func (m GardenModel) Create(garden *Garden) (string, error) {

	// set "system-fields"
	garden.ID = primitive.NewObjectID()
	garden.CreatedOn = time.Now()
	if garden.Plants == nil {
		garden.Plants = PlantRefList{}
	}
	if garden.Ratings == nil {
		garden.Ratings = RatingList{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.InsertOne(ctx, garden)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Get returns one garden
func (m GardenModel) Get(gardenID string) (*Garden, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	data := Garden{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &data, nil
}

// Search lists gardens matching the given optional criteria, newest first
func (m GardenModel) Search(search *GardenSearch) ([]Garden, error) {

	sort := bson.D{
		{Key: "_id", Value: -1},
	}

	opts := options.Find().SetSort(sort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, search.filter(), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	gardens := []Garden{}
	err = cursor.All(ctx, &gardens)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return gardens, nil
}

// Update replaces every mutable field of a garden. Absent arrays are reset to
// empty lists and every rating sent with the document receives a fresh id
// (full-document edit semantics of the original service).
func (m GardenModel) Update(gardenID string, garden *Garden) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if garden.Plants == nil {
		garden.Plants = PlantRefList{}
	}
	if garden.Ratings == nil {
		garden.Ratings = RatingList{}
	}
	for i := range garden.Ratings {
		garden.Ratings[i].ID = primitive.NewObjectID()
	}

	// visits is owned by the analytics replication and never part of an edit
	fields := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: garden.Name},
			{Key: "desc", Value: garden.Desc},
			{Key: "completionDate", Value: garden.CompletionDate},
			{Key: "weeksToComplete", Value: garden.WeeksToComplete},
			{Key: "complexityLevel", Value: garden.ComplexityLevel},
			{Key: "aquascaper", Value: garden.Aquascaper},
			{Key: "plants", Value: garden.Plants},
			{Key: "ratings", Value: garden.Ratings},
			{Key: "photoURL", Value: garden.PhotoURL},
			{Key: "modifiedOn", Value: time.Now()},
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// Delete removes at most one garden
func (m GardenModel) Delete(gardenID string) (*mongo.DeleteResult, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// AttachPlant embeds a snapshot of the plant into the garden's plants array.
// This is a two-read-then-write sequence without a transaction: two
// concurrent calls for the same pair can both pass the duplicate check and
// embed the reference twice. Accepted best-effort behavior; sequential calls
// keep the documented Conflict contract.
func (m GardenModel) AttachPlant(gardenID string, plantID string) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// 1. the plant must exist; the snapshot is taken as of now
	plant, err := m.GetPlant(plantID)
	if err != nil {
		if err == apperror.ErrNoData {
			return nil, apperror.ErrPlantUnknown
		}
		return nil, err
	}

	// 2. reject a second reference to the same plant within this garden
	fields := bson.D{
		{Key: "_id", Value: 1}}

	data := struct {
		ID primitive.ObjectID `bson:"_id"`
	}{}

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "plants.id", Value: plant.ID},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = m.Collection.FindOne(ctx, filter, options.FindOne().SetProjection(fields)).Decode(&data)
	if err == nil {
		return nil, apperror.ErrPlantAttached
	}
	if err != mongo.ErrNoDocuments {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// 3. append the snapshot
	ref := PlantRef{
		ID:       plant.ID,
		Name:     plant.Name,
		Care:     plant.Care,
		PhotoURL: plant.PhotoURL,
	}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "plants", Value: ref}}},
		{Key: "$set", Value: bson.D{{Key: "modifiedOn", Value: time.Now()}}},
	}

	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// DetachPlant removes every reference to the plant from the garden's plants
// array; detaching an unattached plant is a no-op success (idempotent)
func (m GardenModel) DetachPlant(gardenID string, plantID string) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	pid, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	fields := bson.D{
		{Key: "$pull", Value: bson.D{
			{Key: "plants", Value: bson.D{{Key: "id", Value: pid}}},
		}},
		{Key: "$set", Value: bson.D{{Key: "modifiedOn", Value: time.Now()}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// AddRating appends a rating with a freshly generated id and returns the
// re-fetched garden (two sequential store calls, no rollback if the second
// one fails)
func (m GardenModel) AddRating(gardenID string, level int32, comment string) (*Garden, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	rating := Rating{
		ID:      primitive.NewObjectID(),
		Level:   level,
		Comment: comment,
	}

	fields := bson.D{
		{Key: "$push", Value: bson.D{{Key: "ratings", Value: rating}}},
		{Key: "$set", Value: bson.D{{Key: "modifiedOn", Value: time.Now()}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.Get(gardenID)
}

// RemoveRating pulls the matching rating sub-document and returns the
// re-fetched garden
func (m GardenModel) RemoveRating(gardenID string, ratingID string) (*Garden, error) {

	id, err := primitive.ObjectIDFromHex(gardenID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	rid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	fields := bson.D{
		{Key: "$pull", Value: bson.D{
			{Key: "ratings", Value: bson.D{{Key: "id", Value: rid}}},
		}},
		{Key: "$set", Value: bson.D{{Key: "modifiedOn", Value: time.Now()}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.Get(gardenID)
}

// EditRating sets level and comment on the matched array element via a
// positional update. The filter deliberately keys on the rating id ONLY, not
// on (garden id, rating id): rating ids are generated globally unique, so
// whichever garden contains the id gets the edit. Known ambiguity of the
// service interface, kept as-is and flagged for the owning team.
func (m GardenModel) EditRating(ratingID string, level int32, comment string) (*mongo.UpdateResult, error) {

	rid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	filter := bson.D{
		{Key: "ratings", Value: bson.D{
			{Key: "$elemMatch", Value: bson.D{{Key: "id", Value: rid}}},
		}},
	}

	fields := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "ratings.$.level", Value: level},
			{Key: "ratings.$.comment", Value: comment},
			{Key: "modifiedOn", Value: time.Now()},
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx, filter, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// TopByRating returns the best gardens matching the filters, newest first,
// reduced to the listing fields
func (m GardenModel) TopByRating(search *GardenTopSearch) ([]GardenListItem, error) {

	fields := bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "complexityLevel", Value: 1},
		{Key: "aquascaper", Value: 1},
		{Key: "photoURL", Value: 1},
	}

	sort := bson.D{
		{Key: "_id", Value: -1},
	}

	opts := options.Find().SetProjection(fields).SetSort(sort).SetLimit(search.Limit)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, search.filter(), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	gardens := []GardenListItem{}
	err = cursor.All(ctx, &gardens)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return gardens, nil
}

// TopAquascapers encodes a fixed business rule, not a parameterized query:
// a featured garden has a featured complexity level, at least one rating of
// level 4 or 5, and no plant that is "easy" to care for. The projection
// returns the full plant list plus the first rating that matched.
func (m GardenModel) TopAquascapers(limit int64) ([]FeaturedGarden, error) {

	filter := bson.D{
		{Key: "complexityLevel", Value: bson.D{
			{Key: "$in", Value: lookups.FeaturedComplexityLevels},
		}},
		{Key: "ratings", Value: bson.D{
			{Key: "$elemMatch", Value: bson.D{
				{Key: "level", Value: bson.D{{Key: "$in", Value: lookups.FeaturedRatingLevels}}},
			}},
		}},
		{Key: "plants", Value: bson.D{
			{Key: "$not", Value: bson.D{
				{Key: "$elemMatch", Value: bson.D{{Key: "care", Value: lookups.CareEasy}}},
			}},
		}},
	}

	fields := bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "complexityLevel", Value: 1},
		{Key: "aquascaper", Value: 1},
		{Key: "plants", Value: 1},
		{Key: "ratings.$", Value: 1}, // first element matched by the $elemMatch above
	}

	sort := bson.D{
		{Key: "_id", Value: -1},
	}

	opts := options.Find().SetProjection(fields).SetSort(sort).SetLimit(limit)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	gardens := []FeaturedGarden{}
	err = cursor.All(ctx, &gardens)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return gardens, nil
}
