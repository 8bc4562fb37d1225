package models

import (
	"context"
	"time"
	"water-gardens/apperror"
	"water-gardens/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Plant is the "interface" used for client communication
type Plant struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Appearance string             `json:"appearance" bson:"appearance"`
	Care       string             `json:"care" bson:"care"`
	Lighting   string             `json:"lighting" bson:"lighting"`
	Likes      int32              `json:"likes" bson:"likes"`
	Visits     int64              `json:"visits,omitempty" bson:"visits,omitempty"`
	SmartTags  StringList         `json:"smartTags" bson:"smartTags"`
	PhotoURL   string             `json:"photoURL" bson:"photoURL,omitempty"`
	CreatedOn  time.Time          `json:"createdOn" bson:"createdOn"`
	ModifiedOn time.Time          `json:"modifiedOn,omitempty" bson:"modifiedOn,omitempty"`
}

// PlantListItem is the reduced model returned by the ranked listing
type PlantListItem struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Care     string             `json:"care" bson:"care"`
	Lighting string             `json:"lighting" bson:"lighting"`
	Likes    int32              `json:"likes" bson:"likes"`
	PhotoURL string             `json:"photoURL" bson:"photoURL,omitempty"`
}

// PlantModel provides the logic to the interface and access to the database
type PlantModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// Create adds a new plant; likes defaults to 0 and smartTags to an empty
// list when the client sends neither
func (m PlantModel) Create(plant *Plant) (string, error) {

	// set "system-fields"
	plant.ID = primitive.NewObjectID()
	plant.CreatedOn = time.Now()
	if plant.SmartTags == nil {
		plant.SmartTags = StringList{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.InsertOne(ctx, plant)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Get returns one plant
func (m PlantModel) Get(plantID string) (*Plant, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	data := Plant{}

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

// Search lists plants matching the given optional criteria,
// newest first (the generated id is monotonic by creation time)
func (m PlantModel) Search(search *PlantSearch) ([]Plant, error) {

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

	plants := []Plant{}
	err = cursor.All(ctx, &plants)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// an empty result is a regular response here, not ErrNoData
	return plants, nil
}

// Update replaces every mutable field of a plant; fields absent from the
// request body are reset to their zero values (full-document edit semantics)
func (m PlantModel) Update(plantID string, plant *Plant) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if plant.SmartTags == nil {
		plant.SmartTags = StringList{}
	}

	// visits is owned by the analytics replication and never part of an edit
	fields := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: plant.Name},
			{Key: "appearance", Value: plant.Appearance},
			{Key: "care", Value: plant.Care},
			{Key: "lighting", Value: plant.Lighting},
			{Key: "likes", Value: plant.Likes},
			{Key: "smartTags", Value: plant.SmartTags},
			{Key: "photoURL", Value: plant.PhotoURL},
			{Key: "modifiedOn", Value: time.Now()},
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// a missing id matches zero documents and is still a success
	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// Delete removes at most one plant; stale snapshots of it inside gardens
// are left alone (no cascade)
func (m PlantModel) Delete(plantID string) (*mongo.DeleteResult, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
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

// AddTag appends a value to a plant's smartTags
func (m PlantModel) AddTag(plantID string, tag string) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	fields := bson.D{
		{Key: "$push", Value: bson.D{{Key: "smartTags", Value: tag}}},
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

// RemoveTag removes ALL occurrences of a value from a plant's smartTags
// ($pull semantics); a tag that is not present is a no-op success
func (m PlantModel) RemoveTag(plantID string, tag string) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	fields := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "smartTags", Value: tag}}},
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

// AddLike atomically increments the like counter by one; nothing checks the
// id first, a missing plant simply reports zero matched documents
func (m PlantModel) AddLike(plantID string) (*mongo.UpdateResult, error) {

	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	fields := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "likes", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return res, nil
}

// TopByLikes returns the best-liked plants matching the filters,
// reduced to the listing fields
func (m PlantModel) TopByLikes(search *PlantTopSearch) ([]PlantListItem, error) {

	fields := bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "care", Value: 1},
		{Key: "lighting", Value: 1},
		{Key: "likes", Value: 1},
		{Key: "photoURL", Value: 1},
	}

	sort := bson.D{
		{Key: "likes", Value: -1},
	}

	opts := options.Find().SetProjection(fields).SetSort(sort).SetLimit(search.Limit)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, search.filter(), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	plants := []PlantListItem{}
	err = cursor.All(ctx, &plants)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return plants, nil
}
