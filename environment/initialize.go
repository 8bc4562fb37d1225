package environment

import (
	"os"
	"strconv"
	"time"
	"water-gardens/analytics"
	"water-gardens/client"
	"water-gardens/database"
	"water-gardens/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Tracker     *analytics.Tracker
	Requests    *client.Registry
	PlantModel  models.PlantModel
	GardenModel models.GardenModel
	ReportModel models.ReportModel
}

// newEnv operates as the constructor to initialize the collection references (private)
func newEnv(mongoClient *mongo.Client, redisClient *redis.Client) *Environment {
	env := &Environment{}

	db := mongoClient.Database(os.Getenv("DB_NAME"))
	plants := db.Collection(database.CollectionPlants)
	gardens := db.Collection(database.CollectionGardens)

	env.Requests = new(client.Registry)
	env.Requests.Initialize()

	// always create the tracker so the controllers need no nil checks
	// (it no-ops unless USE_ANALYTICS is set)
	env.Tracker = new(analytics.Tracker)
	env.Tracker.Requests = env.Requests
	env.Tracker.SetConnections(database.GetInfluxConnection(), map[string]*mongo.Collection{
		analytics.DomainPlants:  plants,
		analytics.DomainGardens: gardens,
	})

	env.PlantModel.Client = mongoClient
	env.PlantModel.Collection = plants

	env.GardenModel.Client = mongoClient
	env.GardenModel.Collection = gardens
	// inject the plant getter so the garden model can take attach snapshots
	env.GardenModel.GetPlant = env.PlantModel.Get

	env.ReportModel.Gardens = gardens
	env.ReportModel.Plants = plants
	env.ReportModel.Cache = database.NewCache(redisClient, reportCacheTTL())

	return env
}

func reportCacheTTL() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("REPORT_CACHE_TTL"))
	if err != nil || secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

// Env is the singleton registry
var Env *Environment

// Initialize injects the store connections into the models
// (do not confuse with package init)
func Initialize() {
	Env = newEnv(database.GetConnection(), database.GetRedisConnection())
}
