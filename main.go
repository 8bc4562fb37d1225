package main

import (
	"fmt"
	"log"
	"os"
	"time"
	"water-gardens/controllers"
	"water-gardens/database"
	"water-gardens/environment"
	"water-gardens/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	router = gin.Default()
)

func init() {
	// Load Config
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}
}

// setupRoutes registers the route table; kept apart from the server start so
// the table can be exercised in tests without binding a port
func setupRoutes(router *gin.Engine) {
	router.Use(middleware.CORSMiddleware())

	router.GET("/test", controllers.Test)

	router.GET("/lookups", controllers.ListLookups)

	// plants
	router.POST("/plant/add", controllers.AddPlant)
	router.GET("/plant/:id", controllers.GetPlant)
	router.GET("/plants", controllers.ListPlants)
	router.PUT("/plant/:id/edit", controllers.UpdatePlant)
	router.DELETE("/plant/:id", controllers.DeletePlant)

	router.PATCH("/plant/:id/likes/add_one", controllers.LikePlant)
	router.PATCH("/plant/:id/tags/add", controllers.AddPlantTag)
	router.PATCH("/plant/:id/tags/delete", controllers.RemovePlantTag)

	router.GET("/plants/top", controllers.TopPlants)
	router.GET("/plants/smarttags", controllers.ListSmartTags)

	// gardens
	router.POST("/garden/add", controllers.AddGarden)
	router.GET("/garden/:id", controllers.GetGarden)
	router.GET("/gardens", controllers.ListGardens)
	router.PUT("/garden/:id/edit", controllers.UpdateGarden)
	router.DELETE("/garden/:id", controllers.DeleteGarden)

	// embedded plant references & ratings
	// :pid and :rid must keep their names within a method tree (gin wildcard
	// rule), and gin rejects a static "add" segment next to the :rid wildcard,
	// so /garden/:id/rating/add is served by the :rid route (see AddRating)
	router.PATCH("/garden/:id/plant/:pid/add", controllers.AttachPlant)
	router.PATCH("/garden/:id/plant/:pid/delete", controllers.DetachPlant)
	router.PATCH("/garden/:id/rating/:rid", controllers.AddRating)
	router.PATCH("/garden/:id/rating/:rid/delete", controllers.RemoveRating)
	router.PUT("/garden/:id/rating/:rid/edit", controllers.EditRating)

	router.GET("/gardens/top", controllers.TopGardens)

	// reports
	router.GET("/aquascapers/top", controllers.TopAquascapers)
	router.GET("/aquascapers/names", controllers.ListAquascaperNames)
	router.GET("/aquascapers/count", controllers.CountGardensByAquascaper)
	router.GET("/gardens/count", controllers.CountGardensByComplexity)
	router.GET("/gardens/ratings", controllers.GardenRatingStats)

	// statistics (live visit counters, see analytics package)
	router.GET("/plant/:id/visits", controllers.GetPlantVisits)
	router.GET("/garden/:id/visits", controllers.GetGardenVisits)

	// system tools
	router.GET("/monitor/requests/count", controllers.CountRequests)
	router.GET("/monitor/requests/dump", controllers.DumpRequests)
	router.POST("/monitor/requests/flush", controllers.FlushRequests)
}

func handleRequests() {
	setupRoutes(router)

	switch os.Getenv("APP_ENV") {
	case "DEV":
		router.Run(":" + os.Getenv("API_PORT"))
	case "PRD":
		router.RunTLS(":"+os.Getenv("API_PORT"), os.Getenv("APP_CERTFILE"), os.Getenv("APP_KEYFILE"))
	default:
		panic(fmt.Errorf("APP_ENV not set"))
	}
}

func main() {
	// Connect to main database here (mongoDB)
	err := database.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseConnection()

	// connect to report cache (redis)
	err = database.OpenRedisConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseRedisConnection()

	// connect to visit analytics (influxDB)
	if os.Getenv("USE_ANALYTICS") == "YES" {
		err = database.OpenInfluxConnection()
		if err != nil {
			log.Fatal(err)
		}
		defer database.CloseInfluxConnection()
	}

	// Initialize the Models
	environment.Initialize()

	// move aged visit counters into the catalog documents and trim the
	// request registry once per hour
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			environment.Env.Tracker.Replicate()
			environment.Env.Requests.Flush()
		}
	}()

	fmt.Println("Water-Gardens running...")
	handleRequests()
}
