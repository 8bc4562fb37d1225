package controllers

import (
	"net/http"
	"water-gardens/analytics"
	"water-gardens/environment"

	"github.com/gin-gonic/gin"
)

// GetPlantVisits returns the live visit count of a plant
// format => http://localhost:3000/plant/604b6859f09f3aeecc9215c5/visits?startDT=2021-03-20
func GetPlantVisits(c *gin.Context) {
	getVisits(c, analytics.DomainPlants)
}

// GetGardenVisits returns the live visit count of a garden
func GetGardenVisits(c *gin.Context) {
	getVisits(c, analytics.DomainGardens)
}

func getVisits(c *gin.Context, domain string) {

	visits, err := environment.Env.Tracker.GetVisits(domain, c.Param("id"), queryStartDate(c))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Visits int64 `json:"visits"`
	}{visits}

	c.JSON(http.StatusOK, res)
}
