package controllers

import (
	"net/http"
	"water-gardens/environment"

	"github.com/gin-gonic/gin"
)

// TopAquascapers returns the gardens matching the fixed featuring rule
// format => http://localhost:3000/aquascapers/top?n=5
func TopAquascapers(c *gin.Context) {

	limit := int64(queryInt(c, "n", defaultTopN))

	gardens, err := environment.Env.GardenModel.TopAquascapers(limit)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, gardens)
}

// ListAquascaperNames returns the distinct aquascaper names
func ListAquascaperNames(c *gin.Context) {

	names, err := environment.Env.ReportModel.AquascaperNames()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, names)
}

// CountGardensByAquascaper returns the garden count per aquascaper name
func CountGardensByAquascaper(c *gin.Context) {

	counts, err := environment.Env.ReportModel.AquascaperCounts()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// CountGardensByComplexity returns the garden count per complexity level
func CountGardensByComplexity(c *gin.Context) {

	counts, err := environment.Env.ReportModel.ComplexityCounts()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GardenRatingStats returns count/ave/min/max of rating levels per garden
func GardenRatingStats(c *gin.Context) {

	stats, err := environment.Env.ReportModel.RatingStats()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, stats)
}
