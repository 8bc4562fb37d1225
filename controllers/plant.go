package controllers

import (
	"net/http"
	"water-gardens/analytics"
	"water-gardens/environment"
	"water-gardens/models"

	"github.com/gin-gonic/gin"
)

// AddPlant creates a new plant
func AddPlant(c *gin.Context) {

	var (
		data     models.Plant
		apiError ErrorResponse
	)

	// use "shouldBind" - not all fields are required in this context
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	id, err := environment.Env.PlantModel.Create(&data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Created{id})
}

// GetPlant returns the specified plant
func GetPlant(c *gin.Context) {

	var id = c.Param("id")

	data, err := environment.Env.PlantModel.Get(id)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Tracker.SaveVisit(analytics.DomainPlants, id, c.ClientIP())

	c.JSON(http.StatusOK, data)
}

// ListPlants lists or searches plants
// format => http://localhost:3000/plants?care=easy&search=fern
func ListPlants(c *gin.Context) {

	search := new(models.PlantSearch)
	search.Name = c.Query("name")
	search.Appearance = c.Query("appearance")
	search.Care = c.Query("care")
	search.Lighting = c.Query("lighting")
	search.SmartTag = c.Query("smarttag")
	search.Term = c.Query("search")

	plants, err := environment.Env.PlantModel.Search(search)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, plants)
}

// UpdatePlant replaces every mutable field of the specified plant
func UpdatePlant(c *gin.Context) {

	var (
		data     models.Plant
		apiError ErrorResponse
	)

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	res, err := environment.Env.PlantModel.Update(c.Param("id"), &data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeletePlant removes the specified plant; gardens keep their snapshots
func DeletePlant(c *gin.Context) {

	res, err := environment.Env.PlantModel.Delete(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// LikePlant adds exactly one like
func LikePlant(c *gin.Context) {

	res, err := environment.Env.PlantModel.AddLike(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// AddPlantTag appends a smart tag
func AddPlantTag(c *gin.Context) {

	var apiError ErrorResponse

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		Tag string `json:"tag" binding:"required"`
	}{}

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	res, err := environment.Env.PlantModel.AddTag(c.Param("id"), data.Tag)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// RemovePlantTag removes all occurrences of a smart tag
func RemovePlantTag(c *gin.Context) {

	var apiError ErrorResponse

	data := struct {
		Tag string `json:"tag" binding:"required"`
	}{}

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	res, err := environment.Env.PlantModel.RemoveTag(c.Param("id"), data.Tag)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// TopPlants returns the ranked plant listing
// format => http://localhost:3000/plants/top?n=5&likes=10&care=easy&care=medium&lighting=low
func TopPlants(c *gin.Context) {

	search := new(models.PlantTopSearch)
	search.MinLikes = queryInt(c, "likes", 0)
	search.Care = c.QueryArray("care")
	search.Lighting = c.Query("lighting")
	search.Limit = int64(queryInt(c, "n", defaultTopN))

	plants, err := environment.Env.PlantModel.TopByLikes(search)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, plants)
}

// ListSmartTags returns the distinct tag values across all plants
func ListSmartTags(c *gin.Context) {

	tags, err := environment.Env.ReportModel.SmartTags()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, tags)
}
