package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevanshiArora1/learnlink/internal/app"
	"github.com/DevanshiArora1/learnlink/internal/domain"
)

func listResourcesHandler(resources *app.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := resources.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createResourceHandler(resources *app.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title       string   `json:"title"`
			Link        string   `json:"link"`
			Description string   `json:"desc"`
			Tags        []string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		r, err := resources.Create(c.Request.Context(), req.Title, req.Link, req.Description, req.Tags, currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func likeResourceHandler(resources *app.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := resources.Like(c.Request.Context(), domain.ResourceID(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func deleteResourceHandler(resources *app.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := resources.Delete(c.Request.Context(), domain.ResourceID(c.Param("id")), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
