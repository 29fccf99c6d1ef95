package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevanshiArora1/learnlink/internal/app"
	"github.com/DevanshiArora1/learnlink/internal/domain"
)

func listGroupsHandler(groups *app.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := groups.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createGroupHandler(groups *app.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string   `json:"name"`
			Description string   `json:"desc"`
			Tags        []string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		g, err := groups.Create(c.Request.Context(), req.Name, req.Description, req.Tags, currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

func joinGroupHandler(groups *app.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := groups.Join(c.Request.Context(), domain.GroupID(c.Param("id")), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

func leaveGroupHandler(groups *app.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := groups.Leave(c.Request.Context(), domain.GroupID(c.Param("id")), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

func deleteGroupHandler(groups *app.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := groups.Delete(c.Request.Context(), domain.GroupID(c.Param("id")), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
