package handlers

import (
	"net/http"

	feedService "forotrix/services/feed"
	"forotrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler serves the assembled home feed: featured hero, weekly
// favorites, and the remaining grid.
func FeedHandler(svc feedService.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters, page, limit, err := parseListQuery(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
			return
		}
		out, err := svc.Home(c.Request.Context(), filters, page, limit)
		if err != nil {
			getLogger(c).Error("Failed to build feed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to build feed", "")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
