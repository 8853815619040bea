package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler so routes can be registered
// from one place.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler       gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	RefreshHandler        gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	UpdatePasswordHandler gin.HandlerFunc
	DeleteAccountHandler  gin.HandlerFunc

	// Ad endpoints
	ListAdsHandler      gin.HandlerFunc
	ListFiltersHandler  gin.HandlerFunc
	ListOwnAdsHandler   gin.HandlerFunc
	GetAdHandler        gin.HandlerFunc
	CreateAdHandler     gin.HandlerFunc
	UpdateAdHandler     gin.HandlerFunc
	PublishAdHandler    gin.HandlerFunc
	UnpublishAdHandler  gin.HandlerFunc
	DeleteAdHandler     gin.HandlerFunc
	ListCommentsHandler gin.HandlerFunc
	AddCommentHandler   gin.HandlerFunc

	// Media endpoints
	UploadConfigHandler    gin.HandlerFunc
	UploadSignatureHandler gin.HandlerFunc
	RegisterMediaHandler   gin.HandlerFunc
	DeleteMediaHandler     gin.HandlerFunc

	// Feed, events, assets
	FeedHandler       gin.HandlerFunc
	LogEventHandler   gin.HandlerFunc
	HeroAssetsHandler gin.HandlerFunc
}

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
