package routes

import (
	"net/http"
	"strings"
	"time"

	"forotrix/config"
	"forotrix/handlers"
	"forotrix/middleware"
	"forotrix/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var ownerRoles = []string{models.RoleProvider, models.RoleAgency}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := strings.Split(config.AppConfig.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api", middleware.DefaultRateLimit())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth", middleware.AuthRateLimit())
	{
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/login", hb.LoginHandler)
		auth.POST("/refresh", hb.RefreshHandler)
		auth.POST("/logout", middleware.RequireAuth(), hb.LogoutHandler)
		auth.GET("/profile", middleware.RequireAuth(), hb.GetProfileHandler)
		auth.PATCH("/profile", middleware.RequireAuth(), hb.UpdateProfileHandler)
		auth.PATCH("/password", middleware.RequireAuth(), hb.UpdatePasswordHandler)
		auth.DELETE("/account", middleware.RequireAuth(), hb.DeleteAccountHandler)
	}

	ads := api.Group("/ads")
	{
		ads.GET("", hb.ListAdsHandler)
		ads.GET("/filters", hb.ListFiltersHandler)
		ads.GET("/mine", middleware.RequireAuth(ownerRoles...), hb.ListOwnAdsHandler)
		ads.GET("/:id", hb.GetAdHandler)
		ads.GET("/:id/comments", hb.ListCommentsHandler)
		ads.POST("/:id/comments", middleware.RequireAuth(), hb.AddCommentHandler)

		mutate := ads.Group("", middleware.AdMutationRateLimit(), middleware.RequireAuth(ownerRoles...))
		mutate.POST("", hb.CreateAdHandler)
		mutate.PATCH("/:id", hb.UpdateAdHandler)
		mutate.POST("/:id/publish", hb.PublishAdHandler)
		mutate.POST("/:id/unpublish", hb.UnpublishAdHandler)
		mutate.DELETE("/:id", hb.DeleteAdHandler)
	}

	media := api.Group("/media", middleware.MediaRateLimit(), middleware.RequireAuth(ownerRoles...))
	{
		media.POST("/upload-config", hb.UploadConfigHandler)
		media.POST("/upload-signature", hb.UploadSignatureHandler)
		media.POST("", hb.RegisterMediaHandler)
		media.DELETE("/:id", hb.DeleteMediaHandler)
	}

	api.GET("/feed", hb.FeedHandler)
	api.POST("/events/log", hb.LogEventHandler)
	api.GET("/assets/hero", hb.HeroAssetsHandler)
}
