package handlers

import (
	"fmt"
	"net/http"

	"forotrix/config"

	"github.com/gin-gonic/gin"
)

type heroAsset struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// The hero carousel assets shipped with the product.
var heroAssets = []heroAsset{
	{ID: "marina", Label: "Marina hero", PublicID: "marina-hero"},
	{ID: "valentina", Label: "Valentina hero", PublicID: "valentina-hero"},
	{ID: "kiara", Label: "Kiara hero", PublicID: "kiara-hero"},
}

// HeroAssetsHandler serves the hero images with fully-qualified delivery URLs.
func HeroAssetsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.AppConfig
		items := make([]heroAsset, 0, len(heroAssets))
		for _, asset := range heroAssets {
			publicID := fmt.Sprintf("%s/%s", cfg.CloudinaryBaseFolder, asset.PublicID)
			items = append(items, heroAsset{
				ID:       asset.ID,
				Label:    asset.Label,
				PublicID: publicID,
				URL:      fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", cfg.CloudinaryCloudName, publicID),
			})
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
