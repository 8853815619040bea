package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	mediaService "forotrix/services/media"
	"forotrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func mediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mediaService.ErrMediaNotFound):
		utils.JSONError(c, http.StatusNotFound, "Media not found", "")
	case errors.Is(err, mediaService.ErrAdNotFound):
		utils.JSONError(c, http.StatusNotFound, "Ad not found for media attachment", "")
	case errors.Is(err, mediaService.ErrAlreadyRegistered):
		utils.JSONError(c, http.StatusConflict, "Media already registered", "")
	case errors.Is(err, mediaService.ErrInvalidPath),
		errors.Is(err, mediaService.ErrInvalidOrigin),
		errors.Is(err, mediaService.ErrUnexpectedURL),
		errors.Is(err, mediaService.ErrInvalidFolder),
		errors.Is(err, mediaService.ErrMediaNotOwned),
		errors.Is(err, mediaService.ErrMediaLinked):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	default:
		getLogger(c).Error("Media operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// UploadConfigHandler returns a signed direct-upload form for the caller.
func UploadConfigHandler(svc mediaService.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.RequestUploadConfig(c.Request.Context(), currentUserID(c), "")
		if err != nil {
			mediaError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// UploadSignatureHandler signs client-chosen upload parameters.
func UploadSignatureHandler(svc mediaService.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ParamsToSign map[string]string `json:"paramsToSign"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.ParamsToSign == nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "paramsToSign required")
			return
		}
		out, err := svc.SignUploadParams(c.Request.Context(), currentUserID(c), req.ParamsToSign)
		if err != nil {
			mediaError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type registerMediaRequest struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	AdID     string `json:"adId"`
}

func (r *registerMediaRequest) Validate() error {
	if len(r.PublicID) < 3 {
		return fmt.Errorf("publicId must be at least 3 characters")
	}
	if !strings.HasPrefix(r.URL, "http") {
		return fmt.Errorf("url must be a valid URL")
	}
	if len(r.Format) > 16 {
		return fmt.Errorf("format must be at most 16 characters")
	}
	if r.Bytes < 0 || r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("bytes, width and height must be positive")
	}
	return nil
}

// RegisterMediaHandler records an uploaded asset.
func RegisterMediaHandler(svc mediaService.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerMediaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Register(c.Request.Context(), currentUserID(c), mediaService.RegisterInput{
			PublicID: req.PublicID,
			URL:      req.URL,
			Format:   req.Format,
			Bytes:    req.Bytes,
			Width:    req.Width,
			Height:   req.Height,
			AdID:     req.AdID,
		})
		if err != nil {
			mediaError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// DeleteMediaHandler destroys an owned asset.
func DeleteMediaHandler(svc mediaService.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
			mediaError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
