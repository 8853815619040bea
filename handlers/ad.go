package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	adRepo "forotrix/database/repository/ad"
	"forotrix/models"
	adService "forotrix/services/ad"
	commentService "forotrix/services/comment"
	"forotrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func validateLength(field, value string, min, max int) error {
	if len(value) < min || len(value) > max {
		return fmt.Errorf("%s must be %d-%d characters", field, min, max)
	}
	return nil
}

func validateStringList(field string, items []string, maxItems, minLen, maxLen int) error {
	if len(items) > maxItems {
		return fmt.Errorf("%s allows at most %d items", field, maxItems)
	}
	for _, item := range items {
		if err := validateLength(field+" items", item, minLen, maxLen); err != nil {
			return err
		}
	}
	return nil
}

func validateProfileType(value string) error {
	if value != models.ProfileTypeChicas && value != models.ProfileTypeTrans {
		return fmt.Errorf("profileType must be chicas or trans")
	}
	return nil
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out
}

type createAdRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	City        string                 `json:"city"`
	Services    []string               `json:"services"`
	Tags        []string               `json:"tags"`
	ProfileType string                 `json:"profileType"`
	Age         int                    `json:"age"`
	PriceFrom   float64                `json:"priceFrom"`
	PriceTo     float64                `json:"priceTo"`
	Highlighted bool                   `json:"highlighted"`
	ImageIDs    []string               `json:"imageIds"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (r *createAdRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.City = strings.TrimSpace(r.City)
	r.Services = trimAll(r.Services)
	r.Tags = trimAll(r.Tags)

	if err := validateLength("title", r.Title, 3, 120); err != nil {
		return err
	}
	if err := validateLength("description", r.Description, 10, 2000); err != nil {
		return err
	}
	if r.City != "" {
		if err := validateLength("city", r.City, 2, 120); err != nil {
			return err
		}
	}
	if err := validateStringList("services", r.Services, 20, 2, 60); err != nil {
		return err
	}
	if err := validateStringList("tags", r.Tags, 30, 2, 60); err != nil {
		return err
	}
	if r.ProfileType != "" {
		if err := validateProfileType(r.ProfileType); err != nil {
			return err
		}
	}
	if r.Age != 0 && (r.Age < 18 || r.Age > 99) {
		return fmt.Errorf("age must be between 18 and 99")
	}
	if r.PriceFrom < 0 || r.PriceFrom > 1000000 || r.PriceTo < 0 || r.PriceTo > 1000000 {
		return fmt.Errorf("prices must be between 0 and 1000000")
	}
	if len(r.ImageIDs) > 10 {
		return fmt.Errorf("imageIds allows at most 10 items")
	}
	return adService.ValidateMetadataInput(r.Metadata)
}

type updateAdRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	City        *string                `json:"city"`
	Services    []string               `json:"services"`
	Tags        []string               `json:"tags"`
	ProfileType *string                `json:"profileType"`
	Age         *int                   `json:"age"`
	PriceFrom   *float64               `json:"priceFrom"`
	PriceTo     *float64               `json:"priceTo"`
	Highlighted *bool                  `json:"highlighted"`
	ImageIDs    []string               `json:"imageIds"`
	Metadata    map[string]interface{} `json:"metadata"`
	metadataSet bool
}

// UnmarshalJSON tracks whether the metadata key was present at all, since an
// explicit null clears the stored block while an absent key leaves it alone.
func (r *updateAdRequest) UnmarshalJSON(data []byte) error {
	type alias updateAdRequest
	var decoded alias
	if err := utils.StrictUnmarshal(data, &decoded); err != nil {
		return err
	}
	*r = updateAdRequest(decoded)
	r.metadataSet = utils.HasJSONKey(data, "metadata")
	return nil
}

func (r *updateAdRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if err := validateLength("title", *r.Title, 3, 120); err != nil {
			return err
		}
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if err := validateLength("description", *r.Description, 10, 2000); err != nil {
			return err
		}
	}
	if r.City != nil {
		*r.City = strings.TrimSpace(*r.City)
		if *r.City != "" {
			if err := validateLength("city", *r.City, 2, 120); err != nil {
				return err
			}
		}
	}
	r.Services = trimAll(r.Services)
	r.Tags = trimAll(r.Tags)
	if err := validateStringList("services", r.Services, 20, 2, 60); err != nil {
		return err
	}
	if err := validateStringList("tags", r.Tags, 30, 2, 60); err != nil {
		return err
	}
	if r.ProfileType != nil {
		if err := validateProfileType(*r.ProfileType); err != nil {
			return err
		}
	}
	if r.Age != nil && (*r.Age < 18 || *r.Age > 99) {
		return fmt.Errorf("age must be between 18 and 99")
	}
	if r.PriceFrom != nil && (*r.PriceFrom < 0 || *r.PriceFrom > 1000000) {
		return fmt.Errorf("prices must be between 0 and 1000000")
	}
	if r.PriceTo != nil && (*r.PriceTo < 0 || *r.PriceTo > 1000000) {
		return fmt.Errorf("prices must be between 0 and 1000000")
	}
	if len(r.ImageIDs) > 10 {
		return fmt.Errorf("imageIds allows at most 10 items")
	}
	return adService.ValidateMetadataInput(r.Metadata)
}

// parseListQuery maps the listing query string onto repository filters.
func parseListQuery(c *gin.Context) (adRepo.ListFilters, int, int, error) {
	filters := adRepo.ListFilters{}

	filters.Text = strings.TrimSpace(c.Query("text"))
	if filters.Text != "" {
		if err := validateLength("text", filters.Text, 2, 120); err != nil {
			return filters, 0, 0, err
		}
	}
	filters.City = strings.TrimSpace(c.Query("city"))
	if filters.City != "" {
		if err := validateLength("city", filters.City, 2, 120); err != nil {
			return filters, 0, 0, err
		}
	}
	if plan := c.Query("plan"); plan != "" {
		if plan != models.PlanBasic && plan != models.PlanPremium {
			return filters, 0, 0, fmt.Errorf("plan must be basic or premium")
		}
		filters.Plan = plan
	}
	if profileType := c.Query("profileType"); profileType != "" {
		if err := validateProfileType(profileType); err != nil {
			return filters, 0, 0, err
		}
		filters.ProfileType = profileType
	}
	if sex := c.Query("sex"); sex != "" {
		if sex != models.SexFemale && sex != models.SexMale {
			return filters, 0, 0, fmt.Errorf("sex must be female or male")
		}
		filters.Sex = sex
	}
	if identity := c.Query("identity"); identity != "" {
		if identity != models.IdentityCis && identity != models.IdentityTrans {
			return filters, 0, 0, fmt.Errorf("identity must be cis or trans")
		}
		filters.Identity = identity
	}
	for _, name := range []string{"ageMin", "ageMax"} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 18 || n > 99 {
			return filters, 0, 0, fmt.Errorf("%s must be an integer between 18 and 99", name)
		}
		if name == "ageMin" {
			filters.AgeMin = n
		} else {
			filters.AgeMax = n
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if raw != "true" && raw != "false" {
			return filters, 0, 0, fmt.Errorf("featured must be true or false")
		}
		featured := raw == "true"
		filters.Featured = &featured
	}
	if raw := c.Query("weekly"); raw != "" {
		if raw != "true" && raw != "false" {
			return filters, 0, 0, fmt.Errorf("weekly must be true or false")
		}
		filters.Weekly = raw == "true"
	}
	for _, service := range c.QueryArray("services") {
		service = strings.TrimSpace(service)
		if service != "" {
			filters.Services = append(filters.Services, service)
		}
	}
	for _, id := range c.QueryArray("excludeIds") {
		id = strings.TrimSpace(id)
		if id == "" {
			return filters, 0, 0, fmt.Errorf("excludeIds entries must be non-empty")
		}
		filters.ExcludeIDs = append(filters.ExcludeIDs, id)
	}

	page, limit, err := parsePagination(c)
	if err != nil {
		return filters, 0, 0, err
	}
	return filters, page, limit, nil
}

func parsePagination(c *gin.Context) (int, int, error) {
	page, limit := 1, 20
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			return 0, 0, fmt.Errorf("limit must be an integer between 1 and 50")
		}
		limit = n
	}
	return page, limit, nil
}

// adError maps ad service errors to HTTP responses.
func adError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, adService.ErrAdNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", "")
	case errors.Is(err, adService.ErrAdBlocked):
		utils.JSONError(c, http.StatusForbidden, "Ad blocked by admin", "")
	case errors.Is(err, adService.ErrMissingPublishFields):
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields to publish", "")
	case errors.Is(err, adService.ErrNoImages):
		utils.JSONError(c, http.StatusBadRequest, "Anuncio requiere al menos una imagen para publicar", "")
	default:
		mediaError(c, err)
	}
}

// ListAdsHandler serves the public listing with its full filter set.
func ListAdsHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters, page, limit, err := parseListQuery(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
			return
		}
		out, err := svc.List(c.Request.Context(), filters, page, limit)
		if err != nil {
			getLogger(c).Error("Failed to list ads", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list ads", "")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListFiltersHandler serves the static filters catalog.
func ListFiltersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"services": models.ServiceFilterOptions,
			"age":      models.AgeFilter,
		})
	}
}

// ListOwnAdsHandler serves the caller's ads in every status.
func ListOwnAdsHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePagination(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
			return
		}
		out, err := svc.ListOwn(c.Request.Context(), currentUserID(c), page, limit)
		if err != nil {
			getLogger(c).Error("Failed to list own ads", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list ads", "")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetAdHandler serves one published ad.
func GetAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.GetPublic(c.Request.Context(), c.Param("id"))
		if err != nil {
			adError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// CreateAdHandler creates a draft ad for the caller.
func CreateAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Create(c.Request.Context(), currentUserID(c), adService.CreateAdInput{
			Title:       req.Title,
			Description: req.Description,
			City:        req.City,
			Services:    req.Services,
			Tags:        req.Tags,
			Age:         req.Age,
			PriceFrom:   req.PriceFrom,
			PriceTo:     req.PriceTo,
			ProfileType: req.ProfileType,
			Highlighted: req.Highlighted,
			ImageIDs:    req.ImageIDs,
			Metadata:    req.Metadata,
		})
		if err != nil {
			adError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// UpdateAdHandler applies a partial update to an owned ad.
func UpdateAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateAdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Update(c.Request.Context(), currentUserID(c), c.Param("id"), adService.UpdateAdInput{
			Title:       req.Title,
			Description: req.Description,
			City:        req.City,
			Services:    req.Services,
			Tags:        req.Tags,
			Age:         req.Age,
			PriceFrom:   req.PriceFrom,
			PriceTo:     req.PriceTo,
			ProfileType: req.ProfileType,
			Highlighted: req.Highlighted,
			ImageIDs:    req.ImageIDs,
			Metadata:    req.Metadata,
			MetadataSet: req.metadataSet,
		})
		if err != nil {
			adError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// PublishAdHandler publishes a draft.
func PublishAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Publish(c.Request.Context(), currentUserID(c), c.Param("id"))
		if err != nil {
			adError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// UnpublishAdHandler reverts a published ad to draft.
func UnpublishAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Unpublish(c.Request.Context(), currentUserID(c), c.Param("id"))
		if err != nil {
			adError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// DeleteAdHandler deletes an owned ad and its media.
func DeleteAdHandler(svc adService.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
			adError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

// ListCommentsHandler serves one page of a published ad's comments.
func ListCommentsHandler(svc commentService.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePagination(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
			return
		}
		out, err := svc.List(c.Request.Context(), c.Param("id"), page, limit)
		if err != nil {
			commentError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// AddCommentHandler posts a comment on a published ad.
func AddCommentHandler(svc commentService.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if err := validateLength("text", req.Text, 2, 500); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Create(c.Request.Context(), c.Param("id"), currentUserID(c), req.Text)
		if err != nil {
			commentError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func commentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commentService.ErrAdNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", "")
	case errors.Is(err, commentService.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	default:
		getLogger(c).Error("Comment operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
