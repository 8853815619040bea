package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"forotrix/models"
	userService "forotrix/services/user"
	"forotrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	credentialsRequest
	Role string `json:"role"`
	Name string `json:"name"`
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email must be a valid address")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func (r *registerRequest) Validate() error {
	if err := validateCredentials(r.Email, r.Password); err != nil {
		return err
	}
	switch r.Role {
	case models.RoleProvider, models.RoleAgency, models.RoleCustomer:
	default:
		return fmt.Errorf("role must be provider, agency or customer")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name != "" {
		if err := validateLength("name", r.Name, 2, 120); err != nil {
			return err
		}
	}
	return nil
}

func authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userService.ErrEmailInUse):
		utils.JSONError(c, http.StatusConflict, "Email already in use", "")
	case errors.Is(err, userService.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
	case errors.Is(err, userService.ErrInvalidRefresh):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh", "")
	case errors.Is(err, userService.ErrNoSession):
		utils.JSONError(c, http.StatusUnauthorized, "No session", "")
	case errors.Is(err, userService.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, userService.ErrInvalidPassword):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid current password", "")
	default:
		getLogger(c).Error("Auth operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// RegisterHandler creates an account and signs it in.
func RegisterHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Register(c.Request.Context(), req.Email, req.Password, req.Role, req.Name)
		if err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// LoginHandler verifies credentials and rotates the session.
func LoginHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := validateCredentials(req.Email, req.Password); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// RefreshHandler rotates a token pair from a valid refresh token.
func RefreshHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Refresh string `json:"refresh"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Refresh) < 10 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "refresh token required")
			return
		}
		out, err := svc.Refresh(c.Request.Context(), req.Refresh)
		if err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// LogoutHandler ends the caller's session.
func LogoutHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), currentUserID(c)); err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetProfileHandler serves the caller's account.
func GetProfileHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.GetProfile(c.Request.Context(), currentUserID(c))
		if err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type profileUpdateRequest struct {
	Email    string                 `json:"email"`
	Name     *string                `json:"name"`
	Contacts map[string]interface{} `json:"contacts"`
	Avatar   *userService.Avatar    `json:"avatar"`

	contactsSet bool
	avatarSet   bool
}

func (r *profileUpdateRequest) UnmarshalJSON(data []byte) error {
	type alias profileUpdateRequest
	var decoded alias
	if err := utils.StrictUnmarshal(data, &decoded); err != nil {
		return err
	}
	*r = profileUpdateRequest(decoded)
	r.contactsSet = utils.HasJSONKey(data, "contacts")
	r.avatarSet = utils.HasJSONKey(data, "avatar")
	return nil
}

func (r *profileUpdateRequest) Validate() error {
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email must be a valid address")
	}
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if err := validateLength("name", *r.Name, 2, 120); err != nil {
			return err
		}
	}
	if r.Avatar != nil {
		if !strings.HasPrefix(r.Avatar.URL, "http") {
			return fmt.Errorf("avatar url must be a valid URL")
		}
		if err := validateLength("avatar publicId", strings.TrimSpace(r.Avatar.PublicID), 3, 200); err != nil {
			return err
		}
	}
	return nil
}

// UpdateProfileHandler applies a partial profile update.
func UpdateProfileHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		out, err := svc.UpdateProfile(c.Request.Context(), currentUserID(c), userService.UpdateProfileInput{
			Email:       req.Email,
			Name:        req.Name,
			Contacts:    req.Contacts,
			ContactsSet: req.contactsSet,
			Avatar:      req.Avatar,
			AvatarSet:   req.avatarSet,
		})
		if err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// UpdatePasswordHandler changes the caller's password.
func UpdatePasswordHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if len(req.CurrentPassword) < 6 || len(req.NewPassword) < 6 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "passwords must be at least 6 characters")
			return
		}
		if err := svc.UpdatePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
			authError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteAccountHandler removes the caller's account and everything it owns.
func DeleteAccountHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
			authError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
