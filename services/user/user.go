package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	adRepo "forotrix/database/repository/ad"
	commentRepo "forotrix/database/repository/comment"
	userRepo "forotrix/database/repository/user"
	"forotrix/models"
	"forotrix/services/audit"
	"forotrix/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// MediaPurger is the slice of the media service the account cascade needs.
type MediaPurger interface {
	DetachFromAd(ctx context.Context, adID string) error
	PurgeOwner(ctx context.Context, ownerID string) error
}

// PublicUser is the account shape returned to clients.
type PublicUser struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	Name           string                  `json:"name,omitempty"`
	Contacts       *models.ContactChannels `json:"contacts"`
	AvatarURL      string                  `json:"avatarUrl,omitempty"`
	AvatarPublicID string                  `json:"avatarPublicId,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// AuthResponse pairs the account with a fresh token pair.
type AuthResponse struct {
	User    PublicUser `json:"user"`
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
}

// Avatar is a profile image reference; a nil Avatar in UpdateProfileInput
// leaves it unchanged, a zero-value one clears it.
type Avatar struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// UpdateProfileInput is a partial profile update.
type UpdateProfileInput struct {
	Email       string
	Name        *string
	Contacts    map[string]interface{}
	ContactsSet bool
	Avatar      *Avatar
	AvatarSet   bool
}

// UserService manages accounts and sessions.
type UserService interface {
	Register(ctx context.Context, email, password, role, name string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Refresh(ctx context.Context, rawRefresh string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*PublicUser, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*PublicUser, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Ads      adRepo.AdRepository
	Comments commentRepo.CommentRepository
	Media    MediaPurger
	Audit    audit.Sink
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeContacts(raw map[string]interface{}) *models.ContactChannels {
	if raw == nil {
		return nil
	}
	pick := func(key string) string {
		s, _ := raw[key].(string)
		return strings.TrimSpace(s)
	}
	contacts := models.ContactChannels{
		Whatsapp: pick("whatsapp"),
		Telegram: pick("telegram"),
		Phone:    pick("phone"),
		Email:    pick("email"),
		Website:  pick("website"),
	}
	if contacts == (models.ContactChannels{}) {
		return nil
	}
	return &contacts
}

func toPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		Name:           u.Name,
		Contacts:       u.Contacts,
		AvatarURL:      u.AvatarURL,
		AvatarPublicID: u.AvatarPublicID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// rotateTokens issues a fresh access/refresh pair and stores the new refresh
// hash, invalidating any previously issued refresh token.
func (s *DefaultUserService) rotateTokens(ctx context.Context, u *models.User) (access, refresh string, err error) {
	access, err = utils.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = utils.GenerateRefreshToken(u.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	u.RefreshTokenHash = utils.HashToken(refresh)
	u.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", "", fmt.Errorf("failed to persist session: %w", err)
	}
	return access, refresh, nil
}

func (s *DefaultUserService) authResponse(ctx context.Context, u *models.User) (*AuthResponse, error) {
	access, refresh, err := s.rotateTokens(ctx, u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: toPublicUser(u), Access: access, Refresh: refresh}, nil
}

// Register creates an account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, email, password, role, name string) (*AuthResponse, error) {
	normalized := normalizeEmail(email)
	if _, err := s.Repo.GetByEmail(ctx, normalized); err == nil {
		return nil, ErrEmailInUse
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:        uuid.NewString(),
		Email:     normalized,
		Password:  string(hashed),
		Role:      role,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.authResponse(ctx, u)
}

// Login verifies credentials and rotates the session.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(ctx, u)
}

// Refresh validates a refresh token against the stored hash and rotates the
// pair. A token that was already rotated out is rejected.
func (s *DefaultUserService) Refresh(ctx context.Context, rawRefresh string) (*AuthResponse, error) {
	sub, err := utils.ValidateRefreshToken(rawRefresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	u, err := s.Repo.GetByID(ctx, sub)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if u.RefreshTokenHash == "" {
		return nil, ErrNoSession
	}
	if subtle.ConstantTimeCompare([]byte(u.RefreshTokenHash), []byte(utils.HashToken(rawRefresh))) != 1 {
		return nil, ErrInvalidRefresh
	}
	return s.authResponse(ctx, u)
}

// Logout drops the stored refresh hash, ending the session.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	u.RefreshTokenHash = ""
	u.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, u)
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	public := toPublicUser(u)
	return &public, nil
}

// UpdateProfile applies a partial profile update; changing email re-checks
// uniqueness.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Email != "" {
		normalized := normalizeEmail(in.Email)
		if normalized != u.Email {
			if other, err := s.Repo.GetByEmail(ctx, normalized); err == nil && other.ID != userID {
				return nil, ErrEmailInUse
			} else if err != nil && !isNotFound(err) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			u.Email = normalized
		}
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactsSet {
		u.Contacts = sanitizeContacts(in.Contacts)
	}
	if in.AvatarSet {
		if in.Avatar != nil {
			u.AvatarURL = in.Avatar.URL
			u.AvatarPublicID = in.Avatar.PublicID
		} else {
			u.AvatarURL = ""
			u.AvatarPublicID = ""
		}
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	public := toPublicUser(u)
	return &public, nil
}

// UpdatePassword verifies the current password before replacing it.
func (s *DefaultUserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)) != nil {
		return ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hashed)
	u.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, u)
}

// DeleteAccount removes the account and everything it owns: ads with their
// media assets, orphan media, and comments.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	adIDs, err := s.Ads.ListIDsByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list owned ads: %w", err)
	}
	for _, adID := range adIDs {
		if err := s.Media.DetachFromAd(ctx, adID); err != nil {
			return err
		}
	}
	if len(adIDs) > 0 {
		if err := s.Ads.DeleteByOwner(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete owned ads: %w", err)
		}
	}

	if err := s.Media.PurgeOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.Comments.DeleteByAuthor(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.Audit.Record(ctx, audit.Event{
		Action:   "account:delete",
		ActorID:  userID,
		TargetID: userID,
	})
	return nil
}
