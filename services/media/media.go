package media

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	adRepo "forotrix/database/repository/ad"
	mediaRepo "forotrix/database/repository/media"
	"forotrix/models"
	"forotrix/services/audit"
	"forotrix/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterInput describes an asset a client uploaded directly to the provider
// and now wants recorded (and optionally attached to an ad).
type RegisterInput struct {
	PublicID string
	URL      string
	Format   string
	Bytes    int64
	Width    int
	Height   int
	AdID     string
}

// SignatureResult is the response of the upload-signature endpoint: the
// signature plus the sanitized parameter set that was actually signed.
type SignatureResult struct {
	Signature string            `json:"signature"`
	Params    map[string]string `json:"params"`
}

// MediaService manages uploaded assets and their links to ads.
type MediaService interface {
	RequestUploadConfig(ctx context.Context, ownerID, folder string) (UploadConfig, error)
	SignUploadParams(ctx context.Context, ownerID string, params map[string]string) (*SignatureResult, error)
	Register(ctx context.Context, ownerID string, in RegisterInput) (*models.Media, error)
	Delete(ctx context.Context, ownerID, mediaID string) error
	ReplaceAdMedia(ctx context.Context, ownerID, adID string, mediaIDs []string) error
	DetachFromAd(ctx context.Context, adID string) error
	PurgeOwner(ctx context.Context, ownerID string) error
}

// DefaultMediaService is the production implementation.
type DefaultMediaService struct {
	Repo     mediaRepo.MediaRepository
	Ads      adRepo.AdRepository
	Provider Provider
	Audit    audit.Sink
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (s *DefaultMediaService) ownerFolder(ownerID string) string {
	return fmt.Sprintf("%s/%s", s.Provider.UploadFolder(), ownerID)
}

// RequestUploadConfig returns a signed direct-upload form scoped to the
// owner's folder.
func (s *DefaultMediaService) RequestUploadConfig(ctx context.Context, ownerID, folder string) (UploadConfig, error) {
	return s.Provider.GetUploadConfig(ownerID, folder), nil
}

// SignUploadParams signs client-supplied upload parameters after forcing the
// folder to the owner's own and replacing bogus timestamps.
func (s *DefaultMediaService) SignUploadParams(ctx context.Context, ownerID string, params map[string]string) (*SignatureResult, error) {
	expectedFolder := s.ownerFolder(ownerID)

	sanitized := make(map[string]string, len(params))
	for k, v := range params {
		sanitized[k] = v
	}
	if folder, ok := sanitized["folder"]; ok && folder != "" && folder != expectedFolder {
		return nil, ErrInvalidFolder
	}
	sanitized["folder"] = expectedFolder

	ts, err := strconv.ParseInt(sanitized["timestamp"], 10, 64)
	if err != nil || ts <= 0 {
		ts = time.Now().Unix()
	}
	sanitized["timestamp"] = strconv.FormatInt(ts, 10)

	return &SignatureResult{
		Signature: s.Provider.SignUploadParams(sanitized),
		Params:    sanitized,
	}, nil
}

// Register records an uploaded asset after verifying it actually lives inside
// the owner's folder on our cloud. Re-registering the same publicId is a
// conflict.
func (s *DefaultMediaService) Register(ctx context.Context, ownerID string, in RegisterInput) (*models.Media, error) {
	publicID := strings.ReplaceAll(in.PublicID, `\`, "/")
	if strings.Contains(publicID, "..") {
		return nil, ErrInvalidPath
	}
	if !strings.HasPrefix(publicID, s.ownerFolder(ownerID)+"/") {
		return nil, ErrInvalidOrigin
	}
	if !strings.Contains(in.URL, s.Provider.CloudName()) {
		return nil, ErrUnexpectedURL
	}

	if _, err := s.Repo.GetByPublicID(ctx, publicID, ownerID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check existing media: %w", err)
	}

	now := time.Now().UTC()
	media := &models.Media{
		ID:        uuid.NewString(),
		Owner:     ownerID,
		URL:       in.URL,
		PublicID:  publicID,
		Provider:  s.Provider.Name(),
		Format:    in.Format,
		Bytes:     in.Bytes,
		Width:     in.Width,
		Height:    in.Height,
		Kind:      "image",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	if in.AdID != "" {
		ad, err := s.Ads.GetOwned(ctx, in.AdID, ownerID)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrAdNotFound
			}
			return nil, err
		}
		if err := s.ReplaceAdMedia(ctx, ownerID, ad.ID, append(append([]string{}, ad.Images...), media.ID)); err != nil {
			return nil, err
		}
	}

	var adMeta interface{}
	if in.AdID != "" {
		adMeta = in.AdID
	}
	s.Audit.Record(ctx, audit.Event{
		Action:   "media:register",
		ActorID:  ownerID,
		TargetID: media.ID,
		Metadata: map[string]interface{}{"adId": adMeta},
	})
	return media, nil
}

// Delete destroys the asset at the provider, unlinks it from its ad if any,
// and removes the record.
func (s *DefaultMediaService) Delete(ctx context.Context, ownerID, mediaID string) error {
	media, err := s.Repo.GetOwned(ctx, mediaID, ownerID)
	if err != nil {
		if isNotFound(err) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.Provider.DeleteAsset(ctx, media.PublicID); err != nil {
		return err
	}

	if media.Ad != "" {
		if ad, err := s.Ads.GetOwned(ctx, media.Ad, ownerID); err == nil {
			images := make([]string, 0, len(ad.Images))
			for _, id := range ad.Images {
				if id != mediaID {
					images = append(images, id)
				}
			}
			ad.Images = images
			ad.UpdatedAt = time.Now().UTC()
			if err := s.Ads.Update(ctx, ad); err != nil {
				return fmt.Errorf("failed to unlink media from ad: %w", err)
			}
		}
	}

	if err := s.Repo.Delete(ctx, mediaID); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	s.Audit.Record(ctx, audit.Event{
		Action:   "media:delete",
		ActorID:  ownerID,
		TargetID: mediaID,
	})
	return nil
}

// ReplaceAdMedia points the ad at exactly the given media set, preserving the
// requested order. Removed media are unlinked but not destroyed.
func (s *DefaultMediaService) ReplaceAdMedia(ctx context.Context, ownerID, adID string, mediaIDs []string) error {
	ad, err := s.Ads.GetOwned(ctx, adID, ownerID)
	if err != nil {
		if isNotFound(err) {
			return ErrAdNotFound
		}
		return err
	}

	// Dedupe while keeping the first occurrence's position.
	seen := make(map[string]bool, len(mediaIDs))
	nextIDs := make([]string, 0, len(mediaIDs))
	for _, id := range mediaIDs {
		if !seen[id] {
			seen[id] = true
			nextIDs = append(nextIDs, id)
		}
	}

	var owned []models.Media
	if len(nextIDs) > 0 {
		owned, err = s.Repo.GetOwnedByIDs(ctx, ownerID, nextIDs)
		if err != nil {
			return fmt.Errorf("failed to load media: %w", err)
		}
		if len(owned) != len(nextIDs) {
			return ErrMediaNotOwned
		}
		for _, m := range owned {
			if m.Ad != "" && m.Ad != adID {
				return ErrMediaLinked
			}
		}
	}

	var toDetach []string
	for _, id := range ad.Images {
		if !seen[id] {
			toDetach = append(toDetach, id)
		}
	}
	if len(toDetach) > 0 {
		if err := s.Repo.ClearAd(ctx, toDetach); err != nil {
			return fmt.Errorf("failed to detach media: %w", err)
		}
	}
	if len(nextIDs) > 0 {
		if err := s.Repo.SetAd(ctx, nextIDs, adID); err != nil {
			return fmt.Errorf("failed to attach media: %w", err)
		}
	}

	byID := make(map[string]bool, len(owned))
	for _, m := range owned {
		byID[m.ID] = true
	}
	images := make([]string, 0, len(nextIDs))
	for _, id := range nextIDs {
		if byID[id] {
			images = append(images, id)
		}
	}

	ad.Images = images
	ad.UpdatedAt = time.Now().UTC()
	if err := s.Ads.Update(ctx, ad); err != nil {
		return fmt.Errorf("failed to update ad images: %w", err)
	}
	return nil
}

// DetachFromAd destroys and removes every asset linked to the ad. Used by the
// ad deletion cascade.
func (s *DefaultMediaService) DetachFromAd(ctx context.Context, adID string) error {
	items, err := s.Repo.ListByAd(ctx, adID)
	if err != nil {
		return fmt.Errorf("failed to list ad media: %w", err)
	}
	logger := utils.GetLogger()
	for _, item := range items {
		if err := s.Provider.DeleteAsset(ctx, item.PublicID); err != nil {
			logger.Sugar().Warnf("failed to delete asset %s: %v", item.PublicID, err)
		}
		if err := s.Repo.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to delete media record: %w", err)
		}
	}
	return nil
}

// PurgeOwner destroys every asset the owner has. Used by the account deletion
// cascade after their ads are gone.
func (s *DefaultMediaService) PurgeOwner(ctx context.Context, ownerID string) error {
	items, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list owner media: %w", err)
	}
	logger := utils.GetLogger()
	for _, item := range items {
		if err := s.Provider.DeleteAsset(ctx, item.PublicID); err != nil {
			logger.Sugar().Warnf("failed to delete asset %s: %v", item.PublicID, err)
		}
		if err := s.Repo.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to delete media record: %w", err)
		}
	}
	return nil
}
