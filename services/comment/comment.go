package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	adRepo "forotrix/database/repository/ad"
	commentRepo "forotrix/database/repository/comment"
	userRepo "forotrix/database/repository/user"
	"forotrix/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	maxLimit     = 50
	defaultLimit = 20
	fallbackName = "Usuario"
)

var (
	// ErrAdNotFound covers missing and unpublished ads alike.
	ErrAdNotFound = errors.New("ad not found")
	// ErrUserNotFound signals a missing comment author.
	ErrUserNotFound = errors.New("user not found")
)

// AuthorView identifies a comment's author by display name only.
type AuthorView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CommentView is the serialized shape of one comment.
type CommentView struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    AuthorView `json:"author"`
}

// ListOutput is one page of comments.
type ListOutput struct {
	Items []CommentView `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Limit int           `json:"limit"`
}

// CommentService manages comments on published ads.
type CommentService interface {
	List(ctx context.Context, adID string, page, limit int) (*ListOutput, error)
	Create(ctx context.Context, adID, authorID, text string) (*CommentView, error)
}

// DefaultCommentService is the production implementation.
type DefaultCommentService struct {
	Repo  commentRepo.CommentRepository
	Ads   adRepo.AdRepository
	Users userRepo.UserRepository
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// ensurePublishedAd guards both operations: comments only exist on published
// ads.
func (s *DefaultCommentService) ensurePublishedAd(ctx context.Context, adID string) error {
	if _, err := s.Ads.GetPublished(ctx, adID); err != nil {
		if isNotFound(err) {
			return ErrAdNotFound
		}
		return err
	}
	return nil
}

func clampPagination(page, limit int) (int, int, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, int64((page - 1) * limit)
}

func authorName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fallbackName
	}
	return trimmed
}

// List returns one page of the ad's comments, newest first. Pages never
// reports below 1 even for an empty list.
func (s *DefaultCommentService) List(ctx context.Context, adID string, page, limit int) (*ListOutput, error) {
	if err := s.ensurePublishedAd(ctx, adID); err != nil {
		return nil, err
	}
	safePage, safeLimit, skip := clampPagination(page, limit)

	comments, total, err := s.Repo.ListByAd(ctx, adID, skip, int64(safeLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	authorIDs := make([]string, 0, len(comments))
	seen := make(map[string]bool, len(comments))
	for _, c := range comments {
		if !seen[c.Author] {
			seen[c.Author] = true
			authorIDs = append(authorIDs, c.Author)
		}
	}
	nameByID := make(map[string]string, len(authorIDs))
	if len(authorIDs) > 0 {
		authors, err := s.Users.GetByIDs(ctx, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load authors: %w", err)
		}
		for _, a := range authors {
			nameByID[a.ID] = a.Name
		}
	}

	items := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		items = append(items, CommentView{
			ID:        c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Author:    AuthorView{ID: c.Author, Name: authorName(nameByID[c.Author])},
		})
	}

	pages := int((total + int64(safeLimit) - 1) / int64(safeLimit))
	if pages < 1 {
		pages = 1
	}
	return &ListOutput{
		Items: items,
		Total: total,
		Page:  safePage,
		Pages: pages,
		Limit: safeLimit,
	}, nil
}

// Create adds a comment to a published ad.
func (s *DefaultCommentService) Create(ctx context.Context, adID, authorID, text string) (*CommentView, error) {
	if err := s.ensurePublishedAd(ctx, adID); err != nil {
		return nil, err
	}
	author, err := s.Users.GetByID(ctx, authorID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Ad:        adID,
		Author:    authorID,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		Author:    AuthorView{ID: author.ID, Name: authorName(author.Name)},
	}, nil
}
