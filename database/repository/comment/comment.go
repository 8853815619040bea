package commentRepo

import (
	"context"

	"forotrix/models"
)

// CommentRepository defines persistence operations over the comments collection.
type CommentRepository interface {
	ListByAd(ctx context.Context, adID string, skip, limit int64) ([]models.Comment, int64, error)
	Create(ctx context.Context, comment *models.Comment) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
