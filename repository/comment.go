package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/meinhoongagan/portfolio-api/models"
	"gorm.io/gorm"
)

// CommentRepository adds the joined reads used by the comment endpoints.
type CommentRepository struct {
	*Repository[models.Comment]
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{Repository: New[models.Comment](db)}
}

func selectBlogTitle(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title")
}

// ListWithBlog returns all comments, newest first, with their blog's title loaded.
func (r *CommentRepository) ListWithBlog(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB(ctx).
		Preload("Blog", selectBlogTitle).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// FindWithRelations loads a comment with its blog and parent comment.
func (r *CommentRepository) FindWithRelations(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.DB(ctx).
		Preload("Blog", selectBlogTitle).
		Preload("ParentComment").
		First(&comment, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comment by id %d: %w", id, err)
	}
	return &comment, nil
}

// Replies returns the direct replies of a comment only.
func (r *CommentRepository) Replies(ctx context.Context, parentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.DB(ctx).
		Where("parent_comment_id = ?", parentID).
		Order("created_at").
		Order("id").
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list replies of comment %d: %w", parentID, err)
	}
	return replies, nil
}

// IsAncestor reports whether ancestorID appears on the parent chain starting at id.
func (r *CommentRepository) IsAncestor(ctx context.Context, id, ancestorID uint) (bool, error) {
	seen := map[uint]bool{}
	for current := &id; current != nil && !seen[*current]; {
		if *current == ancestorID {
			return true, nil
		}
		seen[*current] = true

		var comment models.Comment
		err := r.DB(ctx).Select("id", "parent_comment_id").First(&comment, *current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("failed to walk parents of comment %d: %w", id, err)
		}
		current = comment.ParentCommentID
	}
	return false, nil
}
