package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CommentInput struct {
	BlogID          *uint   `json:"blog_id" form:"blog_id" validate:"required"`
	ParentCommentID *uint   `json:"parent_comment_id" form:"parent_comment_id"`
	Comment         *string `json:"comment" form:"comment" validate:"required,notblank"`
	Name            *string `json:"name" form:"name" validate:"required,notblank,max=255"`
	// Date is YYYY-MM-DD; absent or empty means today.
	Date            *string `json:"date" form:"date"`
}

type blogRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type commentSummary struct {
	ID      uint           `json:"id"`
	Comment string         `json:"comment"`
	Name    string         `json:"name"`
	Date    datatypes.Date `json:"date"`
}

// CommentListItem is a comment with the title of its blog.
type CommentListItem struct {
	models.Comment
	Blog *blogRef `json:"blog"`
}

// CommentDetail is a comment with its blog, parent and direct replies.
type CommentDetail struct {
	models.Comment
	Blog          *blogRef         `json:"blog"`
	ParentComment *commentSummary  `json:"parent_comment"`
	Replies       []commentSummary `json:"replies"`
}

// CommentController serves the generic writes plus the joined reads.
type CommentController struct {
	*Resource[models.Comment, CommentInput]
	comments *repository.CommentRepository
}

func NewCommentController(d Deps) *CommentController {
	comments := repository.NewCommentRepository(d.DB)
	blogs := repository.New[models.Blog](d.DB)

	return &CommentController{
		comments: comments,
		Resource: &Resource[models.Comment, CommentInput]{
			Label:     "Comment",
			Plural:    "Comments",
			Repo:      comments.Repository,
			ListOrder: "created_at DESC",
			Prepare: func(ctx context.Context, in *CommentInput) error {
				if in.BlogID != nil {
					if _, err := blogs.FindByID(ctx, *in.BlogID); err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							return utils.NotFoundError("Blog with ID %d not found.", *in.BlogID)
						}
						return utils.InternalError(err)
					}
				}
				if in.ParentCommentID != nil && *in.ParentCommentID != 0 {
					if _, err := comments.FindByID(ctx, *in.ParentCommentID); err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							return utils.ValidationError("Parent comment with ID %d not found.", *in.ParentCommentID)
						}
						return utils.InternalError(err)
					}
				}
				if in.Date != nil && *in.Date != "" {
					if _, err := parseDate(*in.Date); err != nil {
						return utils.ValidationError("Date must be a valid date (YYYY-MM-DD).")
					}
				}
				return nil
			},
			New: func(in *CommentInput) *models.Comment {
				cm := &models.Comment{
					BlogID:          *in.BlogID,
					ParentCommentID: parentID(in.ParentCommentID),
					Comment:         *in.Comment,
					Name:            *in.Name,
				}
				setDate(&cm.Date, in.Date)
				return cm
			},
			Patch: func(cm *models.Comment, in *CommentInput) {
				setUint(&cm.BlogID, in.BlogID)
				if in.ParentCommentID != nil {
					cm.ParentCommentID = parentID(in.ParentCommentID)
				}
				setString(&cm.Comment, in.Comment)
				setString(&cm.Name, in.Name)
				setDate(&cm.Date, in.Date)
			},
			CheckRow: func(ctx context.Context, cm *models.Comment) error {
				if cm.ParentCommentID == nil {
					return nil
				}
				if *cm.ParentCommentID == cm.ID {
					return utils.ValidationError("A comment cannot reply to itself.")
				}
				if cm.ID == 0 {
					return nil
				}
				cycle, err := comments.IsAncestor(ctx, *cm.ParentCommentID, cm.ID)
				if err != nil {
					return utils.InternalError(err)
				}
				if cycle {
					return utils.ValidationError("A comment cannot reply to one of its own replies.")
				}
				return nil
			},
			ID: func(cm *models.Comment) uint { return cm.ID },
		},
	}
}

// parentID maps an absent or zero parent to a top-level comment.
func parentID(v *uint) *uint {
	if v == nil || *v == 0 {
		return nil
	}
	id := *v
	return &id
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return datatypes.Date{}, err
		}
	}
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
}

// setDate overwrites dst with a supplied, already validated date.
func setDate(dst *datatypes.Date, v *string) {
	if v == nil || *v == "" {
		return
	}
	if d, err := parseDate(*v); err == nil {
		*dst = d
	}
}

func (cc *CommentController) List(c *fiber.Ctx) error {
	comments, err := cc.comments.ListWithBlog(c.UserContext())
	if err != nil {
		return utils.InternalError(err)
	}

	items := make([]CommentListItem, 0, len(comments))
	for _, cm := range comments {
		items = append(items, CommentListItem{Comment: cm, Blog: toBlogRef(cm.Blog)})
	}
	return utils.Respond(c, fiber.StatusOK, items, "Comments retrieved successfully.")
}

func (cc *CommentController) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	cm, err := cc.comments.FindWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Comment with ID %d not found.", id)
		}
		return utils.InternalError(err)
	}
	replies, err := cc.comments.Replies(ctx, id)
	if err != nil {
		return utils.InternalError(err)
	}

	detail := CommentDetail{
		Comment: *cm,
		Blog:    toBlogRef(cm.Blog),
		Replies: make([]commentSummary, 0, len(replies)),
	}
	if cm.ParentComment != nil {
		summary := toSummary(*cm.ParentComment)
		detail.ParentComment = &summary
	}
	for _, r := range replies {
		detail.Replies = append(detail.Replies, toSummary(r))
	}
	return utils.Respond(c, fiber.StatusOK, detail, "Comment retrieved successfully.")
}

func toBlogRef(b *models.Blog) *blogRef {
	if b == nil {
		return nil
	}
	return &blogRef{ID: b.ID, Title: b.Title}
}

func toSummary(cm models.Comment) commentSummary {
	return commentSummary{ID: cm.ID, Comment: cm.Comment, Name: cm.Name, Date: cm.Date}
}
