package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/storage"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

// ImageField is the multipart field carrying an upload.
const ImageField = "image"

// Deps are the collaborators shared by every resource controller.
type Deps struct {
	DB            *gorm.DB
	Files         storage.FileStore
	MaxUploadSize int64
}

// Resource is the create/list/get/update/delete flow for one model T,
// bound from request bodies of type In. In holds pointer fields so an absent
// field can be told apart from an empty one.
type Resource[T any, In any] struct {
	Label  string
	Plural string

	Repo          *repository.Repository[T]
	Files         storage.FileStore
	MaxUploadSize int64

	// ConflictStatus is 400 or 409 depending on the resource.
	ConflictStatus int
	// NotFoundOnEmpty answers 404 with EmptyMessage instead of [] when there are no rows.
	NotFoundOnEmpty bool
	EmptyMessage    string
	ListOrder       string

	// NaturalKey, when set, is probed before insert; a match is a conflict.
	NaturalKey       func(in *In) map[string]any
	DuplicateMessage string
	// UniqueMessage is reported when the database rejects a unique column.
	UniqueMessage string

	// Defaults fills absent fields from the request before validation on create.
	Defaults func(c *fiber.Ctx, in *In)
	// Prepare checks references after validation on create and update.
	Prepare func(ctx context.Context, in *In) error

	New   func(in *In) *T
	Patch func(row *T, in *In)
	// CheckRow validates the merged record before it is written.
	CheckRow func(ctx context.Context, row *T) error
	// Image points at the record's upload reference, nil for resources without one.
	Image func(row *T) **string
	ID    func(row *T) uint
}

func (r *Resource[T, In]) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in := new(In)
	if err := c.BodyParser(in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}
	if r.Defaults != nil {
		r.Defaults(c, in)
	}
	if err := utils.Validate(in); err != nil {
		return err
	}
	if r.Prepare != nil {
		if err := r.Prepare(ctx, in); err != nil {
			return err
		}
	}

	if r.NaturalKey != nil {
		exists, err := r.Repo.Exists(ctx, r.NaturalKey(in))
		if err != nil {
			return utils.InternalError(err)
		}
		if exists {
			return utils.ConflictError(r.ConflictStatus, r.DuplicateMessage)
		}
	}

	ref, err := r.upload(c)
	if err != nil {
		return err
	}

	row := r.New(in)
	if r.CheckRow != nil {
		if err := r.CheckRow(ctx, row); err != nil {
			storage.Discard(r.Files, ref)
			return err
		}
	}
	if ref != "" {
		*r.Image(row) = &ref
	}
	if err := r.Repo.Create(ctx, row); err != nil {
		storage.Discard(r.Files, ref)
		return r.writeError(err)
	}

	return utils.Respond(c, fiber.StatusCreated, row, fmt.Sprintf("%s added successfully.", r.Label))
}

func (r *Resource[T, In]) List(c *fiber.Ctx) error {
	rows, err := r.Repo.FindAll(c.UserContext(), r.ListOrder)
	if err != nil {
		return utils.InternalError(err)
	}
	if len(rows) == 0 {
		if r.NotFoundOnEmpty {
			return utils.NotFoundError("%s", r.EmptyMessage)
		}
		rows = []T{}
	}
	return utils.Respond(c, fiber.StatusOK, rows, fmt.Sprintf("%s retrieved successfully.", r.Plural))
}

func (r *Resource[T, In]) Get(c *fiber.Ctx) error {
	row, err := r.find(c)
	if err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, row, fmt.Sprintf("%s retrieved successfully.", r.Label))
}

// Update applies only the fields present in the body. A new upload replaces
// the previous file, which is then discarded.
func (r *Resource[T, In]) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	row, err := r.find(c)
	if err != nil {
		return err
	}

	in := new(In)
	if err := c.BodyParser(in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}
	if err := utils.ValidatePresent(in); err != nil {
		return err
	}
	if r.Prepare != nil {
		if err := r.Prepare(ctx, in); err != nil {
			return err
		}
	}

	ref, err := r.upload(c)
	if err != nil {
		return err
	}

	r.Patch(row, in)
	if r.CheckRow != nil {
		if err := r.CheckRow(ctx, row); err != nil {
			storage.Discard(r.Files, ref)
			return err
		}
	}
	var previous string
	if ref != "" {
		image := r.Image(row)
		if *image != nil {
			previous = **image
		}
		*image = &ref
	}

	if err := r.Repo.Save(ctx, row); err != nil {
		storage.Discard(r.Files, ref)
		return r.writeError(err)
	}
	storage.Discard(r.Files, previous)

	return utils.Respond(c, fiber.StatusOK, row, fmt.Sprintf("%s updated successfully.", r.Label))
}

func (r *Resource[T, In]) Delete(c *fiber.Ctx) error {
	row, err := r.find(c)
	if err != nil {
		return err
	}

	if err := r.Repo.Delete(c.UserContext(), row); err != nil {
		return utils.InternalError(err)
	}
	if r.Image != nil {
		if image := *r.Image(row); image != nil {
			storage.Discard(r.Files, *image)
		}
	}

	return utils.Respond(c, fiber.StatusOK, nil, fmt.Sprintf("%s with ID %d deleted successfully.", r.Label, r.ID(row)))
}

func (r *Resource[T, In]) find(c *fiber.Ctx) (*T, error) {
	id, err := ParseID(c)
	if err != nil {
		return nil, err
	}
	row, err := r.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("%s with ID %d not found.", r.Label, id)
		}
		return nil, utils.InternalError(err)
	}
	return row, nil
}

// upload stores the single file in the image field, if any.
func (r *Resource[T, In]) upload(c *fiber.Ctx) (string, error) {
	if r.Image == nil || !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return "", utils.ValidationError("Invalid multipart form.")
	}
	files := form.File[ImageField]
	switch {
	case len(files) == 0:
		return "", nil
	case len(files) > 1:
		return "", utils.ValidationError("Only one image can be uploaded.")
	case r.MaxUploadSize > 0 && files[0].Size > r.MaxUploadSize:
		return "", utils.ValidationError("Image must be at most %d MB.", r.MaxUploadSize>>20)
	}

	ref, err := r.Files.Save(c.UserContext(), files[0])
	if err != nil {
		return "", utils.InternalError(err)
	}
	return ref, nil
}

func (r *Resource[T, In]) writeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		message := r.UniqueMessage
		if message == "" {
			message = r.DuplicateMessage
		}
		if message == "" {
			message = fmt.Sprintf("%s already exists.", r.Label)
		}
		status := r.ConflictStatus
		if status == 0 {
			status = fiber.StatusConflict
		}
		return utils.ConflictError(status, message)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return utils.ValidationError("%s references a record that does not exist.", r.Label)
	}
	return utils.InternalError(err)
}

// ParseID reads the :id route parameter.
func ParseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ValidationError("Invalid ID.")
	}
	return uint(id), nil
}
