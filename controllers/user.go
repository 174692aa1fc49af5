package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
)

// EditUserInput fields are optional but checked when present.
type EditUserInput struct {
	Username *string `json:"username" form:"username" validate:"required,notblank,alpha,min=4"`
	Email    *string `json:"email" form:"email" validate:"required,notblank,email"`
	Role     *string `json:"role" form:"role" validate:"required,notblank,oneof=admin super_admin"`
	IsActive *string `json:"is_active" form:"is_active" validate:"required,notblank,active_flag"`
}

// UserController manages accounts. Creation goes through AuthController.Register.
type UserController struct {
	*Resource[models.User, EditUserInput]
	users repository.UserRepository
}

func NewUserController(d Deps) *UserController {
	return &UserController{
		users: repository.NewUserRepository(d.DB),
		Resource: &Resource[models.User, EditUserInput]{
			Label:           "User",
			Plural:          "Users",
			Repo:            repository.New[models.User](d.DB),
			ConflictStatus:  fiber.StatusBadRequest,
			NotFoundOnEmpty: true,
			EmptyMessage:    "No users found.",
			UniqueMessage:   "Email is already registered to another user.",
			Patch: func(u *models.User, in *EditUserInput) {
				setString(&u.Username, in.Username)
				setString(&u.Email, in.Email)
				setString(&u.Role, in.Role)
				setString(&u.IsActive, in.IsActive)
			},
			ID: func(u *models.User) uint { return u.ID },
		},
	}
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := uc.find(c)
	if err != nil {
		return err
	}

	in := new(EditUserInput)
	if err := c.BodyParser(in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}
	if err := utils.ValidatePresent(in); err != nil {
		return err
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := uc.users.EmailTaken(ctx, *in.Email, user.ID)
		if err != nil {
			return utils.InternalError(err)
		}
		if taken {
			return utils.ConflictError(fiber.StatusBadRequest, "Email is already registered to another user.")
		}
	}

	uc.Patch(user, in)
	if err := uc.Repo.Save(ctx, user); err != nil {
		return uc.writeError(err)
	}
	return utils.Respond(c, fiber.StatusOK, user, "User updated successfully.")
}
