package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/controllers"
	"github.com/meinhoongagan/portfolio-api/models"
)

// Handlers bundles the controllers and guards every route group needs.
type Handlers struct {
	Auth           *controllers.AuthController
	Users          *controllers.UserController
	Blogs          *controllers.Resource[models.Blog, controllers.BlogInput]
	Comments       *controllers.CommentController
	Contacts       *controllers.Resource[models.Contact, controllers.ContactInput]
	Projects       *controllers.Resource[models.Project, controllers.ProjectInput]
	Services       *controllers.Resource[models.Service, controllers.ServiceInput]
	ServiceDetails *controllers.Resource[models.ServiceDetail, controllers.ServiceDetailInput]
	Testimonials   *controllers.Resource[models.Testimonial, controllers.TestimonialInput]

	// Protected requires an access token.
	Protected fiber.Handler
	// SuperAdmin requires the super_admin role; use after Protected.
	SuperAdmin fiber.Handler
	// Throttle limits credential endpoints per client.
	Throttle fiber.Handler
}

type crud interface {
	Create(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// mountCRUD registers POST / GET / GET :id / PUT :id / DELETE :id. Reads are
// public; writes need an access token unless publicCreate is set for POST.
func mountCRUD(group fiber.Router, h crud, protected fiber.Handler, publicCreate bool) {
	if publicCreate {
		group.Post("/", h.Create)
	} else {
		group.Post("/", protected, h.Create)
	}
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", protected, h.Update)
	group.Delete("/:id", protected, h.Delete)
}

// Setup mounts every route group under /api.
func Setup(app *fiber.App, h *Handlers) {
	api := app.Group("/api")

	SetupUserRoutes(api, h)
	SetupBlogRoutes(api, h)
	SetupCommentRoutes(api, h)
	SetupContactRoutes(api, h)
	SetupProjectRoutes(api, h)
	SetupServiceRoutes(api, h)
	SetupTestimonialRoutes(api, h)
}
