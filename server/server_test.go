package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/db/dbtest"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e envelope) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v))
}

type captureMailer struct {
	mu    sync.Mutex
	codes []string
}

var otpInBody = regexp.MustCompile(`<strong>(\d{6})</strong>`)

func (m *captureMailer) Send(_ context.Context, _, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match := otpInBody.FindStringSubmatch(body); len(match) == 2 {
		m.codes = append(m.codes, match[1])
	}
	return nil
}

func (m *captureMailer) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.codes) == 0 {
		return ""
	}
	return m.codes[len(m.codes)-1]
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	uploads string
	mailer  *captureMailer
	now     time.Time
}

const maxUpload = 64 << 10

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	uploads := filepath.Join(t.TempDir(), "uploads")
	files, err := storage.NewLocal(uploads)
	require.NoError(t, err)

	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		ResetTokenSecret:   "reset-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		ResetTokenExpiry:   10 * time.Minute,
		OTPExpiry:          3 * time.Minute,
		AutoActivateUsers:  true,
		StorageDriver:      "local",
		UploadDir:          uploads,
		MaxUploadSize:      maxUpload,
		RateLimitMax:       100,
		RateLimitWindow:    time.Minute,
		CORSOrigins:        "*",
	}

	env := &testEnv{db: dbtest.New(t), uploads: uploads, mailer: &captureMailer{}, now: time.Now()}
	env.app = New(Deps{
		Config: cfg,
		DB:     env.db,
		Mailer: env.mailer,
		Files:  files,
		Now:    func() time.Time { return env.now },
	})
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (e *testEnv) json(t *testing.T, method, path string, body any, token string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req, token)
}

type upload struct {
	name    string
	content []byte
}

func (e *testEnv) form(t *testing.T, method, path string, fields map[string]string, files []upload, token string) (int, envelope) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile("image", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.do(t, req, token)
}

// signIn registers a user and returns an access token for it.
func (e *testEnv) signIn(t *testing.T, username, email string) (uint, string) {
	t.Helper()
	code, res := e.json(t, "POST", "/api/users/add-user", map[string]string{
		"username": username, "email": email, "password": "Abcdef1!",
	}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var user models.User
	res.decode(t, &user)

	code, res = e.json(t, "POST", "/api/users/login", map[string]string{"email": email, "password": "Abcdef1!"}, "")
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var pair struct {
		AccessToken string `json:"access_token"`
	}
	res.decode(t, &pair)
	return user.ID, pair.AccessToken
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func (e *testEnv) uploadExists(ref string) bool {
	_, err := os.Stat(filepath.Join(e.uploads, filepath.Base(ref)))
	return err == nil
}

func TestRegisterAndDuplicate(t *testing.T) {
	env := newEnv(t)

	code, res := env.json(t, "POST", "/api/users/add-user", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "Abcdef1!",
	}, "")
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "success", res.Status)

	var data map[string]any
	res.decode(t, &data)
	assert.Equal(t, "alice", data["username"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refresh_token")

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "a@x.com").First(&stored).Error)
	assert.NotEqual(t, "Abcdef1!", stored.Password)

	code, res = env.json(t, "POST", "/api/users/add-user", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "Abcdef1!",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "Email is already registered.", res.Message)
	assert.Equal(t, "null", string(res.Data))

	code, res = env.json(t, "POST", "/api/users/add-user", map[string]string{
		"username": "al", "email": "b@x.com", "password": "Abcdef1!",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Username must be at least 4 characters.", res.Message)
}

func TestLoginDoesNotLeakWhichFactorFailed(t *testing.T) {
	env := newEnv(t)
	env.signIn(t, "alice", "a@x.com")

	codeA, resA := env.json(t, "POST", "/api/users/login", map[string]string{"email": "nobody@x.com", "password": "Abcdef1!"}, "")
	codeB, resB := env.json(t, "POST", "/api/users/login", map[string]string{"email": "a@x.com", "password": "Wrong1!!"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, codeA)
	assert.Equal(t, codeA, codeB)
	assert.Equal(t, resA, resB)

	require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", "a@x.com").Update("is_active", models.ActiveNo).Error)
	code, res := env.json(t, "POST", "/api/users/login", map[string]string{"email": "a@x.com", "password": "Wrong1!!"}, "")
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Account is not active. Please contact support.", res.Message)
}

func TestRefreshAndLogout(t *testing.T) {
	env := newEnv(t)
	env.signIn(t, "alice", "a@x.com")

	_, res := env.json(t, "POST", "/api/users/login", map[string]string{"email": "a@x.com", "password": "Abcdef1!"}, "")
	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	res.decode(t, &pair)

	code, res := env.json(t, "POST", "/api/users/refresh-token", map[string]string{"refresh_token": pair.RefreshToken}, "")
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var next struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	res.decode(t, &next)

	code, _ = env.json(t, "POST", "/api/users/logout", nil, next.AccessToken)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = env.json(t, "POST", "/api/users/refresh-token", map[string]string{"refresh_token": next.RefreshToken}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newEnv(t)
	env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "POST", "/api/users/reset-password", map[string]string{"email": "nobody@x.com"}, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "User with this email does not exist.", res.Message)

	code, res = env.json(t, "POST", "/api/users/reset-password", map[string]string{"email": "a@x.com"}, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "OTP has been sent to your email.", res.Message)
	otp := env.mailer.last()
	require.Len(t, otp, 6)

	code, res = env.json(t, "POST", "/api/users/validate-otp", map[string]string{"otp_code": otp}, "")
	require.Equal(t, fiber.StatusOK, code)
	var data struct {
		Token string `json:"token"`
	}
	res.decode(t, &data)
	require.NotEmpty(t, data.Token)

	code, res = env.json(t, "POST", "/api/users/change-password", map[string]string{
		"token": data.Token, "new_password": "Newpass1!", "confirm_password": "Newpass1@",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match.", res.Message)

	code, res = env.json(t, "POST", "/api/users/change-password", map[string]string{
		"token": data.Token, "new_password": "Newpass1!", "confirm_password": "Newpass1!",
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Password updated successfully.", res.Message)

	code, _ = env.json(t, "POST", "/api/users/login", map[string]string{"email": "a@x.com", "password": "Newpass1!"}, "")
	assert.Equal(t, fiber.StatusOK, code)

	// past its three minutes the same code is expired rather than unknown
	env.now = env.now.Add(4 * time.Minute)
	code, res = env.json(t, "POST", "/api/users/validate-otp", map[string]string{"otp_code": otp}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "OTP has expired.", res.Message)
}

func TestBlogLifecycle(t *testing.T) {
	env := newEnv(t)
	userID, token := env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "GET", "/api/blogs", nil, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "No blogs found.", res.Message)

	blog := map[string]any{"title": "Hello World", "content": "body", "category": "news"}
	code, _ = env.json(t, "POST", "/api/blogs/add-blog", blog, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, res = env.json(t, "POST", "/api/blogs/add-blog", blog, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var created models.Blog
	res.decode(t, &created)
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, userID, created.UserID)

	code, res = env.json(t, "POST", "/api/blogs/add-blog", blog, token)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A blog with this title already exists.", res.Message)

	code, res = env.json(t, "POST", "/api/blogs/add-blog", map[string]any{"title": "Other", "content": "x", "category": "c", "user_id": 999}, token)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "User with ID 999 not found.", res.Message)

	path := fmt.Sprintf("/api/blogs/%d", created.ID)
	code, res = env.json(t, "PUT", path, map[string]any{"title": "Second Post"}, token)
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var updated models.Blog
	res.decode(t, &updated)
	assert.Equal(t, "second-post", updated.Slug)
	assert.Equal(t, "body", updated.Content)

	code, res = env.json(t, "PUT", path, map[string]any{"title": ""}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Title is required.", res.Message)

	code, res = env.json(t, "GET", "/api/blogs", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var blogs []models.Blog
	res.decode(t, &blogs)
	assert.Len(t, blogs, 1)
}

func TestCommentsAndCascade(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "POST", "/api/comments", map[string]any{"blog_id": 999, "comment": "hi", "name": "bob"}, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Blog with ID 999 not found.", res.Message)
	assert.Zero(t, env.count(t, &models.Comment{}))

	_, res = env.json(t, "POST", "/api/blogs/add-blog", map[string]any{"title": "Hello World", "content": "body", "category": "news"}, token)
	var blog models.Blog
	res.decode(t, &blog)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "parent_comment_id": 999, "comment": "hi", "name": "bob"}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Parent comment with ID 999 not found.", res.Message)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "comment": "first", "name": "bob"}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var root models.Comment
	res.decode(t, &root)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "parent_comment_id": root.ID, "comment": "reply", "name": "carol"}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var reply models.Comment
	res.decode(t, &reply)

	code, _ = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "parent_comment_id": reply.ID, "comment": "nested", "name": "dave"}, "")
	require.Equal(t, fiber.StatusCreated, code)

	code, res = env.json(t, "GET", fmt.Sprintf("/api/comments/%d", root.ID), nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var detail struct {
		ID            uint            `json:"id"`
		Blog          map[string]any  `json:"blog"`
		ParentComment *map[string]any `json:"parent_comment"`
		Replies       []struct {
			ID      uint   `json:"id"`
			Comment string `json:"comment"`
		} `json:"replies"`
	}
	res.decode(t, &detail)
	assert.Equal(t, "Hello World", detail.Blog["title"])
	assert.Nil(t, detail.ParentComment)
	require.Len(t, detail.Replies, 1)
	assert.Equal(t, "reply", detail.Replies[0].Comment)

	code, res = env.json(t, "GET", fmt.Sprintf("/api/comments/%d", reply.ID), nil, "")
	require.Equal(t, fiber.StatusOK, code)
	res.decode(t, &detail)
	require.NotNil(t, detail.ParentComment)
	assert.Equal(t, "first", (*detail.ParentComment)["comment"])

	code, res = env.json(t, "GET", "/api/comments", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var list []struct {
		Blog struct {
			Title string `json:"title"`
		} `json:"blog"`
	}
	res.decode(t, &list)
	require.Len(t, list, 3)
	assert.Equal(t, "Hello World", list[0].Blog.Title)

	code, res = env.json(t, "PUT", fmt.Sprintf("/api/comments/%d", root.ID), map[string]any{"parent_comment_id": root.ID}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "A comment cannot reply to itself.", res.Message)

	code, _ = env.json(t, "DELETE", fmt.Sprintf("/api/comments/%d", root.ID), nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, res = env.json(t, "DELETE", fmt.Sprintf("/api/blogs/%d", blog.ID), nil, token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "null", string(res.Data))
	assert.Zero(t, env.count(t, &models.Comment{}))
}

func TestProjectPartialUpdate(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "GET", "/api/projects", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "[]", string(res.Data))

	project := map[string]any{"name": "Site", "category": "web", "link": "https://example.com"}
	code, res = env.json(t, "POST", "/api/projects", project, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var created models.Project
	res.decode(t, &created)

	code, res = env.json(t, "POST", "/api/projects", project, token)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A project with the same name and category already exists.", res.Message)

	path := fmt.Sprintf("/api/projects/%d", created.ID)
	code, res = env.json(t, "PUT", path, map[string]any{"name": "Renamed"}, token)
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var updated models.Project
	res.decode(t, &updated)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "web", updated.Category)
	require.NotNil(t, updated.Link)
	assert.Equal(t, "https://example.com", *updated.Link)

	code, res = env.json(t, "PUT", path, map[string]any{"link": ""}, token)
	require.Equal(t, fiber.StatusOK, code, res.Message)
	res.decode(t, &updated)
	assert.Nil(t, updated.Link)
	assert.Equal(t, "web", updated.Category)

	code, res = env.json(t, "GET", "/api/projects/abc", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid ID.", res.Message)

	code, res = env.json(t, "GET", "/api/projects/4242", nil, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Project with ID 4242 not found.", res.Message)

	code, res = env.json(t, "DELETE", path, nil, token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, fmt.Sprintf("Project with ID %d deleted successfully.", created.ID), res.Message)
}

func TestUploadLifecycle(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	fields := map[string]string{"name": "Jane", "message": "Great work"}
	code, res := env.form(t, "POST", "/api/testimonials", fields, []upload{{"jane.png", []byte("first")}}, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var created models.Testimonial
	res.decode(t, &created)
	require.NotNil(t, created.Image)
	first := *created.Image
	assert.True(t, strings.HasPrefix(first, "/uploads/"))
	assert.True(t, env.uploadExists(first))

	req := httptest.NewRequest("GET", first, nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	served, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "first", string(served))

	code, res = env.form(t, "POST", "/api/testimonials", fields, nil, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "A testimonial with the same name and message already exists.", res.Message)

	path := fmt.Sprintf("/api/testimonials/%d", created.ID)
	code, res = env.form(t, "PUT", path, nil, []upload{{"jane2.png", []byte("second")}}, token)
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var updated models.Testimonial
	res.decode(t, &updated)
	require.NotNil(t, updated.Image)
	second := *updated.Image
	assert.NotEqual(t, first, second)
	assert.Equal(t, "Jane", updated.Name)
	assert.Eventually(t, func() bool { return !env.uploadExists(first) }, 2*time.Second, 20*time.Millisecond)

	code, res = env.form(t, "PUT", path, nil, []upload{{"a.png", []byte("a")}, {"b.png", []byte("b")}}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Only one image can be uploaded.", res.Message)

	code, res = env.form(t, "PUT", path, nil, []upload{{"big.png", bytes.Repeat([]byte("x"), maxUpload+1)}}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = env.json(t, "DELETE", path, nil, token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Eventually(t, func() bool { return !env.uploadExists(second) }, 2*time.Second, 20*time.Millisecond)
}

func TestServiceDetails(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "GET", "/api/service-details", nil, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "No service details found.", res.Message)

	code, res = env.json(t, "POST", "/api/service-details", map[string]any{"service_id": 7, "detail": "x"}, token)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Service with ID 7 not found.", res.Message)

	code, res = env.json(t, "POST", "/api/services", map[string]any{"title": "Web Design", "description": "sites"}, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var service models.Service
	res.decode(t, &service)
	assert.Equal(t, "web-design", service.Slug)

	code, res = env.json(t, "POST", "/api/services", map[string]any{"title": "Web Design", "description": "again"}, token)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A service with this title already exists.", res.Message)

	detail := map[string]any{"service_id": service.ID, "detail": "long text"}
	code, res = env.json(t, "POST", "/api/service-details", detail, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)

	code, res = env.json(t, "POST", "/api/service-details", detail, token)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Service Details with the same service ID already exists.", res.Message)

	code, _ = env.json(t, "DELETE", fmt.Sprintf("/api/services/%d", service.ID), nil, token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Zero(t, env.count(t, &models.ServiceDetail{}))
}

func TestContacts(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	contact := map[string]any{"name": "Bob", "email": "bob@x.com", "phone": "123", "message": "hello"}
	code, res := env.json(t, "POST", "/api/contacts", contact, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)

	code, res = env.json(t, "POST", "/api/contacts", contact, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "A contact with the same name, email, phone, and message already exists.", res.Message)

	contact["message"] = "different"
	code, res = env.json(t, "POST", "/api/contacts", contact, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "A contact with this email already exists.", res.Message)

	code, res = env.json(t, "POST", "/api/contacts", map[string]any{"name": "Bob", "email": "nope", "phone": "1", "message": "m"}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Email must be a valid email address.", res.Message)

	code, _ = env.json(t, "GET", "/api/contacts", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = env.json(t, "GET", "/api/contacts", nil, token)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestUserAdministration(t *testing.T) {
	env := newEnv(t)
	adminID, adminToken := env.signIn(t, "alice", "a@x.com")
	bobID, _ := env.signIn(t, "bobby", "b@x.com")

	code, _ := env.json(t, "GET", "/api/users", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, res := env.json(t, "GET", "/api/users", nil, adminToken)
	require.Equal(t, fiber.StatusOK, code)
	var users []models.User
	res.decode(t, &users)
	assert.Len(t, users, 2)

	code, _ = env.json(t, "GET", fmt.Sprintf("/api/users/get-user/%d", bobID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, code)

	bobPath := fmt.Sprintf("/api/users/edit-user/%d", bobID)
	code, _ = env.json(t, "PUT", bobPath, map[string]any{"role": "super_admin"}, adminToken)
	assert.Equal(t, fiber.StatusForbidden, code)

	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", adminID).Update("role", models.RoleSuperAdmin).Error)

	code, res = env.json(t, "PUT", bobPath, map[string]any{"email": "a@x.com"}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Email is already registered to another user.", res.Message)

	code, res = env.json(t, "PUT", bobPath, map[string]any{"role": "owner"}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Role must be one of: admin, super_admin.", res.Message)

	code, res = env.json(t, "PUT", bobPath, map[string]any{"is_active": "No"}, adminToken)
	require.Equal(t, fiber.StatusOK, code, res.Message)
	var bob models.User
	res.decode(t, &bob)
	assert.Equal(t, models.ActiveNo, bob.IsActive)
	assert.Equal(t, "bobby", bob.Username)

	code, _ = env.json(t, "DELETE", fmt.Sprintf("/api/users/delete/%d", bobID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = env.json(t, "DELETE", fmt.Sprintf("/api/users/%d", bobID), nil, adminToken)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newEnv(t)

	code, res := env.json(t, "GET", "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "success", res.Status)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestBlankRequiredFields(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	code, res := env.json(t, "POST", "/api/projects", map[string]any{"name": "", "category": ""}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Name is required.", res.Message)

	code, res = env.json(t, "POST", "/api/blogs/add-blog", map[string]any{"title": "", "content": "", "category": ""}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Title is required.", res.Message)

	code, res = env.form(t, "POST", "/api/testimonials", map[string]string{"name": "  ", "message": "hi"}, nil, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Name is required.", res.Message)

	code, res = env.form(t, "POST", "/api/services", map[string]string{"title": "", "description": "x"}, nil, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Title is required.", res.Message)

	assert.Zero(t, env.count(t, &models.Project{}))
	assert.Zero(t, env.count(t, &models.Blog{}))
	assert.Zero(t, env.count(t, &models.Testimonial{}))
	assert.Zero(t, env.count(t, &models.Service{}))

	code, res = env.json(t, "POST", "/api/projects", map[string]any{"name": "Site", "category": "web"}, token)
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var project models.Project
	res.decode(t, &project)

	path := fmt.Sprintf("/api/projects/%d", project.ID)
	code, res = env.json(t, "PUT", path, map[string]any{"name": ""}, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Name is required.", res.Message)

	var stored models.Project
	require.NoError(t, env.db.First(&stored, project.ID).Error)
	assert.Equal(t, "Site", stored.Name)
}

func TestBlogSlugKeepsSymbols(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	slugs := map[string]string{"C++ Tips": "c-plus-plus-tips", "C# Tips": "c-sharp-tips"}
	for title, want := range slugs {
		code, res := env.json(t, "POST", "/api/blogs/add-blog", map[string]any{"title": title, "content": "body", "category": "dev"}, token)
		require.Equal(t, fiber.StatusCreated, code, res.Message)
		var blog models.Blog
		res.decode(t, &blog)
		assert.Equal(t, want, blog.Slug)
	}
}

func TestCommentDateAndCycles(t *testing.T) {
	env := newEnv(t)
	_, token := env.signIn(t, "alice", "a@x.com")

	_, res := env.json(t, "POST", "/api/blogs/add-blog", map[string]any{"title": "Hello World", "content": "body", "category": "news"}, token)
	var blog models.Blog
	res.decode(t, &blog)

	code, res := env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "comment": "dated", "name": "bob", "date": "2024-01-02"}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var dated struct {
		ID   uint   `json:"id"`
		Date string `json:"date"`
	}
	res.decode(t, &dated)
	assert.True(t, strings.HasPrefix(dated.Date, "2024-01-02"), dated.Date)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "comment": "x", "name": "bob", "date": "yesterday"}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Date must be a valid date (YYYY-MM-DD).", res.Message)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "parent_comment_id": dated.ID, "comment": "reply", "name": "carol"}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var reply models.Comment
	res.decode(t, &reply)

	code, res = env.json(t, "POST", "/api/comments", map[string]any{"blog_id": blog.ID, "parent_comment_id": reply.ID, "comment": "nested", "name": "dave"}, "")
	require.Equal(t, fiber.StatusCreated, code, res.Message)
	var nested models.Comment
	res.decode(t, &nested)

	rootPath := fmt.Sprintf("/api/comments/%d", dated.ID)
	for _, parent := range []uint{reply.ID, nested.ID} {
		code, res = env.json(t, "PUT", rootPath, map[string]any{"parent_comment_id": parent}, token)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "A comment cannot reply to one of its own replies.", res.Message)
	}

	var root models.Comment
	require.NoError(t, env.db.First(&root, dated.ID).Error)
	assert.Nil(t, root.ParentCommentID)
}
