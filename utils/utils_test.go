package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Username string `json:"username" validate:"required,alpha,min=4"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password,min=8"`
}

type patchInput struct {
	Name *string `json:"name" validate:"required,notblank,min=2"`
	Link *string `json:"link" validate:"omitempty,url"`
}

func strPtr(s string) *string { return &s }

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestUploadFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name := UploadFilename("../../etc/my photo.png", now)
	assert.True(t, strings.HasPrefix(name, "1700000000123-"))
	assert.True(t, strings.HasSuffix(name, "-my-photo.png"))
	assert.NotContains(t, name, "/")

	assert.NotEqual(t, name, UploadFilename("../../etc/my photo.png", now))
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"abcdef1!", false},
		{"Abcdefg!", false},
		{"Abcdefg1", false},
		{"Abcdef1*", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, StrongPassword(tt.password))
		})
	}
}

func TestValidate_RegisterMessages(t *testing.T) {
	tests := []struct {
		name  string
		input registerInput
		want  string
	}{
		{"missing username", registerInput{Email: "a@x.com", Password: "Abcdef1!"}, "Username is required."},
		{"digits in username", registerInput{Username: "al1ce", Email: "a@x.com", Password: "Abcdef1!"}, "Username must contain only letters."},
		{"short username", registerInput{Username: "al", Email: "a@x.com", Password: "Abcdef1!"}, "Username must be at least 4 characters."},
		{"bad email", registerInput{Username: "alice", Email: "nope", Password: "Abcdef1!"}, "Email must be a valid email address."},
		{"weak password", registerInput{Username: "alice", Email: "a@x.com", Password: "abcdefgh"}, "Password must contain at least one number, one symbol, and one capital letter."},
		{"short password", registerInput{Username: "alice", Email: "a@x.com", Password: "Ab1!"}, "Password must be at least 8 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.input)
			require.Error(t, err)
			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, KindValidation, appErr.Kind)
			assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}

	assert.NoError(t, Validate(&registerInput{Username: "alice", Email: "a@x.com", Password: "Abcdef1!"}))
}

func TestValidatePresent(t *testing.T) {
	t.Run("absent fields are skipped", func(t *testing.T) {
		assert.NoError(t, ValidatePresent(&patchInput{}))
	})

	t.Run("present empty required field fails", func(t *testing.T) {
		err := ValidatePresent(&patchInput{Name: strPtr("")})
		require.Error(t, err)
		assert.Equal(t, "Name is required.", err.(*AppError).Message)
	})

	t.Run("present blank required field fails", func(t *testing.T) {
		err := ValidatePresent(&patchInput{Name: strPtr("   ")})
		require.Error(t, err)
		assert.Equal(t, "Name is required.", err.(*AppError).Message)
	})

	t.Run("full validation rejects empty required pointer", func(t *testing.T) {
		err := Validate(&patchInput{Name: strPtr("")})
		require.Error(t, err)
		assert.Equal(t, "Name is required.", err.(*AppError).Message)
	})

	t.Run("present empty optional field clears", func(t *testing.T) {
		assert.NoError(t, ValidatePresent(&patchInput{Link: strPtr("")}))
	})

	t.Run("present optional field is checked", func(t *testing.T) {
		err := ValidatePresent(&patchInput{Link: strPtr("not a url")})
		require.Error(t, err)
		assert.Equal(t, "Link must be a valid URL.", err.(*AppError).Message)
	})

	t.Run("full validation requires pointers", func(t *testing.T) {
		err := Validate(&patchInput{})
		require.Error(t, err)
		assert.Equal(t, "Name is required.", err.(*AppError).Message)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return ConflictError(fiber.StatusConflict, "A service with this title already exists.")
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return InternalError(errors.New("connection refused"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Respond(c, fiber.StatusOK, nil, "done")
	})

	tests := []struct {
		path    string
		code    int
		status  string
		message string
	}{
		{"/conflict", fiber.StatusConflict, StatusError, "A service with this title already exists."},
		{"/internal", fiber.StatusInternalServerError, StatusError, "Internal server error."},
		{"/plain", fiber.StatusInternalServerError, StatusError, "Internal server error."},
		{"/missing", fiber.StatusNotFound, StatusError, "Cannot GET /missing"},
		{"/ok", fiber.StatusOK, StatusSuccess, "done"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, tt.message, body["message"])
			assert.Contains(t, body, "data")
			assert.Nil(t, body["data"])
		})
	}
}

func TestIsKind(t *testing.T) {
	err := NotFoundError("Blog with ID %d not found.", 7)
	assert.Equal(t, "Blog with ID 7 not found.", err.Message)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindAuth))
	assert.False(t, IsKind(errors.New("x"), KindNotFound))
}
