package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogmint/blogmint/pkg/middleware"
)

func TestStatusRoute(t *testing.T) {
	app := newTestApp(t)
	w := app.do("GET", "/test", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test api working fine")
}

func TestRegisterAuthor_FieldValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{"fname":"Jo","lname":"Doe","email":"jo@x.com","password":"p1"}`, "Title is required"},
		{"invalid title", `{"title":"Dr","fname":"Jo","lname":"Doe","email":"jo@x.com","password":"p1"}`, "Title must be from these values"},
		{"missing fname", `{"title":"Mr","lname":"Doe","email":"jo@x.com","password":"p1"}`, "First Name is required"},
		{"blank fname", `{"title":"Mr","fname":"  ","lname":"Doe","email":"jo@x.com","password":"p1"}`, "First Name is required"},
		{"missing lname", `{"title":"Mr","fname":"Jo","email":"jo@x.com","password":"p1"}`, "Last Name is required"},
		{"missing email", `{"title":"Mr","fname":"Jo","lname":"Doe","password":"p1"}`, "email is required"},
		{"bad email", `{"title":"Mr","fname":"Jo","lname":"Doe","email":"not-an-email","password":"p1"}`, "Enter a valid email address"},
		{"missing password", `{"title":"Mr","fname":"Jo","lname":"Doe","email":"jo@x.com"}`, "password is required"},
		{"non-string title", `{"title":7,"fname":"Jo","lname":"Doe","email":"jo@x.com","password":"p1"}`, "Title is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do("POST", "/authors", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
		})
	}
}

func TestRegisterAuthor_RejectsQueryParamsEmptyBodyAndExtraKeys(t *testing.T) {
	app := newTestApp(t)

	w := app.do("POST", "/authors?x=1", `{"title":"Mr"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request")

	w = app.do("POST", "/authors", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "author data is required")

	w = app.do("POST", "/authors", `{"title":"Mr","fname":"Jo","lname":"Doe","email":"jo@x.com","password":"p1","extra":1}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid data entry")
}

func TestRegisterAuthor_Success(t *testing.T) {
	app := newTestApp(t)

	w := app.do("POST", "/authors", `{"title":"Mr","fname":"Jo","lname":"Doe","email":"Jo@X.Com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["status"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, "jo@x.com", data["email"])
	// the hash never leaves the server
	assert.NotContains(t, data, "password")

	stored, err := app.authorSvc.GetByEmail(context.Background(), "jo@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "p1", stored.Password)
}

func TestRegisterAuthor_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.registerAuthor(t, "jo@x.com")

	w := app.do("POST", "/authors", `{"title":"Mr","fname":"Jo","lname":"Doe","email":"jo@x.com","password":"p1"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exist")
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.registerAuthor(t, "jo@x.com")

	t.Run("success issues token in body and header", func(t *testing.T) {
		w := app.do("GET", "/login", `{"email":"jo@x.com","password":"p1"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		token, _ := resp["data"].(string)
		assert.NotEmpty(t, token)
		assert.Equal(t, token, w.Header().Get(middleware.TokenHeader))
	})

	t.Run("wrong password", func(t *testing.T) {
		w := app.do("GET", "/login", `{"email":"jo@x.com","password":"nope"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "enter a valid password")
		assert.Empty(t, w.Header().Get(middleware.TokenHeader))
	})

	t.Run("unknown email", func(t *testing.T) {
		w := app.do("GET", "/login", `{"email":"ghost@x.com","password":"p1"}`, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No author found")
	})

	t.Run("empty body", func(t *testing.T) {
		w := app.do("GET", "/login", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "author data is required")
	})

	t.Run("missing password", func(t *testing.T) {
		w := app.do("GET", "/login", `{"email":"jo@x.com"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Password is required")
	})
}
