package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	app, s, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"email":    s.config.AdminEmail,
				"password": s.config.AdminPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong password",
			body: map[string]string{
				"email":    s.config.AdminEmail,
				"password": "nope",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong email",
			body: map[string]string{
				"email":    "intruder@example.com",
				"password": s.config.AdminPassword,
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing credentials",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/admin/login", tt.body, "")
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body struct {
					Token string `json:"token"`
				}
				decodeBody(t, resp, &body)
				assert.NotEmpty(t, body.Token)
			}
		})
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app, _, db := newTestServer(t)

	post := testutil.SeedPost(t, db)
	comment := testutil.SeedComment(t, db, post.ID)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/blogs"},
		{http.MethodGet, "/api/admin/comments"},
		{http.MethodPost, "/api/admin/comments/" + itoa(comment.ID) + "/approve"},
		{http.MethodDelete, "/api/admin/comments/" + itoa(comment.ID)},
		{http.MethodGet, "/api/admin/dashboard"},
	}

	for _, p := range paths {
		resp := doJSON(t, app, p.method, p.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, p.path)
	}

	// Rejected mutations leave the store untouched.
	var got models.Comment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.False(t, got.IsApproved)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	app, s, db := newTestServer(t)

	post := testutil.SeedPost(t, db)

	// A token that checked out an hour ago but is past its expiry now.
	claims := service.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.TokenIssuer,
			Audience:  jwt.ClaimStrings{service.TokenAudience},
			Subject:   s.config.AdminEmail,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/blogs", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/blogs/"+itoa(post.ID), nil, expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The rejected delete changed nothing.
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthRequiredRejectsForeignToken(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/blogs", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetAllBlogsIncludesDrafts(t *testing.T) {
	app, s, db := newTestServer(t)
	token := authToken(t, s)

	testutil.SeedPost(t, db, func(p *models.Post) { p.IsPublished = true })
	testutil.SeedPost(t, db, func(p *models.Post) { p.IsPublished = false })

	resp := doJSON(t, app, http.MethodGet, "/api/admin/blogs", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	assert.Len(t, posts, 2)
}

func TestGetAllCommentsFilter(t *testing.T) {
	app, s, db := newTestServer(t)
	token := authToken(t, s)

	post := testutil.SeedPost(t, db)
	testutil.SeedComment(t, db, post.ID, func(c *models.Comment) { c.IsApproved = true })
	testutil.SeedComment(t, db, post.ID, func(c *models.Comment) { c.IsApproved = false })

	t.Run("All", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/comments", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		decodeBody(t, resp, &comments)
		assert.Len(t, comments, 2)
	})

	t.Run("Pending only", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/comments?approved=false", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.False(t, comments[0].IsApproved)
	})

	t.Run("Invalid filter", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/comments?approved=maybe", nil, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestApproveComment(t *testing.T) {
	app, s, db := newTestServer(t)
	token := authToken(t, s)

	post := testutil.SeedPost(t, db)
	comment := testutil.SeedComment(t, db, post.ID)
	require.False(t, comment.IsApproved)

	resp := doJSON(t, app, http.MethodPost,
		"/api/admin/comments/"+itoa(comment.ID)+"/approve", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var approved models.Comment
	decodeBody(t, resp, &approved)
	assert.True(t, approved.IsApproved)
}

func TestApproveCommentNotFound(t *testing.T) {
	app, s, _ := newTestServer(t)
	token := authToken(t, s)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/comments/999/approve", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment(t *testing.T) {
	app, s, db := newTestServer(t)
	token := authToken(t, s)

	post := testutil.SeedPost(t, db)
	comment := testutil.SeedComment(t, db, post.ID)

	resp := doJSON(t, app, http.MethodDelete, "/api/admin/comments/"+itoa(comment.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetDashboard(t *testing.T) {
	app, s, db := newTestServer(t)
	token := authToken(t, s)

	published := testutil.SeedPost(t, db, func(p *models.Post) { p.IsPublished = true })
	testutil.SeedPost(t, db, func(p *models.Post) { p.IsPublished = false })
	testutil.SeedComment(t, db, published.ID)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary service.DashboardSummary
	decodeBody(t, resp, &summary)
	assert.Equal(t, int64(2), summary.Blogs)
	assert.Equal(t, int64(1), summary.Comments)
	assert.Equal(t, int64(1), summary.Drafts)
	assert.Len(t, summary.RecentBlogs, 2)
}
