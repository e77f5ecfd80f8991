package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artportfolio/internal/domain"
	"artportfolio/internal/modules/artwork"
	"artportfolio/internal/modules/auth"
	"artportfolio/internal/modules/user"
	"artportfolio/internal/pkg/jwt"
	"artportfolio/internal/pkg/password"
	"artportfolio/internal/repository"
	"artportfolio/internal/store"
	"artportfolio/internal/upload"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type testApp struct {
	router   *gin.Engine
	artworks *repository.ArtworkRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	s := store.NewFileStore(t.TempDir())
	require.NoError(t, s.Init(ctx))
	locks := store.NewLocker()

	hasher := password.NewHasher("")
	users := repository.NewUserRepository(s, locks)
	_, err := users.EnsureSeeded(ctx, auth.SeedUsers(hasher, "admin", "user"))
	require.NoError(t, err)

	artworks := repository.NewArtworkRepository(s, locks)
	require.NoError(t, artworks.Replace(ctx, []domain.Artwork{
		{ID: 1, Title: "Sunset Reflections", Description: "d", ImageURL: "/uploads/1.png", CreatedByUser: 1},
		{ID: 2, Title: "Urban Fragments", Description: "d", ImageURL: "/uploads/2.png", CreatedByUser: 2},
	}))

	uploadDir := t.TempDir()
	images := upload.NewLocalStore(uploadDir, "/uploads", 0)

	tokens, err := jwt.New("router-secret", time.Hour)
	require.NoError(t, err)

	r := NewRouter(Deps{
		Store:            s,
		Tokens:           tokens,
		Auth:             auth.NewHandler(auth.NewService(users, hasher, tokens)),
		Artworks:         artwork.NewHandler(artwork.NewService(artworks, images), 0),
		Users:            user.NewHandler(user.NewService(users, artworks)),
		UploadsDir:       uploadDir,
		UploadsURLPrefix: "/uploads",
	})
	return &testApp{router: r, artworks: artworks}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) login(t *testing.T, username, pass string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": pass})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := a.do(req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testApp) createArtwork(t *testing.T, token, title string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("description", "made in a test"))
	part, err := w.CreateFormFile("image", "work.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/artworks", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return a.do(req)
}

func (a *testApp) getAuthed(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(req)
}

func TestRouter_LoginCreateAndProfile(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "admin", "admin")

	rr := app.createArtwork(t, token, "Evening Study")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Artwork domain.Artwork `json:"artwork"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.Artwork.ID)
	assert.Equal(t, "Mixed media", created.Artwork.Medium)

	img := app.getAuthed(created.Artwork.ImageURL, "")
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, pngBytes, img.Body.Bytes())

	rr = app.getAuthed("/api/user", token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var profile struct {
		Success bool         `json:"success"`
		User    user.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.True(t, profile.Success)
	assert.Equal(t, int64(1), profile.User.ID)
	assert.Equal(t, "Admin", profile.User.Name)
	require.Len(t, profile.User.Artworks, 2)
	assert.Equal(t, "Sunset Reflections", profile.User.Artworks[0].Title)
	assert.Equal(t, "Evening Study", profile.User.Artworks[1].Title)
}

func TestRouter_UserRequiresToken(t *testing.T) {
	app := newTestApp(t)

	rr := app.getAuthed("/api/user", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = app.getAuthed("/api/user", "garbage")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_AdminUsers(t *testing.T) {
	app := newTestApp(t)

	rr := app.getAuthed("/api/admin/users", app.login(t, "user", "user"))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = app.getAuthed("/api/admin/users", app.login(t, "admin", "admin"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"username":"user"`)
	assert.NotContains(t, rr.Body.String(), "hash")
}

func TestRouter_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "user", "user")

	const n = 8
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = app.createArtwork(t, token, "Parallel").Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}

	all, err := app.artworks.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, n+2)
	seen := map[int64]bool{}
	for _, a := range all {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	for id := int64(1); id <= n+2; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)
	rr := app.getAuthed("/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestRouter_NotFound(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/nope", "/api/unknown", "/api/artworks/1/extra"} {
		rr := app.getAuthed(path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"success":false,"message":"Resource not found"}`, rr.Body.String())
	}
}
