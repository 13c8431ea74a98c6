package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/models"
)

type fakeResolver struct {
	profile *models.Profile
	err     error
}

func (f fakeResolver) Resolve(context.Context, uuid.UUID) (*models.Profile, error) {
	return f.profile, f.err
}

func newRouter(tokens *auth.TokenManager, resolver fakeResolver, mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(tokens), LoadProfile(resolver)}, mws...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sections": access.IDs(access.VisibleSections(Identity(c)))})
	})
	r.GET("/x", chain...)
	return r
}

func do(t *testing.T, r *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	r := newRouter(tokens, fakeResolver{profile: &models.Profile{Role: "user"}})

	assert.Equal(t, http.StatusUnauthorized, do(t, r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "Bearer abc").Code)

	tok, err := tokens.Generate(uuid.New(), "u@amg.fr", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, r, "Bearer "+tok).Code)
}

func TestRequireSection(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	tok, err := tokens.Generate(uuid.New(), "u@amg.fr", "user")
	require.NoError(t, err)

	withQuotes := fakeResolver{profile: &models.Profile{Role: "user", EnabledFeatures: []string{"devis"}}}
	assert.Equal(t, http.StatusOK, do(t, newRouter(tokens, withQuotes, RequireSection(access.SectionQuotes)), "Bearer "+tok).Code)
	assert.Equal(t, http.StatusForbidden, do(t, newRouter(tokens, withQuotes, RequireSection(access.SectionAI)), "Bearer "+tok).Code)
}

func TestLoadProfileFailureFallsBack(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	tok, err := tokens.Generate(uuid.New(), "u@amg.fr", "admin")
	require.NoError(t, err)

	failing := fakeResolver{err: errors.New("connection reset")}

	w := do(t, newRouter(tokens, failing), "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sections":["dashboard","clients","rdv","devis","factures","parametres"]}`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(t, newRouter(tokens, failing, RequireSection(access.SectionInvoices)), "Bearer "+tok).Code)
	assert.Equal(t, http.StatusForbidden, do(t, newRouter(tokens, failing, RequireAdmin()), "Bearer "+tok).Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	tok, err := tokens.Generate(uuid.New(), "u@amg.fr", "user")
	require.NoError(t, err)

	admin := fakeResolver{profile: &models.Profile{Role: "admin"}}
	assert.Equal(t, http.StatusOK, do(t, newRouter(tokens, admin, RequireAdmin()), "Bearer "+tok).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
