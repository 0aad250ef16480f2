package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	auth   *service.AuthService
	router *gin.Engine
}

// newTestApp wires every handler against a fresh sqlite database. Rate
// limiters are disabled unless authLimiter is given.
func newTestApp(t *testing.T, authLimiter *middleware.RateLimiter) *testApp {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, testSecret, time.Hour)

	router := gin.New()
	router.NoRoute(middleware.NoRoute())
	api.NewHealthHandler(db, nil).RegisterRoutes(router)
	api.NewAuthHandler(auth, authLimiter).RegisterRoutes(router)
	api.NewUserHandler(service.NewUserService(db), auth).RegisterRoutes(router)
	api.NewRecipeHandler(service.NewRecipeService(db, nil), auth, nil).RegisterRoutes(router)
	api.NewFavoriteHandler(service.NewFavoriteService(db), auth).RegisterRoutes(router)
	api.NewIngredientHandler(service.NewIngredientService(db), auth).RegisterRoutes(router)

	return &testApp{t: t, db: db, auth: auth, router: router}
}

// user creates an account directly in the database and returns it with a token.
func (a *testApp) user(username string) (*models.User, string) {
	a.t.Helper()
	user := testhelpers.CreateTestUser(a.t, a.db, username)
	token, err := a.auth.GenerateToken(user)
	require.NoError(a.t, err)
	return user, token
}

func (a *testApp) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	return serve(a.t, a.router, method, path, token, body)
}

func serve(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
