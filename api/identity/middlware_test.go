package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := token.NewJwtService("secret", "mazesolver")

	router := gin.New()
	router.GET("/", Authoriz(ts), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextClient))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Valid token", func(t *testing.T) {
		tok, err := token.IssueClientToken(ts, "ci-runner", time.Minute)
		require.NoError(t, err)

		w := do("Bearer " + tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ci-runner", w.Body.String())
	})

	t.Run("Missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Basic abc").Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Bearer abc").Code)
	})

	t.Run("Token without scope", func(t *testing.T) {
		tok, err := ts.Generate(map[string]interface{}{token.ClaimClient: "ci-runner"}, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, do("Bearer "+tok).Code)
	})
}
