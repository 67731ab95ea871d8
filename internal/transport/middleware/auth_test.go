package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubParser struct {
	userID int64
	err    error
}

func (p *stubParser) ParseToken(string) (int64, error) {
	return p.userID, p.err
}

func newAuthRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", Auth(parser), func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		parser       *stubParser
		expectedCode int
	}{
		{
			name:         "valid bearer token",
			header:       "Bearer good-token",
			parser:       &stubParser{userID: 42},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing header",
			header:       "",
			parser:       &stubParser{userID: 42},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "wrong scheme",
			header:       "Basic abc123",
			parser:       &stubParser{userID: 42},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "empty bearer token",
			header:       "Bearer ",
			parser:       &stubParser{userID: 42},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "parser rejects token",
			header:       "Bearer expired-token",
			parser:       &stubParser{err: errors.New("token expired")},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.parser)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":42`)
			}
		})
	}
}
