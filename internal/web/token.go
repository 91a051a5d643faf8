package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName holds the browser's session id.
const CookieName = "quizcrafter_session"

const (
	tokenKey     = "quizcrafter.token"
	cookieMaxAge = 24 * 60 * 60
)

// sessionToken assigns every client a stable id, issuing a cookie on the
// first request.
func (s *Server) sessionToken(c *gin.Context) {
	id, err := c.Cookie(CookieName)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(tokenKey, "web:"+id)
	c.Next()
}

func token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
