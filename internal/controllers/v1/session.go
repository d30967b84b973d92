package v1

import (
	"errors"
	"time"

	"github.com/financegenie/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "finance_genie_session"

// sessionLifetime is how long a session token stays valid.
const sessionLifetime = 30 * 24 * time.Hour

// sessionContextKey is the gin context key the session is stored under.
const sessionContextKey = "finance-genie-session"

// Session is the minimal payload attached to authenticated requests.
// Its absence means an anonymous guest view.
type Session struct {
	UserID   uuid.UUID
	Username string
}

var errSessionInvalid = errors.New("the session token is invalid")

// newSessionToken creates a signed session token for the user.
func newSessionToken(secret []byte, user models.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(sessionLifetime).Unix(),
	})

	return token.SignedString(secret)
}

// parseSessionToken verifies a session token and extracts the session.
func parseSessionToken(secret []byte, tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errSessionInvalid
		}

		return secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, errSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errSessionInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Session{}, errSessionInvalid
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Session{}, errSessionInvalid
	}

	username, _ := claims["username"].(string)

	return Session{UserID: userID, Username: username}, nil
}

// SessionMiddleware attaches the session to the request context when a
// valid session cookie is present. Requests without one proceed as
// anonymous guests.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		session, err := parseSessionToken(secret, cookie)
		if err != nil {
			// An invalid or expired cookie is treated like no cookie.
			c.Next()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// currentSession returns the session attached to the request, if any.
func currentSession(c *gin.Context) (Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return Session{}, false
	}

	session, ok := value.(Session)
	return session, ok
}

// setSessionCookie sets or clears the session cookie.
func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}
