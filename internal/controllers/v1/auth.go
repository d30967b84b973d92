package v1

import (
	"net/http"

	"github.com/badoux/checkmail"
	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup, secret []byte) {
	r.OPTIONS("/signup", httputil.OptionsPost)
	r.POST("/signup", Signup(secret))

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login(secret))

	r.OPTIONS("/logout", httputil.OptionsPost)
	r.POST("/logout", Logout)
}

// SignupEditable defines all values required to sign up.
type SignupEditable struct {
	Username string `json:"username" binding:"required" example:"jane"`
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

type LoginEditable struct {
	Username string `json:"username" binding:"required" example:"jane"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// UserResponse is the response for a single user.
type UserResponse struct {
	Data  *models.User `json:"data"`
	Error *string      `json:"error"`
}

// @Summary		Sign up
// @Description	Creates a new user and logs them in
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		SignupEditable	true	"User"
// @Router			/v1/auth/signup [post]
func Signup(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var editable SignupEditable
		err := httputil.BindData(c, &editable)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
			return
		}

		if err := checkmail.ValidateFormat(editable.Email); err != nil {
			e := errEmailInvalid.Error()
			c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
			return
		}

		user := models.User{
			Username:           editable.Username,
			Email:              editable.Email,
			EmailNotifications: true,
		}

		err = user.SetPassword(editable.Password)
		if err != nil {
			e := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, UserResponse{Error: &e})
			return
		}

		err = models.DB.Create(&user).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), UserResponse{Error: &e})
			return
		}

		token, err := newSessionToken(secret, user)
		if err != nil {
			e := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, UserResponse{Error: &e})
			return
		}

		setSessionCookie(c, token, int(sessionLifetime.Seconds()))
		c.JSON(http.StatusCreated, UserResponse{Data: &user})
	}
}

// @Summary		Log in
// @Description	Verifies the credentials and starts a session
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	UserResponse
// @Failure		400			{object}	UserResponse
// @Failure		401			{object}	UserResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var editable LoginEditable
		err := httputil.BindData(c, &editable)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
			return
		}

		var user models.User
		err = models.DB.First(&user, "username = ?", editable.Username).Error
		if err != nil || !user.VerifyPassword(editable.Password) {
			// Same response for unknown user and wrong password so the
			// endpoint does not leak which usernames exist.
			log.Debug().Str("username", editable.Username).Msg("login failed")
			e := errInvalidCredentials.Error()
			c.JSON(http.StatusUnauthorized, UserResponse{Error: &e})
			return
		}

		token, err := newSessionToken(secret, user)
		if err != nil {
			e := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, UserResponse{Error: &e})
			return
		}

		setSessionCookie(c, token, int(sessionLifetime.Seconds()))
		c.JSON(http.StatusOK, UserResponse{Data: &user})
	}
}

// @Summary		Log out
// @Description	Clears the session cookie
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/logout [post]
func Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusNoContent, nil)
}
