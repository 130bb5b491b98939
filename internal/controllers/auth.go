package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/expensebud/backend/internal/auth"
	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserCreate struct {
	Username  string `json:"username" example:"morre"`
	Password  string `json:"password" example:"correct horse battery staple"`
	FirstName string `json:"firstName" example:"Maurice"`
	LastName  string `json:"lastName" example:"Moss"`
	Email     string `json:"email" example:"moss@example.com"`
}

type TokenRequest struct {
	Username string `json:"username" example:"morre"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type TokenResponse struct {
	Data Token `json:"data"`
}

type Token struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.t-IDcSemACt8x4iTMCda8Yhe3iZaWbvV5XKSTbuAn0M"` // Bearer token for the Authorization header
	User  User   `json:"user"`                                                                                                 // The authenticated user
}

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func (co *Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.Use(auth.RateLimit(co.AuthLimiter))

	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)
	r.OPTIONS("/token", httputil.OptionsPost)
	r.POST("/token", co.CreateToken)
}

// Register creates a user
//
//	@Summary		Register
//	@Description	Creates a new user and returns a token for it
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	TokenResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		429		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			user	body		UserCreate	true	"User"
//	@Router			/v1/auth/register [post]
func (co *Controller) Register(c *gin.Context) {
	var data UserCreate
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.Password == "" {
		httputil.NewError(c, http.StatusBadRequest, errPasswordEmpty)
		return
	}

	hash, err := auth.HashPassword(data.Password, co.BcryptCost)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	user := models.User{
		Username:  data.Username,
		Password:  hash,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
	}

	err = co.Users.Create(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().Str("user", user.ID.String()).Msg("registered user")
	co.respondToken(c, http.StatusCreated, user)
}

// CreateToken authenticates a user
//
//	@Summary		Token
//	@Description	Returns a token for the user if the credentials are correct
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TokenResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		401			{object}	httputil.HTTPError
//	@Failure		429			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			credentials	body		TokenRequest	true	"Credentials"
//	@Router			/v1/auth/token [post]
func (co *Controller) CreateToken(c *gin.Context) {
	var data TokenRequest
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	user, err := co.Users.GetByUsername(c.Request.Context(), strings.TrimSpace(data.Username))
	if errors.Is(err, models.ErrResourceNotFound) {
		// Unknown users get the same answer as wrong passwords
		respondError(c, auth.ErrInvalidCredentials)
		return
	} else if err != nil {
		respondError(c, err)
		return
	}

	err = auth.ComparePassword(user.Password, data.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	co.respondToken(c, http.StatusOK, user)
}

func (co *Controller) respondToken(c *gin.Context, status int, user models.User) {
	token, err := co.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		httputil.InternalError(c, err)
		return
	}

	c.JSON(status, TokenResponse{Data: Token{
		Token: token,
		User:  newUser(c, user),
	}})
}
