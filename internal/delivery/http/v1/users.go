package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

const userTokenCookie = "user_token"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	token, err := h.auth.Register(c, services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user created successfully",
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		abortServiceError(c, err)
		return
	}

	now := time.Now()
	setUserTokenCookie(c, result.Token, result.TokenExpiresAt.Sub(now), h.secureCookie)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user logged in successfully",
		"data": gin.H{
			"id":    result.UserID,
			"name":  result.Name,
			"token": result.Token,
		},
	})
}

type getUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Tasks     []string  `json:"tasks"`
	CreatedAt time.Time `json:"createdAt"`
}

func newGetUserResponse(user *models.User) getUserResponse {
	tasks := user.TaskIDs
	if tasks == nil {
		tasks = []string{}
	}
	return getUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Tasks:     tasks,
		CreatedAt: user.CreatedAt,
	}
}

func (h *handlerImpl) HandleListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abortServiceError(c, err)
		return
	}

	response := make([]getUserResponse, len(users))
	for i, user := range users {
		response[i] = newGetUserResponse(user)
	}
	c.JSON(http.StatusOK, response)
}

func setUserTokenCookie(c *gin.Context, token string, maxAge time.Duration, secure bool) {
	const httpOnly = true
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(userTokenCookie, token, int(maxAge.Seconds()),
		"/", "", secure, httpOnly)
}
