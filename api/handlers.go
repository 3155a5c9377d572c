package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	goCred "github.com/MrEthical07/goCred"
)

const turnstileHeader = "cf-turnstile-response"

type response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	NewToken  string `json:"new_token,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	NewUsername string `json:"new_username"`
	NewPassword string `json:"new_password"`
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// challenge enforces the bot challenge on credential endpoints. It writes
// the response on failure and reports whether the handler may continue.
func (s *server) challenge(c *gin.Context) bool {
	if s.verifier == nil {
		return true
	}

	token := c.GetHeader(turnstileHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Turnstile token required"})
		return false
	}

	ok, err := s.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("turnstile verification unavailable")
		c.JSON(http.StatusServiceUnavailable, response{Success: false, Message: "Challenge verification unavailable"})
		return false
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Turnstile verification failed"})
		return false
	}

	return true
}

func (s *server) handleRegister(c *gin.Context) {
	if !s.challenge(c) {
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}

	err := s.engine.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response{Success: true, Message: "User registered successfully"})
	case errors.Is(err, goCred.ErrUserExists):
		// Duplicate registration is an expected outcome, not an HTTP error.
		c.JSON(http.StatusOK, response{Success: false, Message: "User already exists"})
	case errors.Is(err, goCred.ErrUsernameInvalid), errors.Is(err, goCred.ErrPasswordInvalid):
		c.JSON(http.StatusBadRequest, response{Success: false, Message: err.Error()})
	default:
		s.serverError(c, err)
	}
}

func (s *server) handleLogin(c *gin.Context) {
	if !s.challenge(c) {
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}

	result, err := s.engine.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response{
			Success:   true,
			Token:     result.Token,
			ExpiresIn: result.ExpiresIn,
		})
	case errors.Is(err, goCred.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Invalid username or password"})
	default:
		s.serverError(c, err)
	}
}

func (s *server) handleUpdate(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Missing bearer token"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}

	result, err := s.engine.Update(c.Request.Context(), token, goCred.UpdateRequest{
		NewUsername: req.NewUsername,
		NewPassword: req.NewPassword,
	})
	switch {
	case err == nil:
		resp := response{Success: true, Message: "User updated successfully"}
		if result.Rotated {
			resp.NewToken = result.Token
			resp.ExpiresIn = result.ExpiresIn
		}
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, goCred.ErrNothingToUpdate):
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Nothing to update"})
	case errors.Is(err, goCred.ErrUsernameInvalid), errors.Is(err, goCred.ErrPasswordInvalid):
		c.JSON(http.StatusBadRequest, response{Success: false, Message: err.Error()})
	case errors.Is(err, goCred.ErrUsernameTaken):
		c.JSON(http.StatusConflict, response{Success: false, Message: "Username already taken"})
	case errors.Is(err, goCred.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Token expired"})
	case errors.Is(err, goCred.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Invalid token"})
	default:
		s.serverError(c, err)
	}
}

func (s *server) handleDelete(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Missing bearer token"})
		return
	}

	_, err := s.engine.Delete(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response{Success: true, Message: "User deleted successfully"})
	case errors.Is(err, goCred.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Token expired"})
	case errors.Is(err, goCred.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Invalid token"})
	default:
		s.serverError(c, err)
	}
}

func (s *server) serverError(c *gin.Context, err error) {
	s.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("request failed")
	c.JSON(http.StatusInternalServerError, response{Success: false, Message: "Internal server error"})
}
