package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
	"github.com/teamuphq/teamup/services/jwt"
)

func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is revoked", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		secret := s.Config.JWTSecret
		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, secret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var userID uint
		switch v := accessClaims["id"].(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
				return
			default:
				respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
				return
			}
		}

		if user.IsBlocked {
			respondAndAbort(c, "account is blocked", http.StatusForbidden, nil, errs.New("forbidden", http.StatusForbidden))
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

func limitRateForLogin(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        loginKeyFunc,
		BeforeResponse: nil,
	})
}

// loginKeyFunc keys the login rate limit on the submitted email so one
// hammered account does not lock out the rest of the client's network.
func loginKeyFunc(c *gin.Context) string {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
	return req.Email
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}

// currentUserID reads the authenticated caller set by Authorize. The core
// trusts this identity unconditionally.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
