package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	allowedOrigin := s.Config.AccessControlAllowOrigin
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowedOrigin != "" {
		corsConfig.AllowOrigins = []string{allowedOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limitLogin := limitRateForLogin(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitLogin, s.handleLogin())

	// realtime channel; registration happens in-band via the register event
	apirouter.GET("/ws", s.handleWebsocket())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())
	authorized.PUT("/me/picture", s.handleUploadProfileImage())

	authorized.GET("/users", s.handleGetAllUsers())
	authorized.GET("/users/online", s.handleGetOnlineUsers())
	authorized.GET("/users/:userID", s.handleGetUser())

	authorized.GET("/connections", s.handleGetConnections())
	authorized.POST("/connections/request/:userID", s.handleSendConnectionRequest())
	authorized.POST("/connections/accept/:requestID", s.handleAcceptConnectionRequest())
	authorized.POST("/connections/reject/:requestID", s.handleRejectConnectionRequest())
	authorized.DELETE("/connections/remove/:userID", s.handleRemoveConnection())

	authorized.POST("/messages", s.handleSendMessage())
	authorized.GET("/messages/conversations", s.handleGetConversations())
	authorized.GET("/messages/:userID", s.handleGetMessages())

	authorized.GET("/notifications", s.handleGetNotifications())
	authorized.POST("/notifications/:id/read", s.handleMarkNotificationRead())
	authorized.DELETE("/notifications/:id", s.handleDeleteNotification())

	authorized.POST("/posts", s.handleCreatePost())
	authorized.GET("/posts", s.handleGetAllPosts())
	authorized.GET("/posts/:postID", s.handleGetPost())
	authorized.PUT("/posts/:postID", s.handleUpdatePost())
	authorized.DELETE("/posts/:postID", s.handleDeletePost())
	authorized.PUT("/posts/:postID/like", s.handleLikePost())
	authorized.DELETE("/posts/:postID/like", s.handleUnlikePost())

	authorized.POST("/teams", s.handleCreateTeam())
	authorized.GET("/teams", s.handleGetUserTeams())
	authorized.POST("/teams/members", s.handleAddTeamMember())
	authorized.DELETE("/teams/members", s.handleRemoveTeamMember())
	authorized.DELETE("/teams/:teamID", s.handleDeleteTeam())
}
