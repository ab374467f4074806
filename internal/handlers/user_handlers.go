package handlers

import (
	"net/http"

	"gator-threads/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// HandleListUsers returns every user
func (s *Server) HandleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.Store.ListUsers(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// HandleGetUser returns one user by id
func (s *Server) HandleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "user_id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		user, err := s.Store.GetUser(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// HandleCreateUser inserts a user and returns the stored row
func (s *Server) HandleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		user, err := s.Store.CreateUser(c.Request.Context(), models.NewUser{
			Username: req.Username,
			Email:    req.Email,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}
