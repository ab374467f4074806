package handlers

import (
	"net/http"

	"gator-threads/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateSubredditRequest represents a request to create a new subreddit
type CreateSubredditRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) HandleListSubreddits() gin.HandlerFunc {
	return func(c *gin.Context) {
		subreddits, err := s.Store.ListSubreddits(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, subreddits)
	}
}

func (s *Server) HandleCreateSubreddit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubredditRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		subreddit, err := s.Store.CreateSubreddit(c.Request.Context(), models.NewSubreddit{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, subreddit)
	}
}
