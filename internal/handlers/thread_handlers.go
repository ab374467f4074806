package handlers

import (
	"net/http"

	"gator-threads/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateThreadRequest represents a request to create a thread. The subreddit
// comes from the path.
type CreateThreadRequest struct {
	AuthorID *int64  `json:"author_id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
}

// HandleListThreads returns every thread across all subreddits
func (s *Server) HandleListThreads() gin.HandlerFunc {
	return func(c *gin.Context) {
		threads, err := s.Store.ListThreads(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, threads)
	}
}

// HandleCreateThread creates a thread in the subreddit named by the path.
// Unknown subreddits and authors are rejected by the store.
func (s *Server) HandleCreateThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		subredditID, err := pathID(c, "subreddit_id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		var req CreateThreadRequest
		if err := bindJSON(c, &req); err != nil {
			s.respondError(c, err)
			return
		}

		thread, err := s.Store.CreateThread(c.Request.Context(), models.NewThread{
			SubredditID: subredditID,
			AuthorID:    req.AuthorID,
			Title:       req.Title,
			Content:     req.Content,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, thread)
	}
}

// HandleDeleteThread deletes a thread and returns the removed row
func (s *Server) HandleDeleteThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "thread_id")
		if err != nil {
			s.respondError(c, err)
			return
		}

		thread, err := s.Store.DeleteThread(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, thread)
	}
}
