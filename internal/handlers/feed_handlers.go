package handlers

import (
	"net/http"

	"gator-threads/internal/utils"

	"github.com/gin-gonic/gin"
)

// HandleFeed loads the topic's board and serves it as an HTML page. A failed
// load is logged by the board and the previous contents are served.
func (s *Server) HandleFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		board := s.Boards.Board(c.Param("topic"))
		if err := board.Load(c.Request.Context()); err != nil {
			_ = c.Error(err)
		}

		page, err := board.Page()
		if err != nil {
			s.respondError(c, utils.NewAppError(utils.ErrInternal, "failed to render feed", err))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
