package status

import (
	"net/http"

	"ranch_farm/internal/httputil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Board *Board
}

func NewHandler(board *Board) *Handler {
	return &Handler{Board: board}
}

// LastCycle отдаёт отчёт последнего завершённого цикла.
func (h *Handler) LastCycle(c *gin.Context) {
	report, ok := h.Board.Last()
	if !ok {
		httputil.RespondError(c, http.StatusNotFound, "no cycle finished yet")
		return
	}
	c.JSON(http.StatusOK, report)
}
