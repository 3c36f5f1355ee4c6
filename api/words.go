package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/server"
)

func (h *Handler) listWords(c *gin.Context) {
	server.RespondList(c, h.vocabulary.List(c.Query("category")))
}

func (h *Handler) getWord(c *gin.Context) {
	word := c.Param("word")
	w, ok := h.vocabulary.Lookup(word)
	if !ok {
		server.RespondWithError(c, errors.NotFound("word", word))
		return
	}
	server.RespondOK(c, w)
}
