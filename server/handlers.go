package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YuminosukeSato/treeguess/game"
	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/pkg/log"
)

// handlers serves game nodes over HTTP.
type handlers struct {
	resolver *game.Resolver
	metrics  *Metrics
	logger   log.Logger
}

// start handles GET /start.
func (h *handlers) start(c *gin.Context) {
	h.respond(c, 0)
}

// question handles GET /question/:id.
func (h *handlers) question(c *gin.Context) {
	id, ok := h.nodeID(c)
	if !ok {
		return
	}
	h.respond(c, id)
}

// answer handles GET /question/:id/answer/:answer and returns the node the
// answer leads to.
func (h *handlers) answer(c *gin.Context) {
	id, ok := h.nodeID(c)
	if !ok {
		return
	}
	yes, err := game.ParseAnswer(c.Param("answer"))
	if err != nil {
		h.fail(c, err)
		return
	}
	next, err := h.resolver.Follow(id, yes)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, next)
}

// healthz handles GET /healthz.
func (h *handlers) healthz(c *gin.Context) {
	t := h.resolver.Tree()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"nodes":   t.NodeCount(),
		"classes": t.NumClasses(),
	})
}

func (h *handlers) nodeID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		h.fail(c, errors.NewValidationError("node_id", "must be an integer", raw))
		return 0, false
	}
	return id, true
}

func (h *handlers) respond(c *gin.Context, id int) {
	res, err := h.resolver.Resolve(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.IsGuess() {
		h.metrics.observeNode("guess")
		c.JSON(http.StatusOK, res.Guess)
		return
	}
	h.metrics.observeNode("question")
	c.JSON(http.StatusOK, res.Question)
}

// fail maps errors to responses: unknown nodes are 404, rejected input 400,
// anything else 500.
func (h *handlers) fail(c *gin.Context, err error) {
	var (
		nf *errors.NotFoundError
		ve *errors.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		h.metrics.observeNode("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error(), "node_count": nf.NodeCount})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	default:
		h.logger.Error("request failed", err,
			log.RequestIDKey, c.GetString(log.RequestIDKey),
			log.PathKey, c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
