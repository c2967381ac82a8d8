package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/service"
)

// GateHandlers contains the HTTP handlers for the access gate.
type GateHandlers struct {
	gate *service.AccessGate
	log  *slog.Logger
}

// NewGateHandlers creates handlers on a gate.
func NewGateHandlers(gate *service.AccessGate, log *slog.Logger) *GateHandlers {
	if log == nil {
		log = slog.Default()
	}
	return &GateHandlers{gate: gate, log: log}
}

// Challenge issues a new login challenge.
func (h *GateHandlers) Challenge(c *gin.Context) {
	ch, err := h.gate.CreateChallenge(c.Request.Context())
	if err != nil {
		h.log.Error("failed to create challenge", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}
	challengesIssued.Inc()

	c.JSON(http.StatusOK, gin.H{
		"challenge_id": ch.ID,
		"message":      ch.Message(),
		"expires_at":   ch.ExpiresAt,
	})
}

// Login verifies a signed challenge and returns a session token.
func (h *GateHandlers) Login(c *gin.Context) {
	var req struct {
		ChallengeID string `json:"challenge_id" binding:"required"`
		Address     string `json:"address" binding:"required"`
		Signature   string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.gate.Login(c.Request.Context(), req.ChallengeID, req.Address, req.Signature)
	if err != nil {
		// The specific failure (signature vs. allow-list vs. expiry) is
		// logged internally but never revealed to the caller, so a probe
		// cannot learn which addresses are allow-listed.
		h.log.Warn("login denied", "error", err)
		loginsTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	loginsTotal.WithLabelValues("ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
	})
}

// FetchDocument decrypts and returns a protected document.
func (h *GateHandlers) FetchDocument(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		contentRequests.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	docID := strings.TrimPrefix(c.Param("id"), "/")

	plaintext, err := h.gate.FetchContent(c.Request.Context(), token, docID)
	if err != nil {
		h.writeFetchError(c, docID, err)
		return
	}
	contentRequests.WithLabelValues("ok").Inc()

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", plaintext)
}

func (h *GateHandlers) writeFetchError(c *gin.Context, docID string, err error) {
	switch {
	case errors.Is(err, core.ErrContentNotFound):
		contentRequests.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, core.ErrStoreOperationFailed):
		// Storage trouble is retryable; say so without detail.
		h.log.Error("document store failure", "document", docID, "error", err)
		contentRequests.WithLabelValues("store_error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	default:
		// Session, allow-list, and decryption failures all collapse into
		// one uniform denial.
		h.log.Warn("content access denied", "document", docID, "error", err)
		contentRequests.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	}
}

// Healthz reports liveness.
func (h *GateHandlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
