package server

import (
	"errors"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmbridge/lm-proxy/internal/models"
	"github.com/lmbridge/lm-proxy/internal/translator"
	"github.com/lmbridge/lm-proxy/internal/upstream"
	"go.uber.org/zap"
)

const (
	routeChat     = "chat"
	routeGenerate = "generate"
)

func (s *Server) root(c *gin.Context) {
	c.JSON(200, gin.H{"message": "lmbridge is running"})
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// chatCompletions handles the OpenAI-style chat completion route
func (s *Server) chatCompletions(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	payload := translator.BuildChatPayload(s.cfg.Models.Aliases, &req)
	if payload.Model != req.Model {
		s.logger.Info("Converting model name",
			zap.String("from", req.Model),
			zap.String("to", payload.Model))
	}

	if req.Stream {
		s.relayStream(c, routeChat, payload)
		return
	}

	start := time.Now()
	reply, err := s.upstream.Complete(c.Request.Context(), payload)
	s.metrics.observeUpstream(routeChat, time.Since(start))
	if err != nil {
		s.upstreamError(c, routeChat, err)
		return
	}

	resp, err := translator.TranslateChatResponse(payload.Model, reply)
	if err != nil {
		s.logger.Error("Malformed upstream reply", zap.Error(err))
		s.metrics.count(routeChat, "malformed_reply")
		c.JSON(500, gin.H{"error": "Malformed upstream reply", "details": err.Error()})
		return
	}

	s.metrics.count(routeChat, "ok")
	c.JSON(200, resp)
}

// generate handles the Ollama-style prompt completion route
func (s *Server) generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Model names on this route reach upstream byte for byte
	payload := translator.BuildGeneratePayload(&req)

	if req.Stream {
		s.relayStream(c, routeGenerate, payload)
		return
	}

	start := time.Now()
	reply, err := s.upstream.Complete(c.Request.Context(), payload)
	s.metrics.observeUpstream(routeGenerate, time.Since(start))
	if err != nil {
		s.upstreamError(c, routeGenerate, err)
		return
	}

	s.metrics.count(routeGenerate, "ok")
	c.JSON(200, translator.TranslateGenerateResponse(req.Model, reply))
}

// relayStream forwards upstream chunks verbatim as an event-stream body.
// Failures arrive on the same channel as a final "ERROR: ..." chunk; the
// 200 status is committed by the first write either way.
func (s *Server) relayStream(c *gin.Context, route string, payload *models.CompletionPayload) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	for chunk := range s.upstream.Stream(c.Request.Context(), payload) {
		c.Writer.Write([]byte(chunk))
		c.Writer.Flush()
	}

	s.metrics.count(route, "stream")
}

// upstreamError maps a typed upstream failure to the downstream status:
// status errors carry the upstream status and body, timeouts become 504,
// anything else a 500 with the failure description.
func (s *Server) upstreamError(c *gin.Context, route string, err error) {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		s.logger.Error("Upstream error",
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", statusErr.Body))
		s.metrics.count(route, "upstream_error")
		c.JSON(statusErr.StatusCode, gin.H{
			"error":   "Upstream error",
			"details": "upstream error: " + statusErr.Body,
		})
		return
	}

	if errors.Is(err, upstream.ErrTimeout) {
		s.logger.Error("Upstream request timed out")
		s.metrics.count(route, "timeout")
		c.JSON(504, gin.H{"error": "upstream request timed out"})
		return
	}

	s.logger.Error("Upstream request failed", zap.Error(err))
	s.metrics.count(route, "transport_error")
	c.JSON(500, gin.H{"error": "Request error", "details": err.Error()})
}

func (s *Server) listModels(c *gin.Context) {
	names := make([]string, 0, len(s.cfg.Models.Aliases))
	for name := range s.cfg.Models.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	data := make([]models.ModelObject, 0, len(names))
	for _, name := range names {
		data = append(data, models.ModelObject{
			ID:      name,
			Object:  "model",
			OwnedBy: "lmbridge",
		})
	}

	c.JSON(200, models.ModelsResponse{Object: "list", Data: data})
}
