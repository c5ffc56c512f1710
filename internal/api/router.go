// Package api exposes the HTTP surface: health, generation endpoints
// and the combined crawl-and-analyze flow.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/newsbrief-hq/newsbrief/internal/ai"
	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/publishers"
)

// Harvester runs one full source fan-out and returns the joined report.
type Harvester interface {
	Harvest(ctx context.Context) domain.Report
}

// Server wires the HTTP handlers to the crawler and the generation
// gateway.
type Server struct {
	harvester Harvester
	gateway   *ai.Gateway
	sinks     []publishers.Publisher
	log       logger.Logger
}

// NewServer builds the API server. sinks may be empty; reports are then
// only returned to the caller.
func NewServer(harvester Harvester, gateway *ai.Gateway, sinks []publishers.Publisher, log logger.Logger) *Server {
	return &Server{
		harvester: harvester,
		gateway:   gateway,
		sinks:     sinks,
		log:       logger.Ensure(log),
	}
}

// RegisterRoutes attaches all endpoints to the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.health)
	r.POST("/chat", s.chat)
	r.POST("/summarize_article", s.summarizeArticle)
	r.POST("/generate_headline", s.generateHeadline)
	r.POST("/crawl_and_analyze", s.crawlAndAnalyze)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "newsbrief backend is running"})
}

type chatInput struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (s *Server) chat(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	text, err := s.gateway.Chat(c.Request.Context(), input.Prompt)
	if err != nil {
		s.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": text})
}

type articleInput struct {
	ArticleText   string `json:"article_text" binding:"required"`
	SummaryLength string `json:"summary_length"`
}

func (s *Server) summarizeArticle(c *gin.Context) {
	var input articleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_text is required"})
		return
	}

	summary, err := s.gateway.Summarize(c.Request.Context(), input.ArticleText, input.SummaryLength)
	if err != nil {
		s.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type headlineInput struct {
	TextContent   string `json:"text_content" binding:"required"`
	NumHeadlines  int    `json:"num_headlines" binding:"omitempty,min=1,max=10"`
	HeadlineStyle string `json:"headline_style"`
}

func (s *Server) generateHeadline(c *gin.Context) {
	var input headlineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text_content is required and num_headlines must be 1-10"})
		return
	}

	headlines, err := s.gateway.Headlines(c.Request.Context(), input.TextContent, input.NumHeadlines, input.HeadlineStyle)
	if err != nil {
		s.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"headlines": headlines})
}

func (s *Server) crawlAndAnalyze(c *gin.Context) {
	if !s.gateway.Configured() {
		s.generationError(c, ai.ErrNotConfigured)
		return
	}

	ctx := c.Request.Context()
	report := s.harvester.Harvest(ctx)

	// Sinks receive the report regardless of what the analysis does.
	publishers.PublishReport(ctx, s.sinks, report, s.log)

	headlines := report.AllHeadlines()
	if len(headlines) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":         "No headlines were scraped from any of the configured sources.",
			"scraped_details": report.Results,
		})
		return
	}

	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}

	analysis, err := s.gateway.AnalyzeHeadlines(ctx, titles)
	if err != nil {
		s.generationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Successfully crawled and analyzed headlines.",
		"scraped_details": report.Results,
		"ai_analysis":     analysis,
	})
}

// generationError maps gateway failures to the error body shape every
// endpoint shares. Configuration problems and backend failures both
// answer 500 with an error field; the process never dies over either.
func (s *Server) generationError(c *gin.Context, err error) {
	if errors.Is(err, ai.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "generation backend not configured: set OPENAI_API_KEY or ANTHROPIC_API_KEY",
		})
		return
	}

	msg := strings.TrimSpace(err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed: " + msg})
}
