// Package server exposes one analysis result over a read-only HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/graph"
	"campaign-speeches/backend/internal/mention"
	"campaign-speeches/backend/internal/speech"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// Segment paging
const (
	DefaultSegmentLimit = 50
	MaxSegmentLimit     = 500
)

// MentionStore reads stored runs. *graph.Repository implements it.
type MentionStore interface {
	ListRuns(ctx context.Context) ([]graph.Run, error)
	FetchMentions(ctx context.Context, runID string) (*mention.Matrix, error)
}

// Server serves one Result and the speeches it was computed from
type Server struct {
	res      *analysis.Result
	speeches []speech.Speech
	store    MentionStore
	logger   *zap.Logger
}

// New creates a Server. store may be nil, which disables the /api/runs routes.
func New(res *analysis.Result, speeches []speech.Speech, store MentionStore) *Server {
	return &Server{
		res:      res,
		speeches: speeches,
		store:    store,
		logger:   logger.Named("server"),
	}
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "run_id": s.res.RunID})
	})

	api := router.Group("/api")
	{
		api.GET("/summary", s.summary)
		api.GET("/speakers", s.speakers)
		api.GET("/weekly", s.weekly)
		api.GET("/mentions", s.mentions)
		api.GET("/words/:speaker", s.words)
		api.GET("/states", s.states)
		api.GET("/channels", s.channels)
		api.GET("/segments", s.segments)
		api.GET("/speeches/:id", s.speech)

		if s.store != nil {
			api.GET("/runs", s.runs)
			api.GET("/runs/:id/mentions", s.runMentions)
		}
	}
	return router
}

func (s *Server) summary(c *gin.Context) {
	r := s.res
	c.JSON(http.StatusOK, gin.H{
		"run_id":         r.RunID,
		"created_at":     r.CreatedAt,
		"speeches":       r.Speeches,
		"invalid_dates":  r.InvalidDates,
		"date_from":      r.DateFrom,
		"date_to":        r.DateTo,
		"top":            r.Top,
		"segments":       r.SegmentCount,
		"dropped_blocks": r.DroppedBlocks,
		"missing_values": r.MissingValues,
		"type_counts":    r.TypeCounts,
	})
}

func (s *Server) speakers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"top":                   s.res.Top,
		"counts":                s.res.SpeakerCounts,
		"shared_counts":         s.res.SharedCounts,
		"total_words":           s.res.TotalWords,
		"ambiguous":             s.res.Ambiguous,
		"multiple_speakers_top": s.res.MultipleTop,
	})
}

func (s *Server) weekly(c *gin.Context) {
	switch view := c.DefaultQuery("view", "top"); view {
	case "top":
		c.JSON(http.StatusOK, s.res.Weekly)
	case "others":
		c.JSON(http.StatusOK, s.res.WeeklyOthers)
	case "party":
		c.JSON(http.StatusOK, s.res.WeeklyParty)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be top, others or party"})
	}
}

func (s *Server) mentions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"matrix": s.res.Mentions,
		"edges":  s.res.Mentions.Edges(),
	})
}

func (s *Server) words(c *gin.Context) {
	name := c.Param("speaker")
	words, ok := s.res.TopWords[name]
	if !ok {
		s.notFound(c, apperrors.NewSpeakerNotFound(name))
		return
	}
	limit, ok := s.limit(c, len(words), len(words))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"speaker": name,
		"words":   words[:min(limit, len(words))],
		"summary": s.res.Summaries[name],
	})
}

func (s *Server) states(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"table":        s.res.PartyByState,
		"winners":      s.res.StateWinners,
		"unclassified": s.res.Unclassified,
	})
}

func (s *Server) channels(c *gin.Context) {
	c.JSON(http.StatusOK, s.res.ChannelByParty)
}

func (s *Server) segments(c *gin.Context) {
	name := c.Query("speaker")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "speaker is required"})
		return
	}
	limit, ok := s.limit(c, DefaultSegmentLimit, MaxSegmentLimit)
	if !ok {
		return
	}
	segments := s.res.SegmentsOf(name, limit)
	if len(segments) == 0 {
		s.notFound(c, apperrors.NewSpeakerNotFound(name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"speaker": name, "segments": segments})
}

func (s *Server) speech(c *gin.Context) {
	id, err := speech.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id >= len(s.speeches) {
		c.JSON(http.StatusNotFound, gin.H{"error": "speech not found"})
		return
	}
	c.JSON(http.StatusOK, s.speeches[id])
}

func (s *Server) runs(c *gin.Context) {
	runs, err := s.store.ListRuns(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) runMentions(c *gin.Context) {
	m, err := s.store.FetchMentions(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *apperrors.ErrGraphRunNotFound
		if errors.As(err, &notFound) {
			s.notFound(c, err)
			return
		}
		s.logger.Error("Failed to fetch mentions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matrix": m, "edges": m.Edges()})
}

// limit reads ?limit=, falling back to def and capping at max
func (s *Server) limit(c *gin.Context, def, maxLimit int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return min(n, maxLimit), true
}

func (s *Server) notFound(c *gin.Context, err error) {
	c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
}
