// Package api exposes the compositor over HTTP for the surrounding
// system. It is a thin collaborator surface: parse the record, invoke a
// render, return base64 artifacts. No sessions, no persistence.
package api

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/safetyfirst/incident-engine/internal/renderer"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// Server is the HTTP render API
type Server struct {
	router  *gin.Engine
	preview *renderer.Compositor
	final   *renderer.Compositor
}

// NewServer creates a new render API server
func NewServer(preview, final *renderer.Compositor) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	s := &Server{
		router:  router,
		preview: preview,
		final:   final,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/render", s.handleRender)
	s.router.POST("/report", s.handleReport)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Run starts the server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

type artifactJSON struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64
}

// handleRender renders the card artifacts for a posted record. The
// "final" query flag switches from the preview backend to the
// high-fidelity one.
func (s *Server) handleRender(c *gin.Context) {
	inc, ok := s.bindIncident(c)
	if !ok {
		return
	}

	jobID := uuid.NewString()

	if c.Query("final") == "true" {
		artifacts, err := s.final.ComposeCards(inc)
		if err != nil {
			log.Printf("render job %s failed: %v", jobID, err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"job_id": jobID, "error": "no artifact produced"})
			return
		}
		c.JSON(200, gin.H{
			"job_id":    jobID,
			"artifacts": toJSON(artifacts),
		})
		return
	}

	cards, thumbs, err := s.preview.ComposeCardPreviews(inc)
	if err != nil {
		log.Printf("preview job %s failed: %v", jobID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"job_id": jobID, "error": "no artifact produced"})
		return
	}

	c.JSON(200, gin.H{
		"job_id":     jobID,
		"artifacts":  toJSON(cards),
		"thumbnails": toJSON(thumbs),
	})
}

// handleReport renders the A4 PDF report for a posted record.
func (s *Server) handleReport(c *gin.Context) {
	inc, ok := s.bindIncident(c)
	if !ok {
		return
	}

	jobID := uuid.NewString()
	art, err := s.final.ComposeReport(inc)
	if err != nil {
		log.Printf("report job %s failed: %v", jobID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"job_id": jobID, "error": "no artifact produced"})
		return
	}

	c.JSON(200, gin.H{
		"job_id":   jobID,
		"artifact": artifactJSON{Filename: art.Filename, Data: base64.StdEncoding.EncodeToString(art.Bytes)},
	})
}

func (s *Server) bindIncident(c *gin.Context) (*incidentformat.Incident, bool) {
	var inc incidentformat.Incident
	if err := c.ShouldBindJSON(&inc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if inc.Language == "" {
		inc.Language = "en"
	}
	if err := incidentformat.Validate(&inc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &inc, true
}

func toJSON(artifacts []renderer.Artifact) []artifactJSON {
	out := make([]artifactJSON, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, artifactJSON{
			Filename: a.Filename,
			Data:     base64.StdEncoding.EncodeToString(a.Bytes),
		})
	}
	return out
}
