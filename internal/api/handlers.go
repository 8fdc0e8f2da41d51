package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/siteforge/siteforge/internal/form"
	"github.com/siteforge/siteforge/internal/jobs"
	"github.com/siteforge/siteforge/internal/model"
	"github.com/siteforge/siteforge/internal/store"
)

const (
	maxLogoFiles = 8
	maxLogoSize  = 10 << 20 // 10MB per logo image
)

type APIHandler struct {
	Orchestrator *jobs.Orchestrator
	Status       *jobs.StatusService
	ArtifactDir  string
	UploadDir    string
}

func RegisterHandlers(r *gin.Engine, orch *jobs.Orchestrator, status *jobs.StatusService, artifactDir, uploadDir string) {
	h := &APIHandler{
		Orchestrator: orch,
		Status:       status,
		ArtifactDir:  artifactDir,
		UploadDir:    uploadDir,
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	})

	r.POST("/api/site-builder", h.submitBuild)
	r.GET("/api/jobs/:jobId", h.getJobStatus)

	r.GET("/jobs/:filename", h.serveArtifact)
}

func (h *APIHandler) submitBuild(c *gin.Context) {
	formData, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	fields := make(map[string]string, len(formData.Value))
	for k, v := range formData.Value {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	sub, verr := form.Validate(fields)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Message})
		return
	}

	logos := formData.File["logoImages"]
	if len(logos) > maxLogoFiles {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Too many logo images"})
		return
	}
	for _, f := range logos {
		if f.Size > maxLogoSize {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Logo image too large"})
			return
		}
		dst := filepath.Join(h.UploadDir, uuid.New().String()+filepath.Ext(f.Filename))
		if err := c.SaveUploadedFile(f, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		sub.LogoImagePaths = append(sub.LogoImagePaths, dst)
	}

	jobID, err := h.Orchestrator.Submit(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	// The build runs in the background; the client polls /api/jobs/:jobId.
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Job accepted. Site is being created.",
		"jobId":   jobID,
	})
}

func (h *APIHandler) getJobStatus(c *gin.Context) {
	jobID := c.Param("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid job ID"})
		return
	}

	view, err := h.Status.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) serveArtifact(c *gin.Context) {
	filename := c.Param("filename")

	if !strings.HasSuffix(filename, ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid artifact filename"})
		return
	}

	jobID := strings.TrimSuffix(filename, ".pdf")

	view, err := h.Status.Get(c.Request.Context(), jobID)
	if err != nil || view.Status != model.StatusComplete {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Artifact not found"})
		return
	}

	c.File(filepath.Join(h.ArtifactDir, filename))
}
