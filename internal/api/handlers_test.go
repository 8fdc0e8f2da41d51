package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteforge/siteforge/internal/artifact"
	"github.com/siteforge/siteforge/internal/builder"
	"github.com/siteforge/siteforge/internal/jobs"
	"github.com/siteforge/siteforge/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	artifactDir := t.TempDir()
	uploadDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orch := jobs.NewOrchestrator(s, builder.NewSiteGenerator(), artifact.NewStore(artifactDir), logger)
	status := jobs.NewStatusService(s)

	r := gin.New()
	RegisterHandlers(r, orch, status, artifactDir, uploadDir)
	return r
}

func minimalFields() map[string]string {
	return map[string]string{
		"keywords":            `["test keyword"]`,
		"googleAccount":       "test@example.com",
		"businessDescription": "This is a test business description",
		"youtubeVideos":       `[]`,
	}
}

func multipartBody(t *testing.T, fields map[string]string, logoNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range logoNames {
		fw, err := w.CreateFormFile("logoImages", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func submit(t *testing.T, r *gin.Engine, fields map[string]string, logoNames ...string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, logoNames...)
	req := httptest.NewRequest(http.MethodPost, "/api/site-builder", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getStatus(r *gin.Engine, jobID string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestSubmit_AcceptedAndCompletes(t *testing.T) {
	r := newTestRouter(t)

	rec := submit(t, r, minimalFields())
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp["message"], "Job accepted")
	jobID, _ := resp["jobId"].(string)
	require.NotEmpty(t, jobID)

	var status map[string]any
	require.Eventually(t, func() bool {
		code, body := getStatus(r, jobID)
		if code.Code != http.StatusOK {
			return false
		}
		status = body
		return body["status"] == "complete" || body["status"] == "error"
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, "complete", status["status"])
	assert.Equal(t, float64(100), status["progress"])
	urls, _ := status["urls"].([]any)
	assert.NotEmpty(t, urls)
	assert.Equal(t, "/jobs/"+jobID+".pdf", status["pdfUrl"])

	// The artifact is published at a stable path derived from the job id.
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+jobID+".pdf", nil)
	artRec := httptest.NewRecorder()
	r.ServeHTTP(artRec, req)
	require.Equal(t, http.StatusOK, artRec.Code)
	assert.True(t, strings.HasPrefix(artRec.Body.String(), "%PDF"))
}

func TestSubmit_WithLogoImages(t *testing.T) {
	r := newTestRouter(t)

	rec := submit(t, r, minimalFields(), "logo1.png", "logo2.png")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantMsg string
	}{
		{
			name:    "no keywords",
			mutate:  func(f map[string]string) { f["keywords"] = `[]` },
			wantMsg: "keyword is required",
		},
		{
			name:    "invalid email",
			mutate:  func(f map[string]string) { f["googleAccount"] = "invalid-email" },
			wantMsg: "Invalid email format",
		},
		{
			name:    "missing business description",
			mutate:  func(f map[string]string) { f["businessDescription"] = "" },
			wantMsg: "Business description is required",
		},
		{
			name:    "invalid business url",
			mutate:  func(f map[string]string) { f["businessUrl"] = "invalid-url" },
			wantMsg: "Invalid business URL format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := minimalFields()
			tt.mutate(fields)

			rec := submit(t, r, fields)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Contains(t, resp["message"], tt.wantMsg)
			assert.NotContains(t, resp, "jobId")
		})
	}
}

func TestSubmit_TooManyLogos(t *testing.T) {
	r := newTestRouter(t)

	names := make([]string, 9)
	for i := range names {
		names[i] = fmt.Sprintf("logo%d.png", i)
	}

	rec := submit(t, r, minimalFields(), names...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/site-builder", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Method not allowed", resp["message"])
}

func TestGetStatus_MalformedID(t *testing.T) {
	r := newTestRouter(t)

	rec, body := getStatus(r, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid job ID", body["message"])
}

func TestGetStatus_UnknownID(t *testing.T) {
	r := newTestRouter(t)

	rec, body := getStatus(r, uuid.New().String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", body["message"])
}

func TestGetStatus_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeArtifact_InvalidAndUnknown(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/jobs/report.txt", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.New().String()+".pdf", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
