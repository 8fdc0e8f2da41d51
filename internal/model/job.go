package model

import "time"

// JobStatus represents the current state of a site-build job.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusInProgress JobStatus = "in_progress"
	StatusComplete   JobStatus = "complete"
	StatusError      JobStatus = "error"
)

// Terminal reports whether no further transition can occur.
func (s JobStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Job is the persisted record tracking one site-build request.
// SiteURLs, PDFURL and CloudResources are set only on complete;
// Error is set only on error.
type Job struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	Status         JobStatus      `gorm:"index;size:20;default:'pending'" json:"status"`
	Progress       int            `gorm:"default:0" json:"progress"`
	Fields         JobFields      `gorm:"serializer:json" json:"fields"`
	SiteURLs       []string       `gorm:"serializer:json" json:"siteUrls,omitempty"`
	PDFURL         string         `gorm:"size:255" json:"pdfUrl,omitempty"`
	CloudResources map[string]any `gorm:"serializer:json" json:"cloudResources,omitempty"`
	Error          string         `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// JobFields is the submission snapshot stored with a job. Uploaded
// logo file paths are stripped before storage.
type JobFields struct {
	Keywords                 []string           `json:"keywords"`
	GoogleAccount            string             `json:"googleAccount"`
	BusinessDescription      string             `json:"businessDescription"`
	NicheUtility             string             `json:"nicheUtility,omitempty"`
	BusinessURL              string             `json:"businessUrl,omitempty"`
	YouTubeVideos            []string           `json:"youtubeVideos,omitempty"`
	GoogleBusinessProfileURL string             `json:"googleBusinessProfileUrl,omitempty"`
	CustomHTML               string             `json:"customHtml,omitempty"`
	AuthorName               string             `json:"authorName,omitempty"`
	AuthorExpertise          string             `json:"authorExpertise,omitempty"`
	GenerateAuthorBio        bool               `json:"generateAuthorBio,omitempty"`
	SiloStructure            *SiloStructure     `json:"siloStructure,omitempty"`
	ContentScheduling        *ContentScheduling `json:"contentScheduling,omitempty"`
	PBNSettings              *PBNSettings       `json:"pbnSettings,omitempty"`
	CloudPlatform            CloudPlatform      `json:"cloudPlatform"`
}
