package model

// CloudPlatform selects where the generated site is provisioned.
type CloudPlatform string

const (
	PlatformGoogle CloudPlatform = "google"
	PlatformAWS    CloudPlatform = "aws"
	PlatformAzure  CloudPlatform = "azure"
)

// SiloStructure groups generated pages into keyword categories.
type SiloStructure struct {
	Enabled    bool     `json:"enabled"`
	Categories []string `json:"categories"`
}

// ScheduleEntry is one planned content publication.
type ScheduleEntry struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Publish bool   `json:"publish"`
}

// ContentScheduling holds the publication calendar for generated content.
type ContentScheduling struct {
	Enabled   bool            `json:"enabled"`
	Schedules []ScheduleEntry `json:"schedules"`
}

// PBNSettings configures private-link-network cross linking.
type PBNSettings struct {
	Enabled     bool     `json:"enabled"`
	TargetURLs  []string `json:"targetUrls"`
	AnchorTexts []string `json:"anchorTexts"`
}

// FormSubmission is the validated, typed representation of a submitted
// build form. It is constructed once by the validator and consumed once
// by the orchestrator; it is not persisted in full.
type FormSubmission struct {
	Keywords                 []string
	GoogleAccount            string
	BusinessDescription      string
	NicheUtility             string
	BusinessURL              string
	YouTubeVideos            []string
	GoogleBusinessProfileURL string
	CustomHTML               string
	LogoImagePaths           []string
	AuthorName               string
	AuthorExpertise          string
	GenerateAuthorBio        bool
	SiloStructure            *SiloStructure
	ContentScheduling        *ContentScheduling
	PBNSettings              *PBNSettings
	CloudPlatform            CloudPlatform
}

// Fields returns the snapshot stored on the job record. Uploaded logo
// paths are local temp files and are stripped before storage.
func (s *FormSubmission) Fields() JobFields {
	return JobFields{
		Keywords:                 s.Keywords,
		GoogleAccount:            s.GoogleAccount,
		BusinessDescription:      s.BusinessDescription,
		NicheUtility:             s.NicheUtility,
		BusinessURL:              s.BusinessURL,
		YouTubeVideos:            s.YouTubeVideos,
		GoogleBusinessProfileURL: s.GoogleBusinessProfileURL,
		CustomHTML:               s.CustomHTML,
		AuthorName:               s.AuthorName,
		AuthorExpertise:          s.AuthorExpertise,
		GenerateAuthorBio:        s.GenerateAuthorBio,
		SiloStructure:            s.SiloStructure,
		ContentScheduling:        s.ContentScheduling,
		PBNSettings:              s.PBNSettings,
		CloudPlatform:            s.CloudPlatform,
	}
}
