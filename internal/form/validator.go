// Package form validates raw site-builder submissions into typed form data.
package form

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/siteforge/siteforge/internal/model"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField  Kind = "missing_required_field"
	KindInvalidFormat Kind = "invalid_format"
)

// ValidationError carries a user-facing reason for rejecting a submission.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missing(msg string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Message: msg}
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Kind: KindInvalidFormat, Message: msg}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks raw string-encoded fields and produces a typed
// FormSubmission. Checks run in a fixed order and the first violated
// rule is reported; no side effects.
func Validate(fields map[string]string) (*model.FormSubmission, *ValidationError) {
	var keywords []string
	if err := json.Unmarshal([]byte(fields["keywords"]), &keywords); err != nil {
		return nil, invalid("Invalid keywords format")
	}

	hasKeyword := false
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return nil, missing("At least one keyword is required")
	}

	email := fields["googleAccount"]
	if email == "" {
		return nil, missing("Google account email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid("Invalid email format for Google account")
	}

	if strings.TrimSpace(fields["businessDescription"]) == "" {
		return nil, missing("Business description is required")
	}

	if v := fields["businessUrl"]; v != "" && !isAbsoluteURL(v) {
		return nil, invalid("Invalid business URL format")
	}
	if v := fields["googleBusinessProfileUrl"]; v != "" && !isAbsoluteURL(v) {
		return nil, invalid("Invalid Google Business Profile URL format")
	}

	var youtubeVideos []string
	if v := fields["youtubeVideos"]; v != "" {
		if err := json.Unmarshal([]byte(v), &youtubeVideos); err != nil {
			return nil, invalid("Invalid YouTube URLs format")
		}
		for _, u := range youtubeVideos {
			if u != "" && !isYouTubeURL(u) {
				return nil, invalid(fmt.Sprintf("Invalid YouTube URL: %s", u))
			}
		}
	}

	generateBio := fields["generateAuthorBio"] == "true"
	if generateBio && strings.TrimSpace(fields["authorName"]) == "" {
		return nil, missing("Author name is required")
	}

	var silo *model.SiloStructure
	if v := fields["siloStructure"]; v != "" {
		var raw struct {
			Enabled    *bool     `json:"enabled"`
			Categories *[]string `json:"categories"`
		}
		if err := json.Unmarshal([]byte(v), &raw); err != nil || raw.Enabled == nil || raw.Categories == nil {
			return nil, invalid("Invalid siloStructure format")
		}
		silo = &model.SiloStructure{Enabled: *raw.Enabled, Categories: *raw.Categories}
	}

	var scheduling *model.ContentScheduling
	if v := fields["contentScheduling"]; v != "" {
		var raw struct {
			Enabled   *bool                  `json:"enabled"`
			Schedules *[]model.ScheduleEntry `json:"schedules"`
		}
		if err := json.Unmarshal([]byte(v), &raw); err != nil || raw.Enabled == nil || raw.Schedules == nil {
			return nil, invalid("Invalid contentScheduling format")
		}
		scheduling = &model.ContentScheduling{Enabled: *raw.Enabled, Schedules: *raw.Schedules}
	}

	var pbn *model.PBNSettings
	if v := fields["pbnSettings"]; v != "" {
		var raw struct {
			Enabled     *bool     `json:"enabled"`
			TargetURLs  *[]string `json:"targetUrls"`
			AnchorTexts *[]string `json:"anchorTexts"`
		}
		if err := json.Unmarshal([]byte(v), &raw); err != nil || raw.Enabled == nil || raw.TargetURLs == nil || raw.AnchorTexts == nil {
			return nil, invalid("Invalid pbnSettings format")
		}
		pbn = &model.PBNSettings{Enabled: *raw.Enabled, TargetURLs: *raw.TargetURLs, AnchorTexts: *raw.AnchorTexts}
	}

	platform := model.CloudPlatform(fields["cloudPlatform"])
	switch platform {
	case model.PlatformGoogle, model.PlatformAWS, model.PlatformAzure:
	default:
		platform = model.PlatformGoogle
	}

	return &model.FormSubmission{
		Keywords:                 keywords,
		GoogleAccount:            email,
		BusinessDescription:      fields["businessDescription"],
		NicheUtility:             fields["nicheUtility"],
		BusinessURL:              fields["businessUrl"],
		YouTubeVideos:            youtubeVideos,
		GoogleBusinessProfileURL: fields["googleBusinessProfileUrl"],
		CustomHTML:               fields["customHtml"],
		AuthorName:               fields["authorName"],
		AuthorExpertise:          fields["authorExpertise"],
		GenerateAuthorBio:        generateBio,
		SiloStructure:            silo,
		ContentScheduling:        scheduling,
		PBNSettings:              pbn,
		CloudPlatform:            platform,
	}, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isYouTubeURL(raw string) bool {
	return strings.Contains(raw, "youtube.com/") || strings.Contains(raw, "youtu.be/")
}
