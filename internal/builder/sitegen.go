package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/siteforge/siteforge/internal/model"
)

// SiteGenerator is the default Builder. It derives one site page per
// keyword on the target cloud platform, optional category pages when a
// silo structure is enabled, and renders the URL list into a PDF.
type SiteGenerator struct{}

func NewSiteGenerator() *SiteGenerator {
	return &SiteGenerator{}
}

func (g *SiteGenerator) Build(ctx context.Context, sub *model.FormSubmission) (*Result, error) {
	urls := g.siteURLs(sub)
	if len(urls) == 0 {
		return nil, errors.New("no keywords to build pages from")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := renderURLListPDF(sub, urls)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	siteID := uuid.New().String()
	return &Result{
		SiteURLs: urls,
		PDFBytes: pdfBytes,
		CloudResources: map[string]any{
			"platform": string(sub.CloudPlatform),
			"siteId":   siteID,
			"pages":    len(urls),
			"resources": []string{
				fmt.Sprintf("site/%s", siteID),
				fmt.Sprintf("bucket/%s-assets", siteID),
			},
		},
	}, nil
}

func (g *SiteGenerator) siteURLs(sub *model.FormSubmission) []string {
	var urls []string
	for _, kw := range sub.Keywords {
		slug := slugify(kw)
		if slug == "" {
			continue
		}
		urls = append(urls, pageURL(sub.CloudPlatform, slug))
	}
	if sub.SiloStructure != nil && sub.SiloStructure.Enabled {
		for _, cat := range sub.SiloStructure.Categories {
			slug := slugify(cat)
			if slug == "" {
				continue
			}
			urls = append(urls, pageURL(sub.CloudPlatform, slug))
		}
	}
	return urls
}

func pageURL(platform model.CloudPlatform, slug string) string {
	switch platform {
	case model.PlatformAWS:
		return fmt.Sprintf("http://%s.s3-website-us-east-1.amazonaws.com", slug)
	case model.PlatformAzure:
		return fmt.Sprintf("https://%s.z13.web.core.windows.net", slug)
	default:
		return fmt.Sprintf("https://sites.google.com/view/%s", slug)
	}
}

func renderURLListPDF(sub *model.FormSubmission, urls []string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Generated Site URLs")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Account: %s", sub.GoogleAccount))
	pdf.Ln(10)

	for _, u := range urls {
		pdf.Cell(0, 7, u)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func slugify(s string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
