package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driven"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// DefaultBaseURL is the public Federal Register API endpoint.
const DefaultBaseURL = "https://www.federalregister.gov"

// agenciesPath lists the register's full agency directory.
const agenciesPath = "/api/v1/agencies"

// Ensure Source implements the interface.
var _ driven.NoticeSource = (*Source)(nil)

// Config holds the register adapter configuration.
type Config struct {
	// BaseURL is the register's root URL; DefaultBaseURL when empty.
	BaseURL string

	// RateLimit throttles outgoing requests.
	RateLimit RateLimitConfig
}

// Source implements driven.NoticeSource against the Federal Register API.
type Source struct {
	client  *Client
	baseURL string

	// directory caches the agency listing for the run's lifetime.
	directory []apiAgency
}

// NewSource creates a notice source for the register at cfg.BaseURL.
func NewSource(cfg Config) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		client:  NewClient(cfg.RateLimit),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// apiAgency is one entry of the register's agency directory.
type apiAgency struct {
	Name              string `json:"name"`
	ShortName         string `json:"short_name"`
	RecentArticlesURL string `json:"recent_articles_url"`
}

// slug returns the identifier used in storage keys: the short name when
// the register has one, the full name otherwise.
func (a apiAgency) slug() string {
	if a.ShortName != "" {
		return a.ShortName
	}
	return a.Name
}

// apiDocument is one result of a documents page.
type apiDocument struct {
	DocumentNumber  string `json:"document_number"`
	Title           string `json:"title"`
	Abstract        string `json:"abstract"`
	PublicationDate string `json:"publication_date"`
	PDFURL          string `json:"pdf_url"`
}

// documentsPage is one page of an agency's notice feed.
type documentsPage struct {
	Results     []apiDocument `json:"results"`
	NextPageURL string        `json:"next_page_url"`
}

// ResolveAgency matches keyword against the directory's short names and
// full names, case-insensitively. The directory is fetched once and
// cached for the source's lifetime.
func (s *Source) ResolveAgency(ctx context.Context, keyword string) (*driven.AgencyRef, error) {
	if s.directory == nil {
		var dir []apiAgency
		if err := s.client.getJSON(ctx, s.baseURL+agenciesPath, &dir); err != nil {
			return nil, fmt.Errorf("fetch agency directory: %w", err)
		}
		s.directory = dir
		logger.Debug("Loaded agency directory: %d agencies", len(dir))
	}

	for _, a := range s.directory {
		if strings.EqualFold(a.slug(), keyword) || strings.EqualFold(a.Name, keyword) {
			return &driven.AgencyRef{
				Slug:         a.slug(),
				Name:         a.Name,
				DocumentsURL: a.RecentArticlesURL,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: no register agency matches %q", domain.ErrUnknownAgency, keyword)
}

// ListNotices fetches one page of an agency's feed. The register yields
// documents newest-first and chains pages via next_page_url.
func (s *Source) ListNotices(ctx context.Context, pageURL string) ([]domain.Notice, string, error) {
	var page documentsPage
	if err := s.client.getJSON(ctx, pageURL, &page); err != nil {
		return nil, "", err
	}

	notices := make([]domain.Notice, 0, len(page.Results))
	for _, doc := range page.Results {
		notices = append(notices, domain.Notice{
			DocumentNumber:  doc.DocumentNumber,
			Title:           doc.Title,
			PublicationDate: doc.PublicationDate,
			DocumentURL:     doc.PDFURL,
			Abstract:        doc.Abstract,
		})
	}

	return notices, page.NextPageURL, nil
}

// FetchDocument retrieves a notice's PDF bytes.
func (s *Source) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	data, err := s.client.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return data, nil
}
