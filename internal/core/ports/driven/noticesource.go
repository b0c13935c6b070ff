package driven

import (
	"context"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
)

// AgencyRef identifies an agency resolved against the register's
// agency directory.
type AgencyRef struct {
	// Slug is the short identifier used as the agency segment of
	// storage keys (the register's short name when it has one).
	Slug string

	// Name is the agency's full canonical name.
	Name string

	// DocumentsURL is the first page of the agency's notice feed,
	// newest-first.
	DocumentsURL string
}

// NoticeSource fetches notices from the government register.
// Adapters own pagination mechanics, retries and rate limiting; the
// core only sees ordered pages and document bytes.
type NoticeSource interface {
	// ResolveAgency matches a configured agency keyword against the
	// register's directory. Returns domain.ErrUnknownAgency (wrapped)
	// when no agency matches.
	ResolveAgency(ctx context.Context, keyword string) (*AgencyRef, error)

	// ListNotices fetches one page of notices at pageURL. Notices are
	// newest-first within and across pages. nextPage is empty when the
	// feed is exhausted.
	ListNotices(ctx context.Context, pageURL string) (notices []domain.Notice, nextPage string, err error)

	// FetchDocument retrieves a notice's binary document. Returns
	// domain.ErrNotFound (wrapped) when the document is missing and a
	// transport-kind error on network failure.
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}
