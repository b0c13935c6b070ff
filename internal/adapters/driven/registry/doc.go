// Package registry implements the NoticeSource port against the
// Federal Register API (https://www.federalregister.gov/api/v1).
//
// The adapter owns everything the core must not care about: agency
// directory resolution, next_page_url pagination, bounded retries on
// transient failures, and proactive rate limiting.
package registry
