package domain

import "strings"

const (
	// IndexFileName is the well-known name of the abstract index blob
	// within the parent folder.
	IndexFileName = "abstracts.json"

	// maxTitleLength is the number of leading characters of a title kept
	// when building a document's storage key.
	maxTitleLength = 30
)

// DocumentKey builds the object-store key for a notice's document:
//
//	<parentFolder>/<agencySlug>/<document_number> - <truncated_title>.pdf
//
// The file name segment is made key-safe by replacing path separators.
func DocumentKey(parentFolder, agencySlug string, n Notice) string {
	name := n.DocumentNumber + " - " + TruncateTitle(n.Title) + ".pdf"
	name = strings.ReplaceAll(name, "/", "_")
	return parentFolder + "/" + agencySlug + "/" + name
}

// IndexKey returns the object-store key of the abstract index blob.
func IndexKey(parentFolder string) string {
	return parentFolder + "/" + IndexFileName
}

// TruncateTitle shortens a title to its leading characters, marking the
// cut with an ellipsis. Titles at or under the limit pass through.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength]) + "..."
}
