package domain

// Notice represents a single published regulatory document in an
// agency's feed. The pair (Agency, DocumentNumber) is globally unique
// and immutable once observed.
type Notice struct {
	// Agency is the configured identifier of the issuing agency.
	Agency string

	// DocumentNumber is the register-assigned identifier, stable across
	// time. It is the natural primary key within an agency's stream.
	DocumentNumber string

	// Title is the human-readable title. A truncated form is used when
	// building storage keys.
	Title string

	// PublicationDate is the publication date as reported by the
	// register (YYYY-MM-DD). Kept as a string so the persisted index
	// round-trips byte-for-byte.
	PublicationDate string

	// DocumentURL locates the binary document (PDF).
	DocumentURL string

	// Abstract is the free-text summary retained in the index.
	Abstract string
}

// AbstractEntry is the durable record derived from a Notice after its
// document has been written to the object store. Entries are append-only
// per agency and never mutated once created.
type AbstractEntry struct {
	DocumentNumber  string `json:"document_number"`
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"`
	Abstract        string `json:"abstract"`
	StorageKey      string `json:"storage_key"`
}

// EntryFromNotice builds the index entry for a notice stored at key.
func EntryFromNotice(n Notice, storageKey string) AbstractEntry {
	return AbstractEntry{
		DocumentNumber:  n.DocumentNumber,
		Title:           n.Title,
		PublicationDate: n.PublicationDate,
		Abstract:        n.Abstract,
		StorageKey:      storageKey,
	}
}

// SyncMode selects the traversal strategy for an agency's notice stream.
type SyncMode int

const (
	// ModeIncremental stops traversal at the first already-indexed notice.
	ModeIncremental SyncMode = iota

	// ModeFull visits every notice, skipping only re-storage of known ones.
	ModeFull
)

// String returns the mode name for logs and summaries.
func (m SyncMode) String() string {
	switch m {
	case ModeFull:
		return "full"
	default:
		return "incremental"
	}
}
