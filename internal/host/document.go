package host

import (
	"strings"
	"sync"

	"github.com/inkstone-labs/inklist/internal/buffer"
)

// Document is an open text document. Content is replaced wholesale on each
// change, so a handler holding a snapshot keeps reading consistent lines
// while the store moves on.
type Document struct {
	URI        string
	LanguageID string
	Version    int
	Content    *buffer.Buffer
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds or replaces a document.
func (s *DocumentStore) Open(uri, languageID, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[uri] = &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Content:    buffer.FromText(strings.TrimSuffix(text, "\n")),
	}
}

// Update replaces a document's content, keeping its language. Unknown
// documents are ignored.
func (s *DocumentStore) Update(uri, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.docs[uri]
	if !ok {
		return
	}
	s.docs[uri] = &Document{
		URI:        uri,
		LanguageID: old.LanguageID,
		Version:    version,
		Content:    buffer.FromText(strings.TrimSuffix(text, "\n")),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	return doc, ok
}

// URIToPath converts a file:// URI to a filesystem path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if strings.HasPrefix(uri, prefix) {
		return uri[len(prefix):]
	}
	return uri
}
