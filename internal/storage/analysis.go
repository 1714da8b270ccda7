package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"blog_analyzer/pkg"
)

// AnalysisRepository stores completed analyses and searches them by topic or keyword
type AnalysisRepository interface {
	Insert(ctx context.Context, record pkg.AnalysisRecord) error
	SearchByTopicOrKeyword(ctx context.Context, term string) ([]pkg.AnalysisRecord, error)
}

// MemoryAnalysisRepository keeps analyses in process, for development without Postgres
type MemoryAnalysisRepository struct {
	mu      sync.RWMutex
	records []pkg.AnalysisRecord
}

// NewMemoryAnalysisRepository creates an empty repository
func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{}
}

// Insert appends the record. A second record for the same session is ignored.
func (m *MemoryAnalysisRepository) Insert(ctx context.Context, record pkg.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.SessionID == record.SessionID {
			return nil
		}
	}
	m.records = append(m.records, cloneRecord(record))
	return nil
}

// SearchByTopicOrKeyword returns records whose topics or keywords equal term, ignoring case
func (m *MemoryAnalysisRepository) SearchByTopicOrKeyword(ctx context.Context, term string) ([]pkg.AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := []pkg.AnalysisRecord{}
	for _, r := range m.records {
		if containsFold(r.Topics, term) || containsFold(r.Keywords, term) {
			results = append(results, cloneRecord(r))
		}
	}
	return results, nil
}

func containsFold(values []string, term string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.EqualFold(v, term)
	})
}

func cloneRecord(r pkg.AnalysisRecord) pkg.AnalysisRecord {
	r.Topics = slices.Clone(r.Topics)
	r.Keywords = slices.Clone(r.Keywords)
	return r
}
