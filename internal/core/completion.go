package core

import (
	"slices"

	"blog_analyzer/pkg"
)

// MissingFields lists the required result fields that are not present yet
func MissingFields(f Fields) []string {
	var missing []string
	if f.Topics == nil {
		missing = append(missing, "topics")
	}
	if !f.Sentiment.Valid() {
		missing = append(missing, "sentiment")
	}
	if f.Summary == "" {
		missing = append(missing, "summary")
	}
	if f.Keywords == nil {
		missing = append(missing, "keywords")
	}
	return missing
}

// IsComplete reports whether a snapshot is terminal with every required field present.
// Only complete snapshots are persisted.
func IsComplete(s *Snapshot) bool {
	return s != nil && s.Step == StepTerminal && len(MissingFields(s.Fields)) == 0
}

// Result converts the fields into the API analysis result
func (s *Snapshot) Result() *pkg.AnalysisResult {
	var title *string
	if s.Fields.Title != "" {
		t := s.Fields.Title
		title = &t
	}
	return &pkg.AnalysisResult{
		Title:     title,
		Topics:    slices.Clone(s.Fields.Topics),
		Sentiment: s.Fields.Sentiment,
		Summary:   s.Fields.Summary,
		Keywords:  slices.Clone(s.Fields.Keywords),
	}
}

// Record converts the snapshot into the persisted analysis row
func (s *Snapshot) Record() pkg.AnalysisRecord {
	return pkg.AnalysisRecord{
		SessionID: s.SessionID,
		Title:     s.Fields.Title,
		Topics:    slices.Clone(s.Fields.Topics),
		Sentiment: s.Fields.Sentiment,
		Summary:   s.Fields.Summary,
		Keywords:  slices.Clone(s.Fields.Keywords),
	}
}
