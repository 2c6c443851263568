package pdfoutline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// DefaultRankLimit is the maximum number of sections a ranking returns.
const DefaultRankLimit = 10

// RankedSection is one entry of a relevance ranking.
type RankedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// Embedder maps texts to fixed-length vectors. The same text embedded by
// the same embedder always yields the same vector.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Ranker ranks outline sections across documents against a query.
type Ranker interface {
	// Rank returns the most relevant sections, best first, with ranks
	// starting at 1. Returns an empty list when no document has headings.
	Rank(ctx context.Context, docs []NamedResult, query string) ([]RankedSection, error)
}

// Persona is the persona description driving a ranking run. Both fields
// are kept as raw JSON so they can be copied verbatim into the report.
type Persona struct {
	Persona     json.RawMessage `json:"persona"`
	JobToBeDone json.RawMessage `json:"job_to_be_done"`
}

// Validate returns an error if either field is missing.
func (p *Persona) Validate() error {
	if isEmptyJSON(p.Persona) {
		return Errorf(EINVALID, "persona required")
	}
	if isEmptyJSON(p.JobToBeDone) {
		return Errorf(EINVALID, "job to be done required")
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// RankingMetadata describes the inputs of a ranking run.
type RankingMetadata struct {
	InputDocuments      []string        `json:"input_documents"`
	Persona             json.RawMessage `json:"persona"`
	JobToBeDone         json.RawMessage `json:"job_to_be_done"`
	ProcessingTimestamp string          `json:"processing_timestamp"`
}

// SubSection is a refined excerpt of a ranked section.
type SubSection struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// RankingReport is the ranking artifact written at the end of a run.
type RankingReport struct {
	Metadata           RankingMetadata `json:"metadata"`
	ExtractedSections  []RankedSection `json:"extracted_sections"`
	SubSectionAnalysis []SubSection    `json:"sub_section_analysis"`
}

// NewRankingReport assembles a report. Nil slices are replaced with empty
// ones so they encode as [] rather than null.
func NewRankingReport(docs []string, persona *Persona, sections []RankedSection, now time.Time) *RankingReport {
	if docs == nil {
		docs = []string{}
	}
	if sections == nil {
		sections = []RankedSection{}
	}
	return &RankingReport{
		Metadata: RankingMetadata{
			InputDocuments:      docs,
			Persona:             persona.Persona,
			JobToBeDone:         persona.JobToBeDone,
			ProcessingTimestamp: FormatTimestamp(now),
		},
		ExtractedSections:  sections,
		SubSectionAnalysis: []SubSection{},
	}
}

// FormatTimestamp formats t as ISO-8601 in UTC with a trailing "Z".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}
