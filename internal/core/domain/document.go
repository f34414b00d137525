package domain

// DocumentMetadata describes one discovered documentation file.
// Filename and Path are fixed at discovery time; RelevanceScore is
// assigned exactly once, by the file-level relevance filter.
type DocumentMetadata struct {
	Filename       string   `json:"filename"`
	Path           string   `json:"path"`
	Title          string   `json:"title,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// RelevantContent is the per-file result of content filtering.
// Content may be empty, meaning nothing in the file was relevant.
// That is distinct from a read error, which substitutes an inline marker.
type RelevantContent struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

// Verdict is the oracle's include/exclude decision for one file in a
// batched relevance judgment. FileIndex is 1-based and refers to the
// discovery order of the submitted file summaries.
type Verdict struct {
	FileIndex int    `json:"file_index"`
	Include   bool   `json:"include"`
	Reasoning string `json:"reasoning"`
}

// FilterOutcome reports which branch the file-level filter took, so
// callers and tests can distinguish a real judgment from a fallback.
type FilterOutcome string

const (
	// OutcomeShortCircuit means the candidate set was small enough to
	// keep without consulting the oracle.
	OutcomeShortCircuit FilterOutcome = "short_circuit"
	// OutcomeJudged means the oracle's verdict list was applied.
	OutcomeJudged FilterOutcome = "judged"
	// OutcomeFailOpen means the oracle failed or returned an unusable
	// verdict list and the full candidate set was kept unfiltered.
	OutcomeFailOpen FilterOutcome = "fail_open"
)
