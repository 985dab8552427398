package domain

// ImportResult summarizes one import run.
type ImportResult struct {
	Sources  int           `json:"sources"`
	Parsed   int           `json:"parsed"`
	Imported int           `json:"imported"`
	Rejected []RejectedRow `json:"rejected"`
}

type RejectedRow struct {
	Source string `json:"source"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
