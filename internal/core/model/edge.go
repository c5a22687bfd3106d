package model

// Agreement polarity labels produced by the stance classifier.
const (
	Agree    int64 = 1
	Disagree int64 = -1
)

// InteractionEdge links two communities that talked about the same keyword.
type InteractionEdge struct {
	SourceID  string  `json:"source_id"`
	TargetID  string  `json:"target_id"`
	Agreement int64   `json:"agreement"`
	EdgeBet   float64 `json:"edge_bet"`
}
