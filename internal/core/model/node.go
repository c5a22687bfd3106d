package model

// CommunityNode is one detected community drawn in a keyword network.
type CommunityNode struct {
	ID         string  `json:"id"`
	Modularity int64   `json:"modularity"`
	TopUser    string  `json:"top_user"`
	Weight     float64 `json:"weight"`
	PageRank   float64 `json:"pagerank"`
	Bloc       int     `json:"bloc"`
}
