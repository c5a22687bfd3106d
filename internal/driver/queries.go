package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Community(keyword);",
	"CREATE INDEX ON :Community(modularity);",
}

// Communities are (:Community {keyword, modularity}) nodes; each classified
// interaction between two of them is an INTERACTS relationship carrying the
// row ordinal of the exported edge table.
const (
	KeywordsQuery = `
		MATCH (s:Community)-[:INTERACTS]->(:Community)
		RETURN DISTINCT s.keyword AS keyword
		ORDER BY keyword
	`

	CommunityEdgesQuery = `
		MATCH (s:Community {keyword: $keyword})-[e:INTERACTS]->(t:Community {keyword: $keyword})
		RETURN s.modularity AS source,
			t.modularity AS target,
			e.agreement AS agreement,
			e.edge_bet AS edge_bet,
			e.username AS username
		ORDER BY e.row
	`

	SaveInteractionsQuery = `
		UNWIND $rows AS row
		MERGE (s:Community {keyword: $keyword, modularity: row.source})
		MERGE (t:Community {keyword: $keyword, modularity: row.target})
		CREATE (s)-[:INTERACTS {
			row: row.row,
			agreement: row.agreement,
			edge_bet: row.edge_bet,
			username: row.username
		}]->(t)
	`

	DeleteKeywordQuery = `
		MATCH (c:Community {keyword: $keyword})
		DETACH DELETE c
	`
)
