package model

// QueryTarget selects which population the query tester searches.
type QueryTarget string

const (
	QueryAll        QueryTarget = "all"
	QueryPeople     QueryTarget = "people"
	QueryProperties QueryTarget = "properties"
)

// Next cycles through the targets, for the console's target selector.
func (t QueryTarget) Next() QueryTarget {
	switch t {
	case QueryAll:
		return QueryPeople
	case QueryPeople:
		return QueryProperties
	default:
		return QueryAll
	}
}
