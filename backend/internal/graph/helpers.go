package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// recordValue returns the key of record as T, or the zero T when the key
// is missing, null or of another type
func recordValue[T any](record *neo4j.Record, key string) T {
	var zero T
	val, ok := record.Get(key)
	if !ok || val == nil {
		return zero
	}
	if v, ok := val.(T); ok {
		return v
	}
	return zero
}

// recordCount reads an integer column. Cypher integers arrive as int64.
func recordCount(record *neo4j.Record, key string) int {
	return int(recordValue[int64](record, key))
}

// recordNames reads a list of strings such as a run's speaker order
func recordNames(record *neo4j.Record, key string) []string {
	list := recordValue[[]interface{}](record, key)
	names := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names
}

// recordTime reads a datetime() value, or an RFC 3339 string written by
// an older run
func recordTime(record *neo4j.Record, key string) time.Time {
	val, _ := record.Get(key)
	switch t := val.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
