// Package query translates raw, untrusted list parameters into a validated
// store query. Malformed input never errors; it degrades to safe defaults.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSortField is used whenever the requested sort field is not whitelisted.
const DefaultSortField = "createdAt"

// sortable is the whitelist of fields a client may order by
var sortable = map[string]bool{
	"title":     true,
	"artist":    true,
	"album":     true,
	"genre":     true,
	"createdAt": true,
	"updatedAt": true,
}

// Params holds the raw query-string values of a list request
type Params struct {
	Q         string
	Genre     string
	Artist    string
	Album     string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

// ListQuery is a validated store query plus echo-back pagination parameters
type ListQuery struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64

	Page    int
	PerPage int
}

// Build converts raw parameters into a ListQuery. It is pure and never fails:
// every malformed value falls back to its default.
func Build(p Params) ListQuery {
	page := parsePage(p.Page)
	limit := parseLimit(p.Limit)

	sortBy := p.SortBy
	if !sortable[sortBy] {
		sortBy = DefaultSortField
	}
	order := -1
	if p.SortOrder == "asc" {
		order = 1
	}

	filter := bson.M{}
	if genre := strings.TrimSpace(p.Genre); genre != "" {
		filter["genre"] = exactFold(genre)
	}
	if artist := strings.TrimSpace(p.Artist); artist != "" {
		filter["artist"] = exactFold(artist)
	}
	if album := strings.TrimSpace(p.Album); album != "" {
		filter["album"] = exactFold(album)
	}
	if q := strings.TrimSpace(p.Q); q != "" {
		// QuoteMeta keeps user input a literal substring, not a pattern
		contains := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": contains},
			bson.M{"artist": contains},
			bson.M{"album": contains},
			bson.M{"genre": contains},
		}
	}

	return ListQuery{
		Filter:  filter,
		Sort:    bson.D{{Key: sortBy, Value: order}},
		Skip:    int64(page-1) * int64(limit),
		Limit:   int64(limit),
		Page:    page,
		PerPage: limit,
	}
}

// TotalPages computes the pagination envelope's page count, minimum 0
func (q ListQuery) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

// exactFold matches the full string case-insensitively
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultPage
	}
	return n
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
