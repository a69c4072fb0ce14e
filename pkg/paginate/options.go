package paginate

import (
	"strings"

	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit  = 10
	DefaultSortBy = "created_at"
)

// Populate asks the engine to replace a foreign-key field with the
// referenced document, reduced to the selected fields.
type Populate struct {
	Field  string
	Select string
}

// Options controls one paginated query.
type Options struct {
	Page     int64
	Limit    int64
	SortBy   string // leading "-" sorts descending
	Select   string // space-separated field list, all-inclusion or all-exclusion
	Populate []Populate
}

// Result is the uniform envelope returned by both engines.
type Result struct {
	Results      []bson.M `json:"results"`
	Page         int64    `json:"page"`
	Limit        int64    `json:"limit"`
	TotalPages   int64    `json:"totalPages"`
	TotalResults int64    `json:"totalResults"`
}

func (o Options) normalized() Options {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.SortBy == "" {
		o.SortBy = DefaultSortBy
	}
	return o
}

func (o Options) skip() int64 {
	return (o.Page - 1) * o.Limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

func sortDoc(sortBy string) bson.D {
	field := sortBy
	order := int32(1)
	if strings.HasPrefix(sortBy, "-") {
		field = sortBy[1:]
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// projectionDoc parses a space-separated select list. Fields prefixed with
// "-" are excluded, the rest form an exclusive inclusion set; mixing the two
// modes in one call is a usage error.
func projectionDoc(sel string) (bson.D, error) {
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return nil, nil
	}

	var included, excluded bool
	proj := bson.D{}
	for _, f := range fields {
		if strings.HasPrefix(f, "-") {
			excluded = true
			proj = append(proj, bson.E{Key: f[1:], Value: 0})
		} else {
			included = true
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
	}
	if included && excluded {
		return nil, apperrors.InvalidArgument("select %q mixes included and excluded fields", sel)
	}
	return proj, nil
}
