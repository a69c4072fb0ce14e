package paginate

import (
	"context"
	"fmt"

	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Engine evaluates paginated queries against the database. Population
// targets are resolved through an explicit field-to-collection table, never
// derived from the field name.
type Engine struct {
	db      *mongo.Database
	lookups map[string]string
}

func NewEngine(db *mongo.Database) *Engine {
	return &Engine{
		db: db,
		lookups: map[string]string{
			"sent_by":     "users",
			"received_by": "users",
			"follower_id": "users",
			"followed_id": "users",
			"blocker_id":  "users",
			"blocked_id":  "users",
			"creator_id":  "users",
			"user_id":     "users",
		},
	}
}

// RegisterLookup maps a foreign-key field to the collection it references.
func (e *Engine) RegisterLookup(field, collection string) {
	e.lookups[field] = collection
}

func (e *Engine) lookupTarget(field string) (string, error) {
	target, ok := e.lookups[field]
	if !ok {
		return "", apperrors.InvalidArgument("no lookup target registered for field %q", field)
	}
	return target, nil
}

// Find runs an offset-paginated query over one collection. The total count
// runs as an independent query over the same filter, concurrently with the
// page query, so page and limit never affect totalResults.
func (e *Engine) Find(ctx context.Context, collection string, filter interface{}, opts Options) (*Result, error) {
	opts = opts.normalized()

	proj, err := projectionDoc(opts.Select)
	if err != nil {
		return nil, err
	}

	coll := e.db.Collection(collection)

	var (
		total int64
		docs  []bson.M
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count %s: %v", collection, err)
		}
		return nil
	})
	g.Go(func() error {
		findOpts := options.Find().
			SetSort(sortDoc(opts.SortBy)).
			SetSkip(opts.skip()).
			SetLimit(opts.Limit)
		if proj != nil {
			findOpts.SetProjection(proj)
		}

		cursor, err := coll.Find(gctx, filter, findOpts)
		if err != nil {
			return fmt.Errorf("failed to query %s: %v", collection, err)
		}
		defer cursor.Close(gctx)

		docs = []bson.M{}
		if err := cursor.All(gctx, &docs); err != nil {
			return fmt.Errorf("failed to decode %s page: %v", collection, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range opts.Populate {
		if err := e.populate(ctx, docs, p); err != nil {
			return nil, err
		}
	}

	return &Result{
		Results:      docs,
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   TotalPages(total, opts.Limit),
		TotalResults: total,
	}, nil
}

// populate replaces the foreign-key field on every document with the
// referenced document, or nil when the reference does not resolve.
func (e *Engine) populate(ctx context.Context, docs []bson.M, p Populate) error {
	target, err := e.lookupTarget(p.Field)
	if err != nil {
		return err
	}

	proj, err := projectionDoc(p.Select)
	if err != nil {
		return err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	for _, doc := range docs {
		id, ok := doc[p.Field].(primitive.ObjectID)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	refs := make(map[primitive.ObjectID]bson.M, len(ids))
	if len(ids) > 0 {
		findOpts := options.Find()
		if proj != nil {
			findOpts.SetProjection(proj)
		}
		cursor, err := e.db.Collection(target).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOpts)
		if err != nil {
			return fmt.Errorf("failed to populate %s from %s: %v", p.Field, target, err)
		}
		defer cursor.Close(ctx)

		var found []bson.M
		if err := cursor.All(ctx, &found); err != nil {
			return fmt.Errorf("failed to decode %s references: %v", target, err)
		}
		for _, ref := range found {
			if id, ok := ref["_id"].(primitive.ObjectID); ok {
				refs[id] = ref
			}
		}
	}

	for _, doc := range docs {
		id, ok := doc[p.Field].(primitive.ObjectID)
		if !ok {
			continue
		}
		if ref, found := refs[id]; found {
			doc[p.Field] = ref
		} else {
			doc[p.Field] = nil
		}
	}
	return nil
}
