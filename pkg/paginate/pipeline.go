package paginate

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// Pipeline is an immutable aggregation stage sequence. Append copies, so the
// count and results branches derived from one base never share state.
type Pipeline []bson.D

// Append returns a new pipeline with the stages added. The receiver is left
// untouched and the returned slice has its own backing array.
func (p Pipeline) Append(stages ...bson.D) Pipeline {
	next := make(Pipeline, len(p), len(p)+len(stages))
	copy(next, p)
	return append(next, stages...)
}

// Match builds a $match stage.
func Match(filter interface{}) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// Sort builds a $sort stage.
func Sort(doc interface{}) bson.D {
	return bson.D{{Key: "$sort", Value: doc}}
}

// Aggregate runs two branches derived from the base pipeline concurrently:
// a $count branch for totalResults and a sort/skip/limit branch for the page,
// the latter extended with an optional projection and one $lookup/$unwind
// pair per populate entry. Unwind preserves empty joins so an unresolvable
// reference surfaces as an absent field rather than dropping the row.
func (e *Engine) Aggregate(ctx context.Context, collection string, base Pipeline, opts Options) (*Result, error) {
	opts = opts.normalized()

	proj, err := projectionDoc(opts.Select)
	if err != nil {
		return nil, err
	}

	countPipe := base.Append(bson.D{{Key: "$count", Value: "totalResults"}})

	pageStages := []bson.D{
		{{Key: "$sort", Value: sortDoc(opts.SortBy)}},
		{{Key: "$skip", Value: opts.skip()}},
		{{Key: "$limit", Value: opts.Limit}},
	}
	if proj != nil {
		pageStages = append(pageStages, bson.D{{Key: "$project", Value: proj}})
	}
	for _, p := range opts.Populate {
		stages, err := e.lookupStages(p)
		if err != nil {
			return nil, err
		}
		pageStages = append(pageStages, stages...)
	}
	resultsPipe := base.Append(pageStages...)

	coll := e.db.Collection(collection)

	var (
		total int64
		docs  []bson.M
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := coll.Aggregate(gctx, countPipe)
		if err != nil {
			return fmt.Errorf("failed to run %s count pipeline: %v", collection, err)
		}
		defer cursor.Close(gctx)

		var counts []struct {
			TotalResults int64 `bson:"totalResults"`
		}
		if err := cursor.All(gctx, &counts); err != nil {
			return fmt.Errorf("failed to decode %s count: %v", collection, err)
		}
		if len(counts) > 0 {
			total = counts[0].TotalResults
		}
		return nil
	})
	g.Go(func() error {
		cursor, err := coll.Aggregate(gctx, resultsPipe)
		if err != nil {
			return fmt.Errorf("failed to run %s results pipeline: %v", collection, err)
		}
		defer cursor.Close(gctx)

		docs = []bson.M{}
		if err := cursor.All(gctx, &docs); err != nil {
			return fmt.Errorf("failed to decode %s results: %v", collection, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Results:      docs,
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   TotalPages(total, opts.Limit),
		TotalResults: total,
	}, nil
}

// lookupStages builds the $lookup/$unwind pair for one populate entry. The
// join matches the field's value against the target collection's _id and
// applies the entry's select list inside the lookup sub-pipeline.
func (e *Engine) lookupStages(p Populate) ([]bson.D, error) {
	target, err := e.lookupTarget(p.Field)
	if err != nil {
		return nil, err
	}

	proj, err := projectionDoc(p.Select)
	if err != nil {
		return nil, err
	}

	sub := []bson.D{
		{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$fk"}}}}},
	}
	if proj != nil {
		sub = append(sub, bson.D{{Key: "$project", Value: proj}})
	}

	lookup := bson.D{{Key: "$lookup", Value: bson.M{
		"from":     target,
		"let":      bson.M{"fk": "$" + p.Field},
		"pipeline": sub,
		"as":       p.Field,
	}}}
	unwind := bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       "$" + p.Field,
		"preserveNullAndEmptyArrays": true,
	}}}
	return []bson.D{lookup, unwind}, nil
}
