package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/anuarbek-t/sociograph/pkg/middleware"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the application error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	default:
		log.WithError(err).Error("Unhandled service error")
		message = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// pageOptions parses pagination options from query parameters.
func pageOptions(r *http.Request) paginate.Options {
	q := r.URL.Query()
	opts := paginate.Options{
		SortBy: q.Get("sort_by"),
		Select: q.Get("select"),
	}
	if page, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		opts.Limit = limit
	}
	return opts
}

// pathID parses the {name} path variable as an ObjectID.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidArgument("invalid %s", name)
	}
	return id, nil
}

// actorID returns the authenticated user's id from the request context.
func actorID(r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
