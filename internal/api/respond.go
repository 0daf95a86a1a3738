package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Champion/internal/broker"
	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CompetitorInput is the wire form of a competitor. Pointers let validation
// tell a missing field from an explicit zero.
type CompetitorInput struct {
	Strength *uint  `json:"strength" validate:"required"`
	Age      *uint  `json:"age" validate:"required"`
	Name     string `json:"name" validate:"max=200"`
}

func toCompetitors(in []CompetitorInput) []ranking.Competitor {
	out := make([]ranking.Competitor, len(in))
	for i, c := range in {
		out[i] = ranking.Competitor{Strength: *c.Strength, Age: *c.Age, Name: c.Name}
	}
	return out
}

// decode reads a JSON body into v and validates its struct tags.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Namespace())
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// writeError maps broker errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, broker.ErrRosterNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, broker.ErrTooManyCompetitors):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pagination reads limit/offset query parameters, ignoring malformed values.
func pagination(r *http.Request) (limit, offset int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
