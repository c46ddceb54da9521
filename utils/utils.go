package utils

import (
	"assetflow/models"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func ParseJSONBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to serialize JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func RespondError(w http.ResponseWriter, statusCode int, err error, msg string) {
	res := errorResponse{Error: msg}
	if err != nil {
		res.Kind = string(models.KindOf(err))
	}
	RespondJSON(w, statusCode, res)
}

// RespondAppError writes err with the status code of its taxonomy kind.
func RespondAppError(w http.ResponseWriter, err error) {
	RespondJSON(w, StatusFor(err), errorResponse{
		Error: models.PublicMessage(err),
		Kind:  string(models.KindOf(err)),
	})
}

func StatusFor(err error) int {
	switch models.KindOf(err) {
	case models.AuthenticationErr:
		return http.StatusUnauthorized
	case models.AuthorizationErr:
		return http.StatusForbidden
	case models.ValidationErr, models.PreconditionErr, models.ConflictErr:
		return http.StatusBadRequest
	case models.NotFoundErr:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var validate = validator.New()

// ValidateStruct runs the validate tags of req and returns a validation error naming the failed fields.
func ValidateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return models.NewValidationError("%s", strings.Join(msgs, "; "))
	}
	return models.NewValidationError("invalid input")
}

// QueryParam returns the trimmed query value for key.
func QueryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
