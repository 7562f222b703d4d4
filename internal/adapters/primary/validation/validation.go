package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
)

// MaxBodyBytes caps the size of a decoded request body.
const MaxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs that check their own fields.
type Validatable interface {
	Validate() error
}

// DecodeAndValidate decodes the JSON request body into T and, when *T
// implements Validatable, runs its Validate method. Malformed JSON and
// mistyped fields are reported as *errors.ValidationErrors.
func DecodeAndValidate[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	var req T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return nil, decodeError(err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	return &req, nil
}

// decodeError converts a json decoding failure into field-level errors
func decodeError(err error) error {
	errs := apperrors.NewValidationErrors()

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		errs.Add(typeErr.Field, "Must be a "+jsonTypeName(typeErr.Type.Kind().String()))
	case errors.As(err, &typeErr):
		errs.Add("body", "Must be a JSON object")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		errs.Add("body", "Invalid JSON")
	case errors.Is(err, io.EOF):
		errs.Add("body", "Request body is required")
	case errors.As(err, &maxBytesErr):
		errs.Add("body", "Request body is too large")
	default:
		return apperrors.NewBadRequestError(err, "Invalid request body")
	}

	return errs
}

// expectEOF rejects anything but whitespace after the first JSON value.
func expectEOF(dec *json.Decoder) error {
	err := dec.Decode(&struct{}{})
	if errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	errs := apperrors.NewValidationErrors()
	if errors.As(err, &maxBytesErr) {
		errs.Add("body", "Request body is too large")
	} else {
		errs.Add("body", "Invalid JSON")
	}
	return errs
}

func jsonTypeName(kind string) string {
	switch kind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "list"
	case "map", "struct":
		return "object"
	default:
		return "number"
	}
}

// ErrIDOutOfRange is returned by ParseIDParam for an integer that does
// not fit in an int64. No stored record can carry such an id.
var ErrIDOutOfRange = errors.New("id out of range")

// ParseIDParam parses the named chi URL parameter as an int64. A value
// that is not an integer is a validation error on that parameter.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrIDOutOfRange
	}
	if err != nil {
		errs := apperrors.NewValidationErrors()
		errs.Add(name, "Must be an integer")
		return 0, errs
	}

	return id, nil
}
