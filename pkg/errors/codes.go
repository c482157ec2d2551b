package errors

import "net/http"

// Kind classifies a failure into one of the error categories the
// repository surface is allowed to produce.
type Kind string

func (k Kind) String() string {
	return string(k)
}

const (
	// KindInvalidArgument marks a caller mistake detected before any store
	// interaction: a required argument is missing, or a filter value is
	// outside its domain (e.g. a non-positive price).
	KindInvalidArgument Kind = "INVALID_ARGUMENT"

	// KindInvalidEntity marks an entity that failed field validation or a
	// persistence-state precondition (identifier set when it must be unset,
	// unset when required, or no matching row for update/delete).
	KindInvalidEntity Kind = "INVALID_ENTITY"

	// KindNotFound marks an update or delete that matched no stored row.
	// It is a sub-kind of entity validity: IsInvalidEntity reports true for
	// it as well.
	KindNotFound Kind = "NOT_FOUND"

	// KindStoreFault marks a failure of the underlying data store
	// (connectivity, constraint violation, I/O), an infrastructure
	// problem rather than a caller mistake.
	KindStoreFault Kind = "STORE_FAULT"

	// KindInternal marks failures outside the repository taxonomy, such as
	// configuration or startup errors.
	KindInternal Kind = "INTERNAL"

	// KindUnknown is returned by GetKind when no *AppError is present in
	// the chain.
	KindUnknown Kind = "UNKNOWN"
)

// KindHTTPStatus maps error kinds to the HTTP status codes the handlers
// respond with.
var KindHTTPStatus = map[Kind]int{
	KindInvalidArgument: http.StatusBadRequest,
	KindInvalidEntity:   http.StatusUnprocessableEntity,
	KindNotFound:        http.StatusNotFound,
	KindStoreFault:      http.StatusInternalServerError,
	KindInternal:        http.StatusInternalServerError,
	KindUnknown:         http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for err's kind, defaulting to 500.
func HTTPStatus(err error) int {
	if status, ok := KindHTTPStatus[GetKind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
