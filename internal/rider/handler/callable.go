package handler

import (
	"net/http"

	dErrors "pharmafinder/pkg/domain-errors"
	"pharmafinder/pkg/platform/httputil"
)

// Callable wire statuses.
const (
	StatusUnauthenticated  = "UNAUTHENTICATED"
	StatusPermissionDenied = "PERMISSION_DENIED"
	StatusInvalidArgument  = "INVALID_ARGUMENT"
	StatusNotFound         = "NOT_FOUND"
	StatusInternal         = "INTERNAL"
)

var callableStatus = map[dErrors.Code]string{
	dErrors.CodeUnauthenticated:  StatusUnauthenticated,
	dErrors.CodePermissionDenied: StatusPermissionDenied,
	dErrors.CodeInvalidArgument:  StatusInvalidArgument,
	dErrors.CodeNotFound:         StatusNotFound,
	dErrors.CodeInternal:         StatusInternal,
}

type callableResult struct {
	Result any `json:"result"`
}

type callableError struct {
	Error callableErrorBody `json:"error"`
}

type callableErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WritePanic renders a recovered panic as a callable INTERNAL error.
func WritePanic(w http.ResponseWriter, _ *http.Request) {
	writeCallableError(w, dErrors.New(dErrors.CodeInternal, "internal"))
}

func writeResult(w http.ResponseWriter, result any) {
	httputil.WriteJSON(w, http.StatusOK, callableResult{Result: result})
}

// writeCallableError renders err in the callable error envelope. Errors that
// never became domain errors are reported as INTERNAL without detail.
func writeCallableError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := callableErrorBody{Status: callableStatus[code], Message: "internal"}
	if de, ok := dErrors.As(err); ok {
		body.Message = de.Message
		if code == dErrors.CodeInternal {
			body.Details = de.Detail()
		}
	}
	httputil.WriteJSON(w, httputil.StatusFor(code), callableError{Error: body})
}
