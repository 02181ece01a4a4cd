package apperrors

import "net/http"

// HTTPStatus maps an application error code to an HTTP status code.
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf returns the HTTP status for err based on its error code.
func StatusOf(err error) int {
	return HTTPStatus(CodeOf(err))
}
