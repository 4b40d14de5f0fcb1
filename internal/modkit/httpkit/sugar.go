package httpkit

import (
	"net/http"

	phttp "openscout/internal/platform/net/http"
)

// Request is a convenience alias for handlers that only need the request
type Request = *http.Request

// GetJSON mounts a GET handler with no request body
func GetJSON(r Router, pattern string, fn func(Request) (any, error)) {
	r.Get(pattern, phttp.JSONHandlerNoBody(fn))
}

// PostJSON mounts a POST handler that binds a JSON body of type T
func PostJSON[T any](r Router, pattern string, fn func(Request, T) (any, error)) {
	r.Post(pattern, phttp.JSONHandler(fn))
}

// PutJSON mounts a PUT handler that binds a JSON body of type T
func PutJSON[T any](r Router, pattern string, fn func(Request, T) (any, error)) {
	r.Put(pattern, phttp.JSONHandler(fn))
}

// PatchJSON mounts a PATCH handler that binds a JSON body of type T
func PatchJSON[T any](r Router, pattern string, fn func(Request, T) (any, error)) {
	r.Patch(pattern, phttp.JSONHandler(fn))
}

// DeleteJSON mounts a DELETE handler with no request body
func DeleteJSON(r Router, pattern string, fn func(Request) (any, error)) {
	r.Delete(pattern, phttp.JSONHandlerNoBody(fn))
}
