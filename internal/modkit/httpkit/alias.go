// Package httpkit offers HTTP related helpers for modules (routing sugar, shared middleware stacks)
package httpkit

import (
	phttp "openscout/internal/platform/net/http"
)

type (
	// Router re-exports the platform router surface so modules only import httpkit
	Router = phttp.Router

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Response is the platform response wrapper
	Response = phttp.Response

	// Page is the standard pagination block on list envelopes
	Page = phttp.Page
)

// URLParam re-exports the chi param extractor
func URLParam(r Request, key string) string { return phttp.URLParam(r, key) }

// OK re-exports the platform 200 response helper
func OK(data any) Response { return phttp.OK(data) }

// OKPage re-exports the platform paginated 200 response helper
func OKPage(data any, page Page) Response { return phttp.OKPage(data, page) }

// NoContent re-exports the platform 204 response helper
func NoContent() Response { return phttp.NoContent() }
