package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
)

// RoutesDoc renders Markdown documentation of the routes of r.
func RoutesDoc(r chi.Router) string {
	return docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
		ProjectPath: "github.com/Houeta/phone-insights",
		Intro:       "Phone Insights HTTP API: catalog browsing, AI functions and admin endpoints.",
	})
}
