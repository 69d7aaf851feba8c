package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet, app script,
// service worker, offline page, manifest).
//
//go:embed static/*
var StaticFS embed.FS

// helpMarkdown is the source of the /help page.
//
//go:embed help.md
var helpMarkdown string
