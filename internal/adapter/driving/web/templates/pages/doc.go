// Package pages holds the full-page templ components of the web GUI.
package pages
