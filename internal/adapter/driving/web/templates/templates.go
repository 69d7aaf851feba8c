// Package templates holds the shared templ components of the web GUI: the
// page layout, the CSRF field, and the SVG charts. Components are written in
// .templ files; run `go tool templ generate` after editing them.
package templates

type navLink struct {
	Key   string
	Href  string
	Label string
}

var navLinks = []navLink{
	{Key: "tracker", Href: "/", Label: "Tracker"},
	{Key: "manage", Href: "/manage", Label: "Data Manager"},
	{Key: "help", Href: "/help", Label: "Help"},
}
