// Package templates embeds the console's HTML templates. Every page
// file defines a "content" block rendered inside layout.html.
package templates

import "embed"

//go:embed *.html
var Files embed.FS
