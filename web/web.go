// Package web holds the static single-page frontend, embedded so the API
// binary serves the UI without a separate web server.
package web

import "embed"

//go:embed index.html app.js styles.css
var Assets embed.FS
