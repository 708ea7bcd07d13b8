package fsworkspace

import "embed"

// templatesFS holds the files written by `skill-manager init`. Files ending in
// .tmpl are rendered with the project variables and written without the
// suffix; env.example is written as .env.example.
//
//go:embed all:templates
var templatesFS embed.FS
