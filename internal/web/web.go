// Package web holds the server-rendered HTML pages.
package web

import (
	"embed"
	"html/template"
	"strconv"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"add": func(i, j int) int {
		return i + j
	},
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Format("02.01.2006 15:04")
	},
	"questionField": func(id uint) string {
		return QuestionField(id)
	},
}

// QuestionField is the radio group name used for a question in the test player.
func QuestionField(id uint) string {
	return "question_" + strconv.FormatUint(uint64(id), 10)
}

// Parse loads every embedded page. Pages are addressed by their {{define}} name.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
