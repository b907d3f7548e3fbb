package server

import (
	"bytes"
	"embed"
	"html/template"

	"stock-watch/src/models"
)

//go:embed templates/index.html
var templateFS embed.FS

type pageData struct {
	Title               string
	PollIntervalSeconds int
	FlashDurationMs     int
}

// renderPage executes the page template once; the result is served as-is.
func renderPage(cfg *models.MConfig) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	title := cfg.Name
	if title == "" {
		title = "Stock Watch"
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Title:               title,
		PollIntervalSeconds: cfg.Poller.PollIntervalSeconds,
		FlashDurationMs:     cfg.Poller.FlashDurationMs,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
