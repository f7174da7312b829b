package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"

	"mergingtonactivities/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
// Parsed templates are cached by file name.
type templateRenderer struct {
	mu     sync.Mutex
	parsed map[string]func(*bytes.Buffer, any) error
}

// NewTemplateRenderer returns an EmailTemplateRenderer that loads templates from the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{parsed: make(map[string]func(*bytes.Buffer, any) error)}
}

// Render executes the named template (e.g. "signup_confirmation") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.renderFile(templateName+"_subject.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderFile(templateName+".html", data, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderFile(templateName+".txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderFile(name string, data any, html bool) (string, error) {
	exec, err := r.lookup(name, html)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := exec(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) lookup(name string, html bool) (func(*bytes.Buffer, any) error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exec, ok := r.parsed[name]; ok {
		return exec, nil
	}

	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, err
	}
	var exec func(*bytes.Buffer, any) error
	if html {
		t, err := template.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, err
		}
		exec = func(buf *bytes.Buffer, data any) error { return t.Execute(buf, data) }
	} else {
		t, err := texttemplate.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, err
		}
		exec = func(buf *bytes.Buffer, data any) error { return t.Execute(buf, data) }
	}
	r.parsed[name] = exec
	return exec, nil
}
