// Package templates renders the embedded email templates. Each template name
// has three files: <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const Welcome = "welcome"

var (
	parseOnce sync.Once
	textSet   *texttpl.Template
	htmlSet   *htmpl.Template
	parseErr  error
)

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if reflect.ValueOf(value).IsZero() {
		return fallback
	}
	return value
}

func funcs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

func parse() error {
	parseOnce.Do(func() {
		textSet, parseErr = texttpl.New("").Funcs(funcs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse text templates: %w", parseErr)
			return
		}
		htmlSet, parseErr = htmpl.New("").Funcs(funcs()).ParseFS(FS, "*.html.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse html templates: %w", parseErr)
		}
	})
	return parseErr
}

// Known reports whether all three files exist for name.
func Known(name string) bool {
	if parse() != nil {
		return false
	}
	return textSet.Lookup(name+".subject.tmpl") != nil &&
		textSet.Lookup(name+".text.tmpl") != nil &&
		htmlSet.Lookup(name+".html.tmpl") != nil
}

// Render executes the subject, text and html templates for name.
func Render(name string, data any) (subject, text, html string, err error) {
	if err := parse(); err != nil {
		return "", "", "", err
	}
	if !Known(name) {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	exec := func(run func() error, file string) (string, error) {
		buf.Reset()
		if err := run(); err != nil {
			return "", fmt.Errorf("exec %q: %w", file, err)
		}
		return buf.String(), nil
	}

	subject, err = exec(func() error { return textSet.ExecuteTemplate(&buf, name+".subject.tmpl", data) }, name+".subject.tmpl")
	if err != nil {
		return "", "", "", err
	}
	text, err = exec(func() error { return textSet.ExecuteTemplate(&buf, name+".text.tmpl", data) }, name+".text.tmpl")
	if err != nil {
		return "", "", "", err
	}
	html, err = exec(func() error { return htmlSet.ExecuteTemplate(&buf, name+".html.tmpl", data) }, name+".html.tmpl")
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
