// Package license renders one of a fixed set of license texts into a LICENSE file.
package license

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	log "github.com/sirupsen/logrus"

	"postgen/pkg/config"
)

// FileName is the name of the file written into the project directory.
const FileName = "LICENSE"

type Outcome int

const (
	Skipped Outcome = iota
	Written
	Unknown
)

// Data is interpolated into a license body.
type Data struct {
	Year   string
	Author string
}

// templates is built once and never modified afterwards.
var templates = map[string]*template.Template{
	"MIT":          mustParse("MIT", mitTemplate),
	"GPL-3":        mustParse("GPL-3", gpl3Template),
	"Apache-2.0":   mustParse("Apache-2.0", apache2Template),
	"BSD-3-Clause": mustParse("BSD-3-Clause", bsd3Template),
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(body))
}

// Identifiers returns the supported license identifiers in sorted order.
func Identifiers() []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Known reports whether id names a supported license.
func Known(id string) bool {
	_, ok := templates[id]
	return ok
}

// Render returns the license body for id with year and author filled in.
func Render(id string, data Data) (string, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("license %q not found", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s license: %w", id, err)
	}
	return buf.String(), nil
}

// Writer writes the LICENSE file into Dir and reports progress to Out.
type Writer struct {
	Dir string
	Out io.Writer
	Log log.FieldLogger
}

func NewWriter(dir string, out io.Writer) *Writer {
	return &Writer{Dir: dir, Out: out, Log: log.StandardLogger()}
}

// Write creates or overwrites the LICENSE file for cfg.License.
//
// "None" writes nothing. An identifier outside the supported set also writes
// nothing and leaves any existing LICENSE untouched, but is logged as a warning.
func (w *Writer) Write(cfg config.Config) (Outcome, error) {
	id := cfg.License
	if id == config.NoLicense {
		return Skipped, nil
	}

	fmt.Fprintf(w.Out, "📄 Creating %s license file...\n", id)

	if !Known(id) {
		w.logger().WithField("license", id).
			Warnf("unknown license %q, no %s written (supported: %v)", id, FileName, Identifiers())
		return Unknown, nil
	}

	body, err := Render(id, Data{Year: cfg.Year, Author: cfg.AuthorName})
	if err != nil {
		return Skipped, err
	}

	path := filepath.Join(w.Dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return Skipped, fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(w.Out, "✅ %s license file created\n", id)
	return Written, nil
}

func (w *Writer) logger() log.FieldLogger {
	if w.Log == nil {
		return log.StandardLogger()
	}
	return w.Log
}
