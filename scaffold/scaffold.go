// Package scaffold renders starter content documents for the notebook CLI.
package scaffold

import (
	"embed"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/darkhorsekelly/notebook/models"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed templates/*.tmpl
var Templates embed.FS

var artifactTmpl = template.Must(template.New("artifact.mdx.tmpl").
	Funcs(template.FuncMap{"yaml": yamlScalar}).
	ParseFS(Templates, "templates/artifact.mdx.tmpl"))

// Artifact holds the frontmatter of a new document.
type Artifact struct {
	Title       string
	PublishDate string // YYYY-MM-DD
	IsFeatured  bool
	Type        models.ArtifactType
	ProjectIDs  []string
	TagIDs      []string
}

// WriteArtifact writes an MDX document with a frontmatter block for a and a
// heading carrying its title.
func WriteArtifact(w io.Writer, a Artifact) error {
	if a.Type == "" {
		a.Type = models.ArtifactDevLog
	}
	return artifactTmpl.Execute(w, a)
}

// yamlScalar encodes v as a single-line YAML value, quoting it when needed.
func yamlScalar(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
