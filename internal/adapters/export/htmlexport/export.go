// Package htmlexport renders a session's play log as a standalone HTML
// document suitable for archiving or printing.
package htmlexport

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

var page = template.Must(template.New("session").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PlayLogTitle}}</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3rem; }
h2 { margin-top: 2rem; }
.entry { margin: .6rem 0; }
.entry time { color: #888; font-size: .8rem; margin-right: .5rem; }
.color-red { color: #b22222; }
.color-green { color: #228b22; }
.color-blue { color: #1e5aa8; }
.color-yellow { color: #b8860b; }
.color-purple { color: #7d3c98; }
.tracker { margin: .2rem 0; }
</style>
</head>
<body>
<h1>{{.PlayLogTitle}}</h1>
{{if .CharacterSheet.Name}}<p><strong>{{.CharacterSheet.Name}}</strong></p>{{end}}
{{range .PlayLogEntries}}{{if eq .Type "heading"}}<h2 class="color-{{.ColorKey}}">{{.Content}}</h2>
{{else}}<div class="entry color-{{.ColorKey}}"><time>{{.Timestamp.Format "2006-01-02 15:04"}}</time>{{.Content}}</div>
{{end}}{{end}}
{{if .ResourceTrackers}}<h2>Resources</h2>
{{range .ResourceTrackers}}<div class="tracker">{{.Name}}: {{.Value}}</div>
{{end}}{{end}}
</body>
</html>
`))

// Render produces the HTML document for one session snapshot.
func Render(state domain.SessionState) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, state); err != nil {
		return nil, fmt.Errorf("render session html: %w", err)
	}
	return buf.Bytes(), nil
}
