// Package view renders the skill gap page and its result dialogs.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/skillgap/internal/controller"
	"github.com/jonathan/skillgap/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// DialogKind identifies one of the two result dialogs.
type DialogKind string

const (
	// DialogCommon lists skills shared between the user and the job.
	DialogCommon DialogKind = "common"
	// DialogDevelop lists skills the user still needs.
	DialogDevelop DialogKind = "develop"
)

// ParseDialogKind maps a query value to a dialog, returning "" for anything else.
func ParseDialogKind(s string) DialogKind {
	switch DialogKind(s) {
	case DialogCommon, DialogDevelop:
		return DialogKind(s)
	default:
		return ""
	}
}

// Placeholder texts shown when a dialog's list is empty.
const (
	NoCommonSkills    = "No common skills found."
	NoSkillsToDevelop = "Congratulations! No skills to develop were identified."
)

// Dialog is the rendered content of one result dialog.
type Dialog struct {
	Kind        DialogKind
	Title       string
	Items       []string
	Placeholder string
}

// Empty reports whether the placeholder is shown instead of items.
func (d Dialog) Empty() bool {
	return len(d.Items) == 0
}

// DialogFor builds the dialog for kind from a result.
func DialogFor(result *types.AnalysisResult, kind DialogKind) Dialog {
	var d Dialog
	switch kind {
	case DialogCommon:
		d = Dialog{Kind: kind, Title: "Common Skills", Placeholder: NoCommonSkills}
		if result != nil {
			d.Items = result.CommonSkills
		}
	case DialogDevelop:
		d = Dialog{Kind: kind, Title: "Skills to Develop", Placeholder: NoSkillsToDevelop}
		if result != nil {
			d.Items = result.SkillsToDevelop
		}
	}
	return d
}

// Page is the data the page template renders.
type Page struct {
	State controller.State
	// Dialog is the open dialog, nil when none is open.
	Dialog *Dialog
	// RefreshSeconds makes the page reload itself while loading.
	RefreshSeconds int
}

// NewPage builds the page for a state. A dialog is only opened when a result exists.
func NewPage(state controller.State, open DialogKind) Page {
	p := Page{State: state}
	if state.Loading {
		p.RefreshSeconds = 2
	}
	if open != "" && state.HasResult() {
		d := DialogFor(state.Result, open)
		p.Dialog = &d
	}
	return p
}

// CanSubmit reports whether the primary button starts enabled.
func (p Page) CanSubmit() bool {
	return !p.State.Loading && p.State.JobDescription != "" && p.State.UserSkills != ""
}

// Render writes the full HTML page.
func Render(w io.Writer, page Page) error {
	if err := pageTemplate.ExecuteTemplate(w, "page.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
