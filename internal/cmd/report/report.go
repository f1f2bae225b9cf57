// Package report renders an entity dossier as Markdown for publishing
// alongside the ledgers.
package report

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// Dossier is the content of one entity report.
type Dossier struct {
	Title    string
	Summary  string
	Sections output.Sections
	Notes    []string
	Sources  []profiles.SourceLink
	Footer   string
}

// FromProfile fills the title, summary, notes and sources from a profile.
// Sections are left to the caller.
func FromProfile(p *profiles.EntityProfile, sections output.Sections) Dossier {
	return Dossier{
		Title:    p.EntityName,
		Summary:  p.Description,
		Sections: sections,
		Notes:    p.Notes,
		Sources:  p.SourceLinks,
	}
}

// Write renders d to w. Empty sections are left out.
func Write(w io.Writer, d Dossier) error {
	doc := md.NewMarkdown(w)
	doc.H1(d.Title)
	if d.Summary != "" {
		doc.PlainText(d.Summary).LF()
	}

	for _, s := range d.Sections {
		if len(s.Data.Rows) == 0 {
			continue
		}
		doc.H2(s.Title)
		doc.Table(md.TableSet{
			Header: s.Data.Headers,
			Rows:   s.Data.Rows,
		}).LF()
	}

	if len(d.Notes) > 0 {
		doc.H2("Notes")
		doc.BulletList(d.Notes...)
	}

	if len(d.Sources) > 0 {
		items := make([]string, 0, len(d.Sources))
		for _, l := range d.Sources {
			title := l.Title
			if title == "" {
				title = l.URL
			}
			items = append(items, fmt.Sprintf("%s (%s)", md.Link(title, l.URL), l.Kind))
		}
		doc.H2("Sources")
		doc.BulletList(items...)
	}

	if d.Footer != "" {
		doc.HorizontalRule()
		doc.PlainText(md.Italic(d.Footer))
	}

	return doc.Build()
}
