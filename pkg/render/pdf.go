package render

import (
	"fmt"
	"io"

	"ai-lecture-notes-be/internal/entity"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
)

// PDF writes doc as a paginated A4 document. The UniDoc license must be
// configured beforehand.
func PDF(w io.Writer, doc *entity.NoteDocument) error {
	spec := DefaultPageSpec()

	regular, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	bold, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	c := creator.New()
	c.SetPageSize(creator.PageSize{spec.Width, spec.Height})

	for _, page := range Layout(doc, spec) {
		c.NewPage()
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}

			p := c.NewParagraph(line.Text)
			p.SetFontSize(FontSize(line.Style))
			if line.Style == StyleTitle || line.Style == StyleHeading {
				p.SetFont(bold)
			} else {
				p.SetFont(regular)
			}
			p.SetPos(spec.MarginLeft, line.Y)

			if err := c.Draw(p); err != nil {
				return fmt.Errorf("draw line: %w", err)
			}
		}
	}

	if err := c.Write(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
