package query

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/jmorrow/granola-flow/internal/cache"
)

const (
	fontName  = "Calibri"
	fontSize  = 11
	titleSize = 16
)

// speakerTurn is one run of consecutive segments from the same source.
type speakerTurn struct {
	label string
	texts []string
}

// writeDocx renders one transcript as a Word document: title heading, a
// short metadata line, then one paragraph per speaker turn with the
// speaker label in bold.
func writeDocx(t transcript, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), t.Title, true, titleSize)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("ID: %s / Words: ~%d", t.ID, t.WordCount), false, fontSize)
	doc.AddParagraph("")

	for _, turn := range speakerTurns(t.Segments) {
		p := doc.AddParagraph("")
		p.AddText(turn.label + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
		p.AddText(strings.Join(turn.texts, " ")).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func speakerTurns(segments []cache.Segment) []speakerTurn {
	var turns []speakerTurn
	currentSource := ""

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if len(turns) == 0 || seg.Source != currentSource {
			turns = append(turns, speakerTurn{label: speakerLabel(seg.Source)})
			currentSource = seg.Source
		}
		last := &turns[len(turns)-1]
		last.texts = append(last.texts, text)
	}

	return turns
}

func speakerLabel(source string) string {
	switch source {
	case cache.SourceMicrophone:
		return "You"
	case cache.SourceSystem:
		return "Other"
	default:
		return source
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
