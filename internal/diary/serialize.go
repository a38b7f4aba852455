package diary

import (
	"strings"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// Serialize renders a diary back to markdown. Body lines are emitted
// verbatim and headers are reconstructed, so Parse followed by Serialize
// preserves content.
func Serialize(d *model.Diary) []byte {
	var b strings.Builder
	for _, line := range d.Preamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, ch := range d.Chapters {
		writeSection(&b, ch)
	}
	return []byte(b.String())
}

func writeSection(b *strings.Builder, s *model.Section) {
	// A synthesized chapter (file starting at level 2) has no header line.
	if s.Line > 0 || s.Title != "" {
		b.WriteString(strings.Repeat("#", s.Level))
		if s.Title != "" {
			b.WriteByte(' ')
			b.WriteString(s.Title)
		}
		b.WriteByte('\n')
	}
	for _, line := range s.Body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, c := range s.Children {
		writeSection(b, c)
	}
}
