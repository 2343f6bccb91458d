package screenshot

import (
	"sort"
	"strings"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
)

// geometryIndex resolves bounding boxes for the non-empty lines of a
// recognition result.
type geometryIndex struct {
	lines     []ports.RecognizedLine
	usedLines []bool
	wordLines []wordLine
	unindexed []ports.RecognizedWord
	cursor    int
}

// wordLine groups the words the recognizer assigned to one of its lines.
type wordLine struct {
	words []ports.RecognizedWord
	used  bool
}

func newGeometryIndex(result ports.RecognitionResult) *geometryIndex {
	g := &geometryIndex{
		lines:     result.Lines,
		usedLines: make([]bool, len(result.Lines)),
	}
	byLine := make(map[int][]ports.RecognizedWord)
	for _, w := range result.Words {
		if w.Line >= 0 {
			byLine[w.Line] = append(byLine[w.Line], w)
			continue
		}
		g.unindexed = append(g.unindexed, w)
	}
	keys := make([]int, 0, len(byLine))
	for k := range byLine {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		g.wordLines = append(g.wordLines, wordLine{words: byLine[k]})
	}
	return g
}

// lookup returns the box of the first unused recognizer line whose text, or
// whose words, match text. Lines the recognizer never reported get nil.
func (g *geometryIndex) lookup(text string) *models.BoundingBox {
	for i, l := range g.lines {
		if g.usedLines[i] || strings.TrimSpace(l.Text) != text {
			continue
		}
		g.usedLines[i] = true
		box := l.Box
		return &box
	}

	fields := strings.Fields(text)
	for i := range g.wordLines {
		wl := &g.wordLines[i]
		if wl.used || !sameFields(wl.words, fields) {
			continue
		}
		wl.used = true
		return mergeWords(wl.words)
	}

	return g.sequential(fields)
}

func sameFields(words []ports.RecognizedWord, fields []string) bool {
	if len(words) != len(fields) {
		return false
	}
	for i, f := range fields {
		if strings.TrimSpace(words[i].Text) != f {
			return false
		}
	}
	return true
}

// sequential matches the line's fields against the next unindexed words.
func (g *geometryIndex) sequential(fields []string) *models.BoundingBox {
	if len(fields) == 0 || g.cursor+len(fields) > len(g.unindexed) {
		return nil
	}
	for start := g.cursor; start+len(fields) <= len(g.unindexed); start++ {
		if g.matchesAt(start, fields) {
			words := g.unindexed[start : start+len(fields)]
			g.cursor = start + len(fields)
			return mergeWords(words)
		}
	}
	return nil
}

func (g *geometryIndex) matchesAt(start int, fields []string) bool {
	return sameFields(g.unindexed[start:start+len(fields)], fields)
}

func mergeWords(words []ports.RecognizedWord) *models.BoundingBox {
	box := words[0].Box
	for _, w := range words[1:] {
		box = box.Union(w.Box)
	}
	return &box
}
