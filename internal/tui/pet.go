package tui

import (
	"strings"

	"pomopet/internal/core/controller"
	"pomopet/internal/core/pet"

	"github.com/charmbracelet/x/ansi"
)

// cellPixels is how many sprite pixels one terminal column stands for.
const cellPixels = 8

// glyphs are drawn facing left, like the sprites. Frames without an entry
// fall back to the walking glyph.
var glyphs = map[int]string{
	0:  "<(o )",
	1:  "<(o )_",
	3:  "\\(^o^)/",
	7:  "\\(^-^)/",
	6:  "~<(>_<)",
	11: "*<(>o<)",
}

func petGlyph(pose pet.Pose) string {
	glyph, ok := glyphs[pose.Frame]
	if !ok {
		glyph = glyphs[0]
	}
	if pose.Mirrored {
		return mirror(glyph)
	}
	return glyph
}

var mirrored = strings.NewReplacer("<", ">", ">", "<", "(", ")", ")", "(", "/", "\\", "\\", "/")

func mirror(glyph string) string {
	runes := []rune(glyph)
	for left, right := 0, len(runes)-1; left < right; left, right = left+1, right-1 {
		runes[left], runes[right] = runes[right], runes[left]
	}
	return mirrored.Replace(string(runes))
}

// petLine places the glyph at the pet's column within width cells.
func petLine(snapshot controller.Snapshot, width int) string {
	if width <= 0 {
		return ""
	}
	glyph := petGlyph(snapshot.Pose)
	column := snapshot.X / cellPixels
	if maxColumn := width - ansi.StringWidth(glyph); column > maxColumn {
		column = maxColumn
	}
	if column < 0 {
		column = 0
	}
	return ansi.Truncate(strings.Repeat(" ", column)+glyph, width, "…")
}
