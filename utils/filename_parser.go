package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	imageExtRegex   = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)
	separatorsRegex = regexp.MustCompile(`[\s_\-.]+`)
	// Export counters some editors append, e.g. "fox-sketch (2)" or "fox_final_v3"
	copySuffixRegex = regexp.MustCompile(`(?i)(\s*\(\d+\)|[\s_\-]+(v\d+|final|copy))+$`)
)

var titleCaser = cases.Title(language.Spanish)

// TitleFromFilename derives a display title from an uploaded image's file
// name. Example: "fox_sketch-FINAL (2).PNG" -> "Fox Sketch"
func TitleFromFilename(filename string) string {
	name := imageExtRegex.ReplaceAllString(strings.TrimSpace(filename), "")
	name = copySuffixRegex.ReplaceAllString(name, "")
	name = strings.TrimSpace(separatorsRegex.ReplaceAllString(name, " "))
	if name == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(name))
}
