package entities

import (
	"strings"

	"github.com/distribution/reference"
)

const (
	fromKeyword  = "FROM"
	asKeyword    = "as"
	scratchImage = "scratch"
)

// Stage is one FROM instruction of a Dockerfile.
type Stage struct {
	Image string // Second token of the FROM line
	Name  string // Lower-cased "AS <name>" alias, empty when absent
	Line  int    // 1-based line number
}

// ExtractStages scans the Dockerfile text line by line and returns every
// line that starts with the FROM token, in order of appearance.
// The match is anchored at the start of the line and case-sensitive;
// a FROM without an image token is ignored.
func ExtractStages(text string) []Stage {
	stages := []Stage{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, fromKeyword) {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != fromKeyword || len(fields) < 2 { //nolint:mnd // FROM <image>
			continue
		}

		stage := Stage{Image: fields[1], Line: i + 1}
		if len(fields) >= 4 && strings.EqualFold(fields[2], asKeyword) { //nolint:mnd // FROM <image> AS <name>
			stage.Name = strings.ToLower(fields[3])
		}
		stages = append(stages, stage)
	}
	return stages
}

// ExtractBaseImages returns the image reference of every FROM line.
// The result is never nil so that a Dockerfile without FROM renders as [].
func ExtractBaseImages(text string) []string {
	stages := ExtractStages(text)
	images := make([]string, 0, len(stages))
	for _, stage := range stages {
		images = append(images, stage.Image)
	}
	return images
}

// NormalizeImages returns the fully qualified form of every stage image,
// e.g. "ubuntu:20.04" becomes "docker.io/library/ubuntu:20.04".
// Build args, "scratch", unparsable references and names of earlier
// stages are returned unchanged.
func NormalizeImages(stages []Stage) []string {
	images := make([]string, 0, len(stages))
	seen := make(map[string]bool, len(stages))

	for _, stage := range stages {
		images = append(images, normalizeImage(stage.Image, seen))
		if stage.Name != "" {
			seen[stage.Name] = true
		}
	}
	return images
}

func normalizeImage(image string, stageNames map[string]bool) string {
	if image == scratchImage || stageNames[strings.ToLower(image)] || strings.Contains(image, "$") {
		return image
	}

	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return image
	}
	return reference.TagNameOnly(named).String()
}
