package entities

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"
)

const (
	dockerfileName = "Dockerfile"

	// EncodingBase64 is the content encoding used by the hosting APIs.
	EncodingBase64 = "base64"

	// EntryTypeBlob, EntryTypeTree and EntryTypeCommit are the git object types
	// a tree entry can point to.
	EntryTypeBlob   = "blob"
	EntryTypeTree   = "tree"
	EntryTypeCommit = "commit"
)

// TreeEntry is one path of a recursive tree listing.
type TreeEntry struct {
	Path string
	Type string // "blob", "tree" or "commit"; empty when the provider does not say
	SHA  string
}

// IsDockerfile reports whether the entry's last path segment is exactly "Dockerfile".
// Directories and submodules never match.
func IsDockerfile(entry TreeEntry) bool {
	if entry.Type == EntryTypeTree || entry.Type == EntryTypeCommit {
		return false
	}
	return path.Base(entry.Path) == dockerfileName
}

// FileContent is a file body as returned by a hosting API.
type FileContent struct {
	Path     string
	Encoding string // "base64" or empty for plain text
	Content  string
}

// Decode returns the file as text.
func (f FileContent) Decode() (string, error) {
	switch strings.ToLower(f.Encoding) {
	case "", "text", "utf-8":
		return f.Content, nil
	case EncodingBase64:
		// GitHub wraps the payload every 60 characters
		compact := strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == ' ' {
				return -1
			}
			return r
		}, f.Content)

		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			var urlErr error
			decoded, urlErr = base64.URLEncoding.DecodeString(compact)
			if urlErr != nil {
				return "", fmt.Errorf("failed to decode %q: %w", f.Path, err)
			}
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q for %q", f.Encoding, f.Path)
	}
}
