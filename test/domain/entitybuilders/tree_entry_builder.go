//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"encoding/base64"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// TreeEntryBuilder helps create test tree entries with a fluent interface.
type TreeEntryBuilder struct {
	*testkit.BaseBuilder
	path      string
	entryType string
	sha       string
}

// NewTreeEntryBuilder creates a new tree entry builder with sensible defaults.
func NewTreeEntryBuilder() *TreeEntryBuilder {
	return &TreeEntryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "Dockerfile",
		entryType:   entities.EntryTypeBlob,
		sha:         "3b18e512dba79e4c8300dd08aeb37f8e728b8dad",
	}
}

// WithPath sets the entry path.
func (b *TreeEntryBuilder) WithPath(path string) *TreeEntryBuilder {
	b.path = path
	return b
}

// WithType sets the git object type ("blob", "tree", "commit").
func (b *TreeEntryBuilder) WithType(entryType string) *TreeEntryBuilder {
	b.entryType = entryType
	return b
}

// WithSHA sets the object SHA.
func (b *TreeEntryBuilder) WithSHA(sha string) *TreeEntryBuilder {
	b.sha = sha
	return b
}

// Build creates the tree entry.
func (b *TreeEntryBuilder) Build() entities.TreeEntry {
	return entities.TreeEntry{
		Path: b.path,
		Type: b.entryType,
		SHA:  b.sha,
	}
}

// Base64Content wraps Dockerfile text the way the hosting APIs return it.
func Base64Content(path, text string) entities.FileContent {
	return entities.FileContent{
		Path:     path,
		Encoding: entities.EncodingBase64,
		Content:  base64.StdEncoding.EncodeToString([]byte(text)),
	}
}
