//go:build unit

package github_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
	"github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories/github"
)

const commitSHA = "40af65af14a2dce962df923446afff24dd8f123e"

func newTestProvider(t *testing.T, handler http.Handler, token string) (repositories.HostingRepository, *logtest.Hook) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, hook := logtest.NewNullLogger()
	provider := github.NewHostingRepository(entities.ProviderSettings{
		Type:   "github",
		Host:   "github.com",
		APIURL: server.URL,
		WebURL: server.URL,
		Token:  token,
	}, log)
	return provider, hook
}

func demoRef(t *testing.T) entities.RepositoryRef {
	t.Helper()
	ref, err := entities.ParseRepositoryURL("https://github.com/acme/demo.git", commitSHA)
	require.NoError(t, err)
	return ref
}

func TestNewHostingRepository(t *testing.T) {
	t.Parallel()

	t.Run("should default to github.com", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()

		// when
		provider := github.NewHostingRepository(entities.ProviderSettings{Type: "github"}, log)

		// then
		assert.Equal(t, "github", provider.Name())
		assert.Equal(t, "github.com", provider.Host())
	})
}

func TestGitHubHostingRepositoryCommitExists(t *testing.T) {
	t.Parallel()

	t.Run("should report an existing commit on HTTP 200", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/acme/demo/commit/"+commitSHA, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		provider, _ := newTestProvider(t, mux, "")

		// when
		exists, err := provider.CommitExists(context.Background(), demoRef(t))

		// then
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should report a missing commit on any other status", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/acme/demo/commit/"+commitSHA, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		provider, _ := newTestProvider(t, mux, "")

		// when
		exists, err := provider.CommitExists(context.Background(), demoRef(t))

		// then
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGitHubHostingRepositoryListTree(t *testing.T) {
	t.Parallel()

	t.Run("should list the recursive tree at the commit", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/demo/git/trees/"+commitSHA, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("recursive"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"sha": "` + commitSHA + `",
				"truncated": false,
				"tree": [
					{"path": "Dockerfile", "type": "blob", "sha": "aaa"},
					{"path": "docker", "type": "tree", "sha": "bbb"},
					{"path": "docker/Dockerfile", "type": "blob", "sha": "ccc"}
				]
			}`))
		})
		provider, hook := newTestProvider(t, mux, "")

		// when
		entries, err := provider.ListTree(context.Background(), demoRef(t))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.TreeEntry{
			{Path: "Dockerfile", Type: "blob", SHA: "aaa"},
			{Path: "docker", Type: "tree", SHA: "bbb"},
			{Path: "docker/Dockerfile", Type: "blob", SHA: "ccc"},
		}, entries)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("should warn when the tree is truncated", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/demo/git/trees/"+commitSHA, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sha": "x", "truncated": true, "tree": []}`))
		})
		provider, hook := newTestProvider(t, mux, "")

		// when
		entries, err := provider.ListTree(context.Background(), demoRef(t))

		// then
		require.NoError(t, err)
		assert.Empty(t, entries)
		require.NotNil(t, hook.LastEntry())
		assert.Contains(t, hook.LastEntry().Message, "truncated")
	})

	t.Run("should fail when the API rejects the request", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/demo/git/trees/"+commitSHA, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		})
		provider, _ := newTestProvider(t, mux, "")

		// when
		entries, err := provider.ListTree(context.Background(), demoRef(t))

		// then
		require.Error(t, err)
		assert.Nil(t, entries)
		assert.Contains(t, err.Error(), "acme/demo")
	})
}

func TestGitHubHostingRepositoryGetFileContent(t *testing.T) {
	t.Parallel()

	t.Run("should return the base64 content at the commit", func(t *testing.T) {
		t.Parallel()

		// given
		encoded := base64.StdEncoding.EncodeToString([]byte("FROM ubuntu:20.04\n"))
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/demo/contents/docker/Dockerfile", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, commitSHA, r.URL.Query().Get("ref"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"type": "file",
				"path": "docker/Dockerfile",
				"encoding": "base64",
				"content": "` + encoded + `"
			}`))
		})
		provider, _ := newTestProvider(t, mux, "secret")

		// when
		file, err := provider.GetFileContent(context.Background(), demoRef(t), "docker/Dockerfile")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.EncodingBase64, file.Encoding)
		text, decodeErr := file.Decode()
		require.NoError(t, decodeErr)
		assert.Equal(t, "FROM ubuntu:20.04\n", text)
	})

	t.Run("should fail when the path is a directory", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/demo/contents/Dockerfile", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"type": "file", "path": "Dockerfile/run.sh"}]`))
		})
		provider, _ := newTestProvider(t, mux, "")

		// when
		_, err := provider.GetFileContent(context.Background(), demoRef(t), "Dockerfile")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})
}
