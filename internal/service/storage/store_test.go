package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
)

// fakeRepo 模拟仓库内容接口
type fakeRepo struct {
	mu      sync.Mutex
	files   map[string]string
	deleted []map[string]string
}

func newFakeGitHub(t *testing.T, files map[string]string) (*httptest.Server, *fakeRepo) {
	repo := &fakeRepo{files: files}
	mux := http.NewServeMux()

	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"login": "arhythm"})
	})
	mux.HandleFunc("/repos/arhythm/media", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "media"})
	})
	mux.HandleFunc("/repos/arhythm/media/contents/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/repos/arhythm/media/contents/")
		repo.mu.Lock()
		defer repo.mu.Unlock()

		sha, ok := repo.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			return
		}

		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			_ = json.NewEncoder(w).Encode(map[string]string{
				"type": "file",
				"path": path,
				"sha":  sha,
			})
		case http.MethodDelete:
			body := map[string]string{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body["path"] = path
			repo.deleted = append(repo.deleted, body)
			delete(repo.files, path)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": nil, "commit": map[string]string{"sha": "c0ffee"}})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, repo
}

func newTestGitHubStore(t *testing.T, srv *httptest.Server) *GitHubStore {
	store, err := NewGitHubStore(context.Background(), config.GitHubConfig{
		Token:  "test-token",
		Repo:   "media",
		APIURL: srv.URL,
	}, 5*time.Second)
	require.NoError(t, err)
	return store
}

// TestGitHubStoreDeleteFile 测试删除仓库文件
func TestGitHubStoreDeleteFile(t *testing.T) {
	srv, repo := newFakeGitHub(t, map[string]string{
		"songs-file/A01 - Intro.mp3": "sha-song",
	})
	store := newTestGitHubStore(t, srv)
	ctx := context.Background()

	t.Run("删除存在的文件", func(t *testing.T) {
		err := store.DeleteFile(ctx, "songs-file/A01 - Intro.mp3", "Delete song: Intro")
		require.NoError(t, err)

		require.Len(t, repo.deleted, 1)
		assert.Equal(t, "sha-song", repo.deleted[0]["sha"])
		assert.Equal(t, "main", repo.deleted[0]["branch"])
		assert.Equal(t, "Delete song: Intro", repo.deleted[0]["message"])
		assert.Equal(t, "songs-file/A01 - Intro.mp3", repo.deleted[0]["path"])
	})

	t.Run("删除不存在的文件返回错误", func(t *testing.T) {
		err := store.DeleteFile(ctx, "songs-file/missing.mp3", "Delete song")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrStorageDeleteFailed))
	})
}

// TestGitHubStoreFileExists 测试文件存在检查
func TestGitHubStoreFileExists(t *testing.T) {
	srv, _ := newFakeGitHub(t, map[string]string{
		"album-images/300x300/A01 - First (2020).png": "sha-img",
	})
	store := newTestGitHubStore(t, srv)
	ctx := context.Background()

	exists, err := store.FileExists(ctx, "album-images/300x300/A01 - First (2020).png")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.FileExists(ctx, "album-images/300x300/nope.png")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.TestConnection(ctx))
	assert.Equal(t, "arhythm", store.owner)
}

// TestRemoveQuietly 测试批量删除时单个失败不影响其余文件
func TestRemoveQuietly(t *testing.T) {
	srv, repo := newFakeGitHub(t, map[string]string{
		"artist-images/300x300/Band.png":   "sha-1",
		"artist-images/1200x1200/Band.png": "sha-2",
	})
	store := newTestGitHubStore(t, srv)

	removed := RemoveQuietly(context.Background(), store, "Delete artist: Band",
		"artist-images/300x300/Band.png",
		"",
		"artist-images/600x600/Band.png",
		"artist-images/1200x1200/Band.png",
	)
	assert.Equal(t, 2, removed)
	assert.Len(t, repo.deleted, 2)
	assert.Empty(t, repo.files)
}

// TestNew 测试根据配置创建存储
func TestNew(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Provider: ProviderNone})
	require.NoError(t, err)
	assert.Equal(t, ProviderNone, store.Provider())
	assert.NoError(t, store.DeleteFile(context.Background(), "songs-file/a.mp3", "noop"))

	_, err = New(context.Background(), config.StorageConfig{Provider: "ftp"})
	assert.True(t, errors.HasCode(err, errors.ErrStorageProviderNotSupported))

	store, err = New(context.Background(), config.StorageConfig{Provider: ProviderGitHub})
	assert.Nil(t, store)
	assert.True(t, errors.HasCode(err, errors.ErrStorageConfigInvalid))
}
