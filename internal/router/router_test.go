package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/catalog"
	"github.com/weiwangfds/arsongs/internal/service/storage"
	"gorm.io/gorm"
)

// outbox 记录发出的验证码
type outbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (o *outbox) SendVerificationOTP(to, code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes[to] = code
}

func (o *outbox) SendEmailVerified(string)             {}
func (o *outbox) SendPasswordResetOTP(to, code string) { o.SendVerificationOTP(to, code) }
func (o *outbox) SendPasswordChanged(string)           {}
func (o *outbox) Wait()                                {}

func (o *outbox) code(to string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.codes[to]
}

type testServer struct {
	db     *gorm.DB
	router *Router
	mail   *outbox
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test", AllowOrigins: []string{"*"}},
		Auth:   config.AuthConfig{OTPLength: 6, OTPTTL: 2 * time.Minute},
		Share: config.ShareConfig{
			AppBaseURL:   "https://app.example.com",
			MediaBaseURL: "https://media.example.com",
		},
		Content: config.ContentConfig{
			SearchDefaultLimit: 5,
			SearchMaxLimit:     25,
			PageDefaultLimit:   10,
			PageMaxLimit:       25,
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	db, err := database.NewMemoryDB(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)

	mail := &outbox{codes: map[string]string{}}
	r := NewRouter(db, testConfig(), Dependencies{
		Mail:   mail,
		Assets: storage.NoopStore{},
		Slides: catalog.SlidesConfig{Slides: []catalog.Slide{{ID: 1, Title: "Welcome"}}},
	})
	return &testServer{db: db, router: r, mail: mail}
}

// user 直接创建已激活用户并返回令牌
func (s *testServer) user(t *testing.T, name string, staff bool) (database.User, string) {
	u := database.User{Username: name, Email: name + "@example.com", Password: "x", IsActive: true, IsStaff: staff}
	require.NoError(t, s.db.Create(&u).Error)
	token := database.AuthToken{Key: name + "-token", UserID: u.ID}
	require.NoError(t, s.db.Create(&token).Error)
	return u, token.Key
}

type reply struct {
	status int
	header http.Header
	body   []byte
}

func (r reply) json(t *testing.T) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func (r reply) data(t *testing.T) map[string]interface{} {
	data, ok := r.json(t)["data"].(map[string]interface{})
	require.True(t, ok, string(r.body))
	return data
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) reply {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)
	return reply{status: w.Code, header: w.Header(), body: w.Body.Bytes()}
}

func (s *testServer) seedSong(t *testing.T) database.Song {
	album := database.Album{Code: "A01", Title: "Night Drive", Year: 2021}
	require.NoError(t, s.db.Create(&album).Error)
	artist := database.Artist{Name: "Blue Fox"}
	require.NoError(t, s.db.Create(&artist).Error)
	song := database.Song{AlbumID: album.ID, OriginalName: "Neon", Duration: 185, Artists: []database.Artist{artist}}
	require.NoError(t, s.db.Create(&song).Error)
	return song
}

// TestHealth 测试健康检查和服务信息
func TestHealth(t *testing.T) {
	s := newTestServer(t)

	res := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.json(t)["status"])

	res = s.do(http.MethodGet, "/api/v1/info", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "none", res.json(t)["storage"])
	assert.NotEmpty(t, res.header.Get("X-Request-ID"))
}

// TestAccountFlow 测试注册、验证邮箱、登录和退出
func TestAccountFlow(t *testing.T) {
	s := newTestServer(t)

	res := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	assert.Equal(t, "alice", res.data(t)["username"])

	t.Run("invalid body reports field", func(t *testing.T) {
		res := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": "bob", "email": "not-an-email", "password": "secret-pass",
		})
		assert.Equal(t, http.StatusBadRequest, res.status)
		assert.Equal(t, "email", res.json(t)["field"])
	})

	login := map[string]string{"username": "alice", "password": "secret-pass"}
	res = s.do(http.MethodPost, "/api/v1/auth/username/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	code := s.mail.code("alice@example.com")
	require.NotEmpty(t, code)
	res = s.do(http.MethodPost, "/api/v1/auth/verify-email-and-activate-account", "", map[string]string{
		"email": "alice@example.com", "otp": code,
	})
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	res = s.do(http.MethodPost, "/api/v1/auth/username/login", "", login)
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	token, _ := res.data(t)["token"].(string)
	require.Len(t, token, 40)

	res = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "alice@example.com", res.data(t)["email"])

	res = s.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = s.do(http.MethodPost, "/api/v1/auth/logout", token, map[string]bool{"logout_all_devices": true})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	res = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

// TestContentRoutes 测试曲库浏览、喜欢和播放记录
func TestContentRoutes(t *testing.T) {
	s := newTestServer(t)
	song := s.seedSong(t)
	_, token := s.user(t, "carol", false)
	songPath := fmt.Sprintf("/api/v1/content/songs/%d", song.ID)

	res := s.do(http.MethodGet, songPath, "", nil)
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.EqualValues(t, 1, res.data(t)["count"])

	res = s.do(http.MethodGet, songPath+"?just_get=true", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, 1, res.data(t)["count"])

	res = s.do(http.MethodGet, songPath, token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, 2, res.data(t)["count"])

	res = s.do(http.MethodGet, "/api/v1/content/songs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = s.do(http.MethodGet, "/api/v1/content/songs/999", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = s.do(http.MethodGet, "/api/v1/content/songs", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	t.Run("likes", func(t *testing.T) {
		likePath := fmt.Sprintf("/api/v1/content/liked-songs/%d", song.ID)

		res := s.do(http.MethodPost, "/api/v1/content/liked-songs", "", map[string]uint{"song_id": song.ID})
		assert.Equal(t, http.StatusUnauthorized, res.status)

		res = s.do(http.MethodPost, "/api/v1/content/liked-songs", token, map[string]uint{"song_id": song.ID})
		require.Equal(t, http.StatusCreated, res.status, string(res.body))

		res = s.do(http.MethodGet, likePath, token, nil)
		require.Equal(t, http.StatusOK, res.status)
		assert.Equal(t, true, res.data(t)["liked"])

		res = s.do(http.MethodDelete, likePath, token, nil)
		assert.Equal(t, http.StatusNoContent, res.status)

		res = s.do(http.MethodDelete, likePath, token, nil)
		assert.Equal(t, http.StatusNotFound, res.status)
	})

	t.Run("history", func(t *testing.T) {
		res := s.do(http.MethodGet, "/api/v1/content/history", token, nil)
		require.Equal(t, http.StatusOK, res.status)
		assert.EqualValues(t, 1, res.data(t)["total"])

		res = s.do(http.MethodDelete, "/api/v1/content/history", token, nil)
		require.Equal(t, http.StatusNoContent, res.status)

		res = s.do(http.MethodGet, "/api/v1/content/history", token, nil)
		assert.EqualValues(t, 0, res.data(t)["total"])
	})

	t.Run("search", func(t *testing.T) {
		res := s.do(http.MethodGet, "/api/v1/content/search?q=neon", "", nil)
		require.Equal(t, http.StatusOK, res.status)
		songs, _ := res.data(t)["songs"].([]interface{})
		assert.Len(t, songs, 1)

		res = s.do(http.MethodGet, "/api/v1/content/search", "", nil)
		assert.Equal(t, http.StatusBadRequest, res.status)
	})

	res = s.do(http.MethodGet, "/api/v1/content/get-slides", "", nil)
	require.Equal(t, http.StatusOK, res.status)
}

// TestPlaylistRoutes 测试歌单的权限和播放导航
func TestPlaylistRoutes(t *testing.T) {
	s := newTestServer(t)
	song := s.seedSong(t)
	_, owner := s.user(t, "dave", false)
	_, other := s.user(t, "erin", false)

	res := s.do(http.MethodPost, "/api/v1/playlists", "", map[string]string{"name": "Mix"})
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = s.do(http.MethodPost, "/api/v1/playlists", owner, map[string]string{"name": "Mix"})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	id := uint(res.data(t)["id"].(float64))
	base := fmt.Sprintf("/api/v1/playlists/%d", id)

	res = s.do(http.MethodPost, base+"/songs", owner, map[string][]uint{"song_ids": {song.ID}})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = s.do(http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = s.do(http.MethodPut, base, other, map[string]string{"privacy_type": "Public"})
	assert.Equal(t, http.StatusForbidden, res.status)

	res = s.do(http.MethodPut, base, owner, map[string]string{"privacy_type": "Public"})
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	res = s.do(http.MethodGet, base+"/seek?loop=true", "", nil)
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.NotNil(t, res.data(t)["next"])

	res = s.do(http.MethodGet, base+"/seek?current=9999", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = s.do(http.MethodGet, base+"/random", other, nil)
	assert.Equal(t, http.StatusOK, res.status)

	res = s.do(http.MethodDelete, base, owner, nil)
	assert.Equal(t, http.StatusNoContent, res.status)
}

// TestManageRoutes 测试管理接口只对管理员开放
func TestManageRoutes(t *testing.T) {
	s := newTestServer(t)
	_, user := s.user(t, "frank", false)
	_, staff := s.user(t, "grace", true)

	res := s.do(http.MethodPost, "/api/v1/manage/tags", user, map[string]string{"name": "ambient"})
	assert.Equal(t, http.StatusForbidden, res.status)

	res = s.do(http.MethodPost, "/api/v1/manage/tags", staff, map[string]string{"name": "ambient"})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = s.do(http.MethodPost, "/api/v1/manage/tags", staff, map[string]string{"name": "ambient"})
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = s.do(http.MethodPost, "/api/v1/song-requests/handle", user, map[string]string{"name": "Lost Track", "description": "Live version"})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	requestID := uint(res.data(t)["id"].(float64))

	res = s.do(http.MethodGet, "/api/v1/song-requests/handle", user, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.Len(t, res.data(t)["list"], 1)

	// 超大页码返回空页而不是第一页
	res = s.do(http.MethodGet, "/api/v1/song-requests/handle?page=9223372036854775807", user, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.Empty(t, res.data(t)["list"])
	assert.EqualValues(t, 1, res.data(t)["total"])
	assert.EqualValues(t, response.MaxPage, res.data(t)["page"])

	res = s.do(http.MethodPost, fmt.Sprintf("/api/v1/manage/song-requests/%d/answer", requestID), staff,
		map[string]string{"status": "Accepted", "answer": "Enjoy"})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.Equal(t, "Accepted", res.data(t)["status"])
}

// TestShareRoutes 测试分享页对爬虫和普通浏览器的不同响应
func TestShareRoutes(t *testing.T) {
	s := newTestServer(t)
	song := s.seedSong(t)
	path := fmt.Sprintf("/share/content/songs/%d", song.ID)

	res := s.do(http.MethodGet, path, "", nil, "User-Agent", "Mozilla/5.0")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, fmt.Sprintf("https://app.example.com/song/%d", song.ID), res.header.Get("Location"))

	res = s.do(http.MethodGet, path, "", nil, "User-Agent", "facebookexternalhit/1.1")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(res.body), `<meta property="og:title" content="Neon">`)

	res = s.do(http.MethodGet, "/share/content/albums/404", "", nil, "User-Agent", "Twitterbot/1.0")
	assert.Equal(t, http.StatusNotFound, res.status)
}
