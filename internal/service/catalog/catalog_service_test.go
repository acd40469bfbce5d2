package catalog

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"gorm.io/gorm"
)

// recordingStore 记录删除请求的远程存储
type recordingStore struct {
	mu      sync.Mutex
	deleted []string
	fail    map[string]bool
}

func (r *recordingStore) DeleteFile(_ context.Context, path, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[path] {
		return errors.Of(errors.ErrStorageDeleteFailed)
	}
	r.deleted = append(r.deleted, path)
	return nil
}

func (r *recordingStore) FileExists(context.Context, string) (bool, error) { return true, nil }
func (r *recordingStore) TestConnection(context.Context) error             { return nil }
func (r *recordingStore) Provider() string                                 { return "recording" }

type fixture struct {
	db      *gorm.DB
	browse  CatalogService
	manage  ManageService
	store   *recordingStore
	albums  map[string]*database.Album
	artists map[string]*database.Artist
	tags    map[string]*database.Tag
	songs   map[string]*database.Song
}

// setupCatalog 创建两张专辑、三位歌手、两个标签和四首歌曲
func setupCatalog(t *testing.T) *fixture {
	db, err := database.NewMemoryDB(t.Name())
	require.NoError(t, err)

	store := &recordingStore{fail: map[string]bool{}}
	f := &fixture{
		db:      db,
		browse:  NewCatalogService(db),
		manage:  NewManageService(db, store),
		store:   store,
		albums:  map[string]*database.Album{},
		artists: map[string]*database.Artist{},
		tags:    map[string]*database.Tag{},
		songs:   map[string]*database.Song{},
	}
	ctx := context.Background()

	for _, a := range []CreateAlbumRequest{
		{Code: "A01", Title: "Morning Light", Year: 2019},
		{Code: "B02", Title: "Night Drive", Year: 2022},
	} {
		album, err := f.manage.CreateAlbum(ctx, &a)
		require.NoError(t, err)
		f.albums[a.Code] = album
	}
	for _, name := range []string{"Aria", "Bass Line", "Choir 100%"} {
		artist, err := f.manage.CreateArtist(ctx, &CreateArtistRequest{Name: name})
		require.NoError(t, err)
		f.artists[name] = artist
	}
	for _, name := range []string{"chill", "synthwave"} {
		tag, err := f.manage.CreateTag(ctx, &CreateTagRequest{Name: name})
		require.NoError(t, err)
		f.tags[name] = tag
	}

	songs := []struct {
		name    string
		album   string
		artists []string
		tags    []string
	}{
		{"Sunrise", "A01", []string{"Aria"}, []string{"chill"}},
		{"Coffee", "A01", []string{"Aria", "Bass Line"}, nil},
		{"Highway", "B02", []string{"Bass Line"}, []string{"synthwave"}},
		{"Neon_Rain", "B02", []string{"Choir 100%"}, []string{"synthwave", "chill"}},
	}
	for _, s := range songs {
		req := &CreateSongRequest{AlbumID: f.albums[s.album].ID, OriginalName: s.name, Duration: 200}
		for _, a := range s.artists {
			req.ArtistIDs = append(req.ArtistIDs, f.artists[a].ID)
		}
		for _, tg := range s.tags {
			req.TagIDs = append(req.TagIDs, f.tags[tg].ID)
		}
		song, err := f.manage.CreateSong(ctx, req)
		require.NoError(t, err)
		f.songs[s.name] = song
	}
	return f
}

func songNames(songs []database.Song) []string {
	names := make([]string, 0, len(songs))
	for _, s := range songs {
		names = append(names, s.OriginalName)
	}
	return names
}

// TestCreateSongDerivesFileRefs 测试歌曲文件路径的生成与不可变
func TestCreateSongDerivesFileRefs(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	song := f.songs["Sunrise"]

	assert.Equal(t, "A01 - Sunrise.mp3", song.Title)
	assert.Equal(t, "songs-file/A01%20-%20Sunrise.mp3", song.FileRef)
	assert.Equal(t, "lrc/"+itoa(song.ID)+".lrc", song.LyricsRef)
	assert.Equal(t, "songs-file/A01 - Sunrise.mp3", song.AssetPath())
	assert.Len(t, song.Artists, 1)
	assert.Equal(t, "Morning Light", song.Album.Title)

	album := f.albums["A01"]
	assert.Equal(t, "album-images/300x300/A01%20-%20Morning%20Light%20%282019%29.png", album.Thumbnail300x300)
	assert.Equal(t, "artist-images/1200x1200/Choir%20100%25.png", f.artists["Choir 100%"].Thumbnail1200x1200)

	t.Run("更新元数据不改变文件路径", func(t *testing.T) {
		name := "Sunrise (Remastered)"
		otherAlbum := f.albums["B02"].ID
		artists := []uint{f.artists["Bass Line"].ID}
		updated, err := f.manage.UpdateSong(ctx, song.ID, &UpdateSongRequest{
			OriginalName: &name,
			AlbumID:      &otherAlbum,
			ArtistIDs:    &artists,
		})
		require.NoError(t, err)
		assert.Equal(t, name, updated.OriginalName)
		assert.Equal(t, "Night Drive", updated.Album.Title)
		assert.Equal(t, "A01 - Sunrise.mp3", updated.Title)
		assert.Equal(t, song.FileRef, updated.FileRef)
		assert.Equal(t, song.LyricsRef, updated.LyricsRef)
		require.Len(t, updated.Artists, 1)
		assert.Equal(t, "Bass Line", updated.Artists[0].Name)
		assert.Len(t, updated.Tags, 1)
	})

	t.Run("重复标题", func(t *testing.T) {
		_, err := f.manage.CreateSong(ctx, &CreateSongRequest{AlbumID: f.albums["B02"].ID, OriginalName: "Highway"})
		assert.True(t, errors.HasCode(err, errors.ErrCatalogAlreadyExists))
	})

	t.Run("专辑或歌手不存在", func(t *testing.T) {
		_, err := f.manage.CreateSong(ctx, &CreateSongRequest{AlbumID: 999, OriginalName: "Lost"})
		assert.True(t, errors.HasCode(err, errors.ErrAlbumNotFound))

		_, err = f.manage.CreateSong(ctx, &CreateSongRequest{AlbumID: album.ID, OriginalName: "Lost", ArtistIDs: []uint{999}})
		assert.True(t, errors.HasCode(err, errors.ErrArtistNotFound))
	})
}

// TestListSongs 测试歌曲过滤列表
func TestListSongs(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()

	songs, total, err := f.browse.ListSongs(ctx, SongFilter{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, []string{"Neon_Rain", "Highway", "Coffee", "Sunrise"}, songNames(songs))

	songs, total, err = f.browse.ListSongs(ctx, SongFilter{ArtistID: f.artists["Bass Line"].ID}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.ElementsMatch(t, []string{"Coffee", "Highway"}, songNames(songs))

	songs, _, err = f.browse.ListSongs(ctx, SongFilter{TagID: f.tags["chill"].ID, AlbumID: f.albums["B02"].ID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Neon_Rain"}, songNames(songs))

	songs, total, err = f.browse.ListSongs(ctx, SongFilter{}, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, []string{"Highway", "Coffee"}, songNames(songs))

	albums, total, err := f.browse.ListAlbums(ctx, AlbumFilter{Title: "night"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "B02", albums[0].Code)

	artists, _, err := f.browse.ListArtists(ctx, "100%", 10, 0)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Choir 100%", artists[0].Name)

	_, err = f.browse.GetTag(ctx, 999)
	assert.True(t, errors.HasCode(err, errors.ErrTagNotFound))
}

// TestSearchSongs 测试按字段筛选和排序
func TestSearchSongs(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	require.NoError(t, f.db.Model(&database.Song{}).Where("id = ?", f.songs["Coffee"].ID).UpdateColumn("play_count", 9).Error)
	require.NoError(t, f.db.Model(&database.Song{}).Where("id = ?", f.songs["Highway"].ID).UpdateColumn("play_count", 4).Error)

	cases := []struct {
		name     string
		q        string
		searchBy string
		sortBy   string
		want     []string
	}{
		{"无条件按ID倒序", "", "", "", []string{"Neon_Rain", "Highway", "Coffee", "Sunrise"}},
		{"默认按名称", "o", "", "", []string{"Neon_Rain", "Coffee"}},
		{"下划线按字面匹配", "n_r", "1", "", []string{"Neon_Rain"}},
		{"按歌手", "aria", "2", "", []string{"Coffee", "Sunrise"}},
		{"按专辑", "MORNING", "3", "", []string{"Coffee", "Sunrise"}},
		{"按标签", "synth", "4", "", []string{"Neon_Rain", "Highway"}},
		{"按专辑年份", "2019", "5", "", []string{"Coffee", "Sunrise"}},
		{"最多播放", "", "", "2", []string{"Coffee", "Highway", "Neon_Rain", "Sunrise"}},
		{"专辑年份最新", "", "", "3", []string{"Neon_Rain", "Highway", "Coffee", "Sunrise"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ParseSongQuery(tc.q, tc.searchBy, tc.sortBy)
			require.NoError(t, err)
			songs, total, err := f.browse.SearchSongs(ctx, q, 25, 0)
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), total)
			assert.Equal(t, tc.want, songNames(songs))
		})
	}
}

// TestParseSongQuery 测试筛选参数校验
func TestParseSongQuery(t *testing.T) {
	q, err := ParseSongQuery("rain", "", "")
	require.NoError(t, err)
	assert.Equal(t, SearchByName, q.SearchBy)
	assert.Equal(t, SortByNewest, q.SortBy)

	q, err = ParseSongQuery("", "", "")
	require.NoError(t, err)
	assert.Equal(t, SearchByNone, q.SearchBy)

	for _, tc := range []struct{ q, searchBy, sortBy, field string }{
		{"x", "6", "", "search_by"},
		{"x", "abc", "", "search_by"},
		{"x", "1", "0", "sort_by"},
		{"x", "1", "4", "sort_by"},
		{"nineteen", "5", "", "q"},
	} {
		_, err := ParseSongQuery(tc.q, tc.searchBy, tc.sortBy)
		require.Error(t, err)
		appErr, ok := errors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidParams, appErr.Code)
		assert.Equal(t, tc.field, appErr.Field)
	}
}

// TestDeleteCatalog 测试删除时清理远程文件和关联记录
func TestDeleteCatalog(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()

	user := database.User{Username: "owner", Email: "owner@example.com", Password: "x", IsActive: true}
	require.NoError(t, f.db.Create(&user).Error)
	playlist := database.Playlist{UserID: user.ID, Name: "mix"}
	require.NoError(t, f.db.Create(&playlist).Error)
	require.NoError(t, f.db.Create(&database.PlaylistSong{PlaylistID: playlist.ID, SongID: f.songs["Highway"].ID}).Error)
	require.NoError(t, f.db.Create(&database.UserLikedSong{UserID: user.ID, SongID: f.songs["Highway"].ID}).Error)

	t.Run("删除歌曲时远程删除失败不影响数据库删除", func(t *testing.T) {
		f.store.fail["songs-file/B02 - Highway.mp3"] = true
		require.NoError(t, f.manage.DeleteSong(ctx, f.songs["Highway"].ID))

		_, err := f.browse.GetSong(ctx, f.songs["Highway"].ID)
		assert.True(t, errors.HasCode(err, errors.ErrSongNotFound))

		var entries, likes int64
		f.db.Model(&database.PlaylistSong{}).Where("song_id = ?", f.songs["Highway"].ID).Count(&entries)
		f.db.Model(&database.UserLikedSong{}).Where("song_id = ?", f.songs["Highway"].ID).Count(&likes)
		assert.Zero(t, entries)
		assert.Zero(t, likes)
	})

	t.Run("删除歌手", func(t *testing.T) {
		require.NoError(t, f.manage.DeleteArtist(ctx, f.artists["Aria"].ID))
		assert.Contains(t, f.store.deleted, "artist-images/300x300/Aria.png")
		assert.Contains(t, f.store.deleted, "artist-images/1200x1200/Aria.png")

		song, err := f.browse.GetSong(ctx, f.songs["Coffee"].ID)
		require.NoError(t, err)
		require.Len(t, song.Artists, 1)
		assert.Equal(t, "Bass Line", song.Artists[0].Name)
	})

	t.Run("删除专辑同时删除其歌曲", func(t *testing.T) {
		require.NoError(t, f.manage.DeleteAlbum(ctx, f.albums["A01"].ID))
		assert.Contains(t, f.store.deleted, "album-images/300x300/A01 - Morning Light (2019).png")
		assert.Contains(t, f.store.deleted, "songs-file/A01 - Sunrise.mp3")
		assert.Contains(t, f.store.deleted, "songs-file/A01 - Coffee.mp3")

		_, total, err := f.browse.ListSongs(ctx, SongFilter{}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("删除不存在的记录", func(t *testing.T) {
		assert.True(t, errors.HasCode(f.manage.DeleteAlbum(ctx, 999), errors.ErrAlbumNotFound))
		assert.True(t, errors.HasCode(f.manage.DeleteTag(ctx, 999), errors.ErrTagNotFound))
	})
}

// TestSlides 测试首页轮播选择
func TestSlides(t *testing.T) {
	cfg := SlidesConfig{
		InterestedSlideIDs: []int{4},
		Slides: []Slide{
			{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"}, {ID: 4, Title: "four"},
		},
	}
	svc := NewSlideService(cfg)

	for i := 0; i < 10; i++ {
		slides := svc.Slides()
		require.Len(t, slides, 3)
		assert.Equal(t, 4, slides[0].ID)
		assert.NotEqual(t, slides[1].ID, slides[2].ID)
	}

	few := NewSlideService(SlidesConfig{Slides: []Slide{{ID: 1}}})
	assert.Len(t, few.Slides(), 1)

	empty, err := LoadSlides("testdata/does-not-exist.yaml")
	require.NoError(t, err)
	assert.Empty(t, empty.Slides)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
