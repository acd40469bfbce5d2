package database

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuoteAssetPath 测试资源路径编码
func TestQuoteAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"songs-file/A01 - One.mp3", "songs-file/A01%20-%20One.mp3"},
		{"album-images/300x300/Rock & Roll (2019).png", "album-images/300x300/Rock%20%26%20Roll%20%282019%29.png"},
		{"artist-images/Beyoncé.png", "artist-images/Beyonc%C3%A9.png"},
		{"plain_name-1.0~x", "plain_name-1.0~x"},
	}
	for _, tt := range tests {
		got := QuoteAssetPath(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, UnquoteAssetPath(got))
	}

	assert.Equal(t, "bad%zz", UnquoteAssetPath("bad%zz"))
}

// TestContainsPattern 测试LIKE通配符转义
func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Blue%", ContainsPattern("Blue"))
	assert.Equal(t, `%100\% Pure%`, ContainsPattern("100% Pure"))
	assert.Equal(t, `%a\_b\\c%`, ContainsPattern(`a_b\c`))
}

// TestSQLiteLower 测试SQLite的 lower() 转换非ASCII字母
func TestSQLiteLower(t *testing.T) {
	db, err := NewMemoryDB(t.Name())
	require.NoError(t, err)

	var lowered string
	require.NoError(t, db.Raw("SELECT LOWER(?)", "ÉTÉ Ólafur").Scan(&lowered).Error)
	assert.Equal(t, "été ólafur", lowered)

	var isNull bool
	require.NoError(t, db.Raw("SELECT LOWER(NULL) IS NULL").Scan(&isNull).Error)
	assert.True(t, isNull)

	require.NoError(t, db.Create(&Artist{Name: "Ólafur Arnalds"}).Error)
	var artists []Artist
	require.NoError(t, db.Scopes(ContainsFold("name", "ólafur")).Find(&artists).Error)
	require.Len(t, artists, 1)
	require.NoError(t, db.Scopes(ContainsFold("name", "ÓLAFUR ARNALDS")).Find(&artists).Error)
	assert.Len(t, artists, 1)
}

// TestCatalogHooks 测试专辑、歌手和歌曲的路径生成
func TestCatalogHooks(t *testing.T) {
	db, err := NewMemoryDB(t.Name())
	require.NoError(t, err)

	album := Album{Code: "A07", Title: "Sea & Sky", Year: 2018}
	require.NoError(t, db.Create(&album).Error)
	assert.Equal(t, "album-images/300x300/A07%20-%20Sea%20%26%20Sky%20%282018%29.png", album.Thumbnail300x300)
	assert.Equal(t, "album-images/1200x1200/A07%20-%20Sea%20%26%20Sky%20%282018%29.png", album.Thumbnail1200x1200)
	assert.Equal(t, []string{
		"album-images/300x300/A07 - Sea & Sky (2018).png",
		"album-images/1200x1200/A07 - Sea & Sky (2018).png",
	}, album.AssetPaths())

	artist := Artist{Name: "Low Tide"}
	require.NoError(t, db.Create(&artist).Error)
	assert.Equal(t, "artist-images/300x300/Low%20Tide.png", artist.Thumbnail300x300)

	song := Song{AlbumID: album.ID, OriginalName: "Drift"}
	require.NoError(t, db.Create(&song).Error)
	assert.Equal(t, "A07 - Drift.mp3", song.Title)
	assert.Equal(t, "songs-file/A07%20-%20Drift.mp3", song.FileRef)
	assert.Equal(t, "songs-file/A07 - Drift.mp3", song.AssetPath())

	var stored Song
	require.NoError(t, db.First(&stored, song.ID).Error)
	assert.Equal(t, "lrc/"+itoa(song.ID)+".lrc", stored.LyricsRef)

	// 标题和文件路径在更新时保持不变
	stored.OriginalName = "Drift (Live)"
	stored.Title = "changed.mp3"
	stored.FileRef = "changed"
	require.NoError(t, db.Save(&stored).Error)

	var reloaded Song
	require.NoError(t, db.First(&reloaded, song.ID).Error)
	assert.Equal(t, "Drift (Live)", reloaded.OriginalName)
	assert.Equal(t, "A07 - Drift.mp3", reloaded.Title)
	assert.Equal(t, "songs-file/A07%20-%20Drift.mp3", reloaded.FileRef)
}

// TestLikedCountHooks 测试喜欢记录增删时同步 liked_count
func TestLikedCountHooks(t *testing.T) {
	db, err := NewMemoryDB(t.Name())
	require.NoError(t, err)

	user := User{Username: "u", Email: "u@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	album := Album{Code: "B01", Title: "Hooks", Year: 2020}
	require.NoError(t, db.Create(&album).Error)
	song := Song{AlbumID: album.ID, OriginalName: "Counted"}
	require.NoError(t, db.Create(&song).Error)

	like := UserLikedSong{UserID: user.ID, SongID: song.ID}
	require.NoError(t, db.Create(&like).Error)
	require.NoError(t, db.First(&song, song.ID).Error)
	assert.EqualValues(t, 1, song.LikedCount)

	require.NoError(t, db.Delete(&like).Error)
	require.NoError(t, db.First(&song, song.ID).Error)
	assert.EqualValues(t, 0, song.LikedCount)
}

// TestPlaylistVisibility 测试歌单可见性
func TestPlaylistVisibility(t *testing.T) {
	private := Playlist{UserID: 1, PrivacyType: PrivacyPrivate}
	public := Playlist{UserID: 1, PrivacyType: PrivacyPublic}

	assert.True(t, private.VisibleTo(1))
	assert.False(t, private.VisibleTo(2))
	assert.False(t, private.VisibleTo(0))
	assert.True(t, public.VisibleTo(0))
	assert.True(t, ValidPrivacyType("Public"))
	assert.False(t, ValidPrivacyType("public"))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
