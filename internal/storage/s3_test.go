package storage

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPuzzle(t *testing.T) *puzzle.Puzzle {
	t.Helper()
	seg := geometry.Seg(geometry.Vec(0, 0), geometry.Vec(2, 0))
	p, err := puzzle.FromTable([]string{"cat", "xyz"}, 3, 2, []geometry.Segment{seg}, []string{"cat"})
	require.NoError(t, err)
	return p
}

func TestS3Client_SavePuzzle(t *testing.T) {
	tests := []struct {
		name    string
		putErr  error
		wantErr bool
	}{
		{name: "正常系: レコードを保存できる"},
		{name: "異常系: アップロード失敗", putErr: errors.New("s3 down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockS3 := testutil.NewMockS3Client()
			mockS3.PutErr = tt.putErr
			client := NewS3Client(mockS3, "https://test.cloudfront.net")

			key, err := client.SavePuzzle(context.Background(), "game-1", newTestPuzzle(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "puzzles/game-1/record.json", key)
			assert.Equal(t, "application/json", mockS3.ContentTypes[key])
			assert.JSONEq(t,
				`{"columns":3,"rows":2,"table":["cat","xyz"],"words":["cat"],"solutions":[[0,0,2,0]]}`,
				string(mockS3.UploadedData[key]),
			)
		})
	}
}

func TestS3Client_LoadPuzzle(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 保存したパズルを読み戻せる", func(t *testing.T) {
		mockS3 := testutil.NewMockS3Client()
		client := NewS3Client(mockS3, "https://test.cloudfront.net")
		p := newTestPuzzle(t)

		_, err := client.SavePuzzle(ctx, "game-1", p)
		require.NoError(t, err)

		got, err := client.LoadPuzzle(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, p.Record(), got.Record())
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		client := NewS3Client(testutil.NewMockS3Client(), "")

		_, err := client.LoadPuzzle(ctx, "missing")
		assert.Error(t, err)
	})

	t.Run("異常系: 壊れたレコード", func(t *testing.T) {
		mockS3 := testutil.NewMockS3Client()
		mockS3.Objects["puzzles/bad/record.json"] = []byte(`{"columns":2,"rows":2,"table":["ab"]}`)
		client := NewS3Client(mockS3, "")

		_, err := client.LoadPuzzle(ctx, "bad")
		assert.ErrorIs(t, err, puzzle.ErrMalformedRecord)
	})
}

func TestS3Client_ListPuzzles(t *testing.T) {
	t.Run("正常系: レコードのあるゲームだけ返す", func(t *testing.T) {
		mockS3 := testutil.NewMockS3Client()
		mockS3.Objects = map[string][]byte{
			"puzzles/a/record.json": []byte("{}"),
			"puzzles/b/record.json": []byte("{}"),
			"puzzles/b/1234.png":    []byte("png"),
		}
		client := NewS3Client(mockS3, "")

		ids, err := client.ListPuzzles(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, ids)
	})

	t.Run("異常系: 一覧取得失敗", func(t *testing.T) {
		mockS3 := testutil.NewMockS3Client()
		mockS3.ListErr = errors.New("denied")
		client := NewS3Client(mockS3, "")

		_, err := client.ListPuzzles(context.Background())
		assert.Error(t, err)
	})
}

func TestS3Client_UploadImage(t *testing.T) {
	mockS3 := testutil.NewMockS3Client()
	client := NewS3Client(mockS3, "https://test.cloudfront.net/")

	url, err := client.UploadImage(context.Background(), "game-1", newTestPuzzle(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://test.cloudfront.net/puzzles/game-1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	keys := mockS3.Uploaded()
	require.Len(t, keys, 1)
	assert.Equal(t, "image/png", mockS3.ContentTypes[keys[0]])

	img, err := png.Decode(bytes.NewReader(mockS3.UploadedData[keys[0]]))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)

	// 再アップロードは別キーになる
	url2, err := client.UploadImage(context.Background(), "game-1", newTestPuzzle(t))
	require.NoError(t, err)
	assert.NotEqual(t, url, url2)
}

func TestS3Client_UploadImage_EmptyID(t *testing.T) {
	client := NewS3Client(testutil.NewMockS3Client(), "")

	_, err := client.UploadImage(context.Background(), "", newTestPuzzle(t))
	assert.Error(t, err)
}
