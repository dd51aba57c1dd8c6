package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{name: "正常系: テキスト出力", args: []string{"-seed", "1", "cat", "dog"}, wantCode: 0, wantStdout: "Puzzle "},
		{name: "正常系: JSON出力", args: []string{"-seed", "1", "-json", "cat"}, wantCode: 0, wantStdout: `"solutions"`},
		{name: "異常系: 単語なし", args: []string{"-seed", "1"}, wantCode: 2},
		{name: "異常系: 試行回数ゼロ", args: []string{"-attempts", "0", "cat"}, wantCode: 2},
		{name: "異常系: 不明なフラグ", args: []string{"-nope"}, wantCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, stderr.String())
			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout)
			}
		})
	}
}

func TestRun_JSONRecord(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"-seed", "5", "-json", "apple", "pear"}, &stdout, &stderr))

	var rec puzzle.Record
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
	p, err := puzzle.FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear"}, p.Words())
}

func TestRun_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-seed", "3", "-png", path, "-highlight", "moon", "star"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
	assert.True(t, strings.Contains(stderr.String(), "png written"))
}
