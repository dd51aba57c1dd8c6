// Package storage archives generated puzzles and their images in S3.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/render"
)

const puzzlePrefix = "puzzles/"

// S3ClientInterface defines the interface for S3 operations.
type S3ClientInterface interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	ListObjects(ctx context.Context, prefix string) ([]string, error)
}

// S3Client stores puzzle records and rendered boards.
type S3Client struct {
	client        S3ClientInterface
	cloudfrontURL string
}

// NewS3Client creates a new S3Client.
func NewS3Client(client S3ClientInterface, cloudfrontURL string) *S3Client {
	return &S3Client{
		client:        client,
		cloudfrontURL: strings.TrimSuffix(cloudfrontURL, "/"),
	}
}

func recordKey(gameID string) string {
	return puzzlePrefix + gameID + "/record.json"
}

// SavePuzzle writes the puzzle record of a game and returns its key.
func (c *S3Client) SavePuzzle(ctx context.Context, gameID string, p *puzzle.Puzzle) (string, error) {
	data, err := json.Marshal(p.Record())
	if err != nil {
		return "", fmt.Errorf("failed to encode puzzle record: %w", err)
	}

	key := recordKey(gameID)
	if err := c.client.PutObject(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("failed to upload puzzle record: %w", err)
	}
	return key, nil
}

// LoadPuzzle reads back the puzzle record of a game.
func (c *S3Client) LoadPuzzle(ctx context.Context, gameID string) (*puzzle.Puzzle, error) {
	data, err := c.client.GetObject(ctx, recordKey(gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to get puzzle record: %w", err)
	}

	var rec puzzle.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode puzzle record: %w", err)
	}
	return puzzle.FromRecord(rec)
}

// ListPuzzles returns the IDs of every game with an archived record.
func (c *S3Client) ListPuzzles(ctx context.Context) ([]string, error) {
	keys, err := c.client.ListObjects(ctx, puzzlePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		// "puzzles/<id>/record.json" -> "<id>"
		if !strings.HasSuffix(key, "/record.json") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(key, puzzlePrefix), "/record.json")
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// UploadImage renders the board and uploads it under a fresh key, so a
// regenerated board never hits a stale CDN cache. Returns the CloudFront URL.
func (c *S3Client) UploadImage(ctx context.Context, gameID string, p *puzzle.Puzzle) (string, error) {
	if gameID == "" {
		return "", errors.New("empty game id")
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, p, render.DefaultOptions()); err != nil {
		return "", err
	}

	key := puzzlePrefix + gameID + "/" + uuid.New().String() + ".png"
	if err := c.client.PutObject(ctx, key, buf.Bytes(), "image/png"); err != nil {
		return "", fmt.Errorf("failed to upload puzzle image: %w", err)
	}

	return fmt.Sprintf("%s/%s", c.cloudfrontURL, key), nil
}
