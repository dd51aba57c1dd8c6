package game

import (
	"sync"
	"testing"
	"time"

	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/model"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	catSeg = geometry.Seg(geometry.Vec(0, 0), geometry.Vec(2, 2))
	dogSeg = geometry.Seg(geometry.Vec(0, 2), geometry.Vec(0, 4))
)

// newTestGame builds a 3x5 grid with "cat" on the diagonal and "dog" going down.
func newTestGame(t *testing.T) *model.Game {
	t.Helper()
	p, err := puzzle.FromTable(
		[]string{"cxx", "xax", "dxt", "oxx", "gxx"},
		3, 5,
		[]geometry.Segment{catSeg, dogSeg},
		[]string{"cat", "dog"},
	)
	require.NoError(t, err)
	return model.NewGame("test", "owner", p)
}

func TestTracker_Submit(t *testing.T) {
	tests := []struct {
		name        string
		submissions [][]geometry.Segment
		wantResults []bool
		wantFound   int
		wantDone    bool
	}{
		{
			name:        "正常系: 1つ正解",
			submissions: [][]geometry.Segment{{catSeg}},
			wantResults: []bool{true},
			wantFound:   1,
			wantDone:    false,
		},
		{
			name:        "正常系: 逆向きでも正解",
			submissions: [][]geometry.Segment{{geometry.Seg(catSeg.End, catSeg.Start)}},
			wantResults: []bool{true},
			wantFound:   1,
			wantDone:    false,
		},
		{
			name:        "正常系: 全問正解でクリア",
			submissions: [][]geometry.Segment{{catSeg, dogSeg}},
			wantResults: []bool{true, true},
			wantFound:   2,
			wantDone:    true,
		},
		{
			name:        "異常系: 不正解",
			submissions: [][]geometry.Segment{{geometry.Seg(geometry.Vec(0, 0), geometry.Vec(2, 0))}},
			wantResults: []bool{false},
			wantFound:   0,
			wantDone:    false,
		},
		{
			name:        "正常系: 既に見つけた解答も正解扱い",
			submissions: [][]geometry.Segment{{catSeg}, {catSeg}},
			wantResults: []bool{true},
			wantFound:   1,
			wantDone:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker()
			g := newTestGame(t)

			var res SubmitResult
			for _, s := range tt.submissions {
				res = tracker.Submit(g, "player", s)
			}

			assert.Equal(t, tt.wantResults, res.Results)
			assert.Equal(t, tt.wantFound, res.Found)
			assert.Equal(t, 2, res.Total)
			assert.Equal(t, tt.wantDone, res.Finished)
		})
	}
}

func TestTracker_JustFinishedOnce(t *testing.T) {
	tracker := NewTracker()
	g := newTestGame(t)

	first := tracker.Submit(g, "player", []geometry.Segment{catSeg})
	assert.False(t, first.JustFinished)
	assert.Equal(t, []geometry.Segment{catSeg}, first.NewlyFound)

	second := tracker.Submit(g, "player", []geometry.Segment{dogSeg})
	assert.True(t, second.JustFinished)
	assert.True(t, second.Finished)

	third := tracker.Submit(g, "player", []geometry.Segment{dogSeg})
	assert.False(t, third.JustFinished)
	assert.True(t, third.Finished)
	assert.Empty(t, third.NewlyFound)
}

func TestTracker_PlayersAreIndependent(t *testing.T) {
	tracker := NewTracker()
	g := newTestGame(t)

	tracker.Submit(g, "alice", []geometry.Segment{catSeg})

	assert.Equal(t, []geometry.Segment{catSeg}, tracker.Found(g.ID, "alice"))
	assert.Empty(t, tracker.Found(g.ID, "bob"))
}

func TestTracker_Participation(t *testing.T) {
	tracker := NewTracker()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	tracker.now = func() time.Time { return now }
	g := newTestGame(t)

	_, ok := tracker.Participation(g.ID, "player")
	assert.False(t, ok)

	p := tracker.Begin(g.ID, "player")
	require.NotNil(t, p.StartTime)
	assert.Equal(t, start, *p.StartTime)

	now = start.Add(time.Minute)
	tracker.Submit(g, "player", []geometry.Segment{catSeg, dogSeg})

	p, ok = tracker.Participation(g.ID, "player")
	require.True(t, ok)
	assert.True(t, p.Finished())
	assert.Equal(t, time.Minute, p.Duration())
}

func TestTracker_ResetGame(t *testing.T) {
	tracker := NewTracker()
	g := newTestGame(t)
	tracker.Submit(g, "player", []geometry.Segment{catSeg})

	tracker.ResetGame(g.ID)

	assert.Empty(t, tracker.Found(g.ID, "player"))
	_, ok := tracker.Participation(g.ID, "player")
	assert.False(t, ok)
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()
	g := newTestGame(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Submit(g, "player", []geometry.Segment{catSeg})
			tracker.Found(g.ID, "player")
		}()
	}
	wg.Wait()

	assert.Len(t, tracker.Found(g.ID, "player"), 1)
}
