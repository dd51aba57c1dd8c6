package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Vector
		want Vector
	}{
		{name: "加算", got: Vec(0, 2).Add(Vec(4, -3)), want: Vec(4, -1)},
		{name: "減算", got: Vec(0, 2).Sub(Vec(4, -3)), want: Vec(-4, 5)},
		{name: "スカラー倍", got: Vec(1, -1).Scale(4), want: Vec(4, -4)},
		{name: "スカラー倍: 負", got: Vec(-1, 0).Scale(-3), want: Vec(3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestVector_Normal(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		want Vector
	}{
		{name: "右", v: Vec(7, 0), want: Vec(1, 0)},
		{name: "上", v: Vec(0, -3), want: Vec(0, -1)},
		{name: "斜め", v: Vec(-5, 5), want: Vec(-1, 1)},
		{name: "単位ベクトルはそのまま", v: Vec(1, -1), want: Vec(1, -1)},
		{name: "ゼロはゼロ", v: Vec(0, 0), want: Vec(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Normal())
		})
	}
}

func TestVector_Less(t *testing.T) {
	assert.True(t, Vec(0, 9).Less(Vec(1, 0)))
	assert.True(t, Vec(1, 0).Less(Vec(1, 1)))
	assert.False(t, Vec(1, 1).Less(Vec(1, 1)))
	assert.False(t, Vec(2, 0).Less(Vec(1, 5)))
}

func TestVector_JSON(t *testing.T) {
	data, err := json.Marshal(Vec(3, -2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":3,"y":-2}`, string(data))
}

func TestDirections_AreUnitAndDistinct(t *testing.T) {
	seen := make(map[Vector]bool)
	for _, d := range Directions {
		assert.False(t, d.IsZero())
		assert.Equal(t, d, d.Normal())
		seen[d] = true
	}
	assert.Len(t, seen, 8)
}

func TestSegmentsIntersecting(t *testing.T) {
	tests := []struct {
		name string
		a    Segment
		b    Segment
		want bool
	}{
		{
			name: "交差する: 単純な交差",
			a:    Seg(Vec(2, 3), Vec(4, 1)),
			b:    Seg(Vec(0, 1), Vec(3, 3)),
			want: true,
		},
		{
			name: "交差する: 自分自身と逆向き",
			a:    Seg(Vec(2, 3), Vec(3, 2)),
			b:    Seg(Vec(3, 2), Vec(2, 3)),
			want: true,
		},
		{
			name: "交差しない: 離れている",
			a:    Seg(Vec(2, 3), Vec(4, 1)),
			b:    Seg(Vec(2, 0), Vec(6, 1)),
			want: false,
		},
		{
			name: "交差する: 端点を共有",
			a:    Seg(Vec(2, 3), Vec(4, 1)),
			b:    Seg(Vec(4, 1), Vec(6, 1)),
			want: true,
		},
		{
			name: "交差する: 端点が接する",
			a:    Seg(Vec(-2, 3), Vec(2, 0)),
			b:    Seg(Vec(2, 0), Vec(6, 1)),
			want: true,
		},
		{
			name: "交差しない: 平行で別の直線上",
			a:    Seg(Vec(0, 0), Vec(3, 0)),
			b:    Seg(Vec(0, 1), Vec(3, 1)),
			want: false,
		},
		{
			name: "交差する: 同一直線上で重ならない",
			a:    Seg(Vec(0, 0), Vec(2, 0)),
			b:    Seg(Vec(5, 0), Vec(8, 0)),
			want: true,
		},
		{
			name: "交差する: 同一直線上の斜め",
			a:    Seg(Vec(0, 0), Vec(2, 2)),
			b:    Seg(Vec(4, 4), Vec(6, 6)),
			want: true,
		},
		{
			name: "交差しない: 延長線上でのみ交わる",
			a:    Seg(Vec(0, 0), Vec(2, 0)),
			b:    Seg(Vec(4, -1), Vec(4, 3)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentsIntersecting(tt.a.Start, tt.a.End, tt.b.Start, tt.b.End)
			assert.Equal(t, tt.want, got)

			// 入れ替えても結果は同じ
			swapped := SegmentsIntersecting(tt.b.Start, tt.b.End, tt.a.Start, tt.a.End)
			assert.Equal(t, got, swapped)
		})
	}
}

func TestSegmentsIntersecting_DegeneratePanics(t *testing.T) {
	assert.Panics(t, func() {
		SegmentsIntersecting(Vec(1, 1), Vec(1, 1), Vec(0, 0), Vec(3, 0))
	})
	assert.Panics(t, func() {
		SegmentsIntersecting(Vec(0, 0), Vec(3, 0), Vec(2, 2), Vec(2, 2))
	})
}

func TestSegment_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a    Segment
		b    Segment
		want bool
	}{
		{
			name: "点と点: 同じ位置",
			a:    Seg(Vec(1, 1), Vec(1, 1)),
			b:    Seg(Vec(1, 1), Vec(1, 1)),
			want: true,
		},
		{
			name: "点と点: 異なる位置",
			a:    Seg(Vec(1, 1), Vec(1, 1)),
			b:    Seg(Vec(1, 2), Vec(1, 2)),
			want: false,
		},
		{
			name: "点と線分: 線分上",
			a:    Seg(Vec(2, 2), Vec(2, 2)),
			b:    Seg(Vec(0, 0), Vec(3, 3)),
			want: true,
		},
		{
			name: "点と線分: 延長線上",
			a:    Seg(Vec(5, 5), Vec(5, 5)),
			b:    Seg(Vec(0, 0), Vec(3, 3)),
			want: false,
		},
		{
			name: "点と線分: 線分外",
			a:    Seg(Vec(1, 2), Vec(1, 2)),
			b:    Seg(Vec(0, 0), Vec(3, 3)),
			want: false,
		},
		{
			name: "線分と線分",
			a:    Seg(Vec(2, 3), Vec(4, 1)),
			b:    Seg(Vec(0, 1), Vec(3, 3)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestSegment_Canonical(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want Segment
	}{
		{name: "既に正規形", seg: Seg(Vec(0, 0), Vec(3, 0)), want: Seg(Vec(0, 0), Vec(3, 0))},
		{name: "Xで反転", seg: Seg(Vec(3, 1), Vec(0, 4)), want: Seg(Vec(0, 4), Vec(3, 1))},
		{name: "X同値ならYで反転", seg: Seg(Vec(2, 5), Vec(2, 1)), want: Seg(Vec(2, 1), Vec(2, 5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seg.Canonical())
			assert.Equal(t, tt.want, tt.want.Canonical())
		})
	}
}

func TestSegment_Slide(t *testing.T) {
	s := Seg(Vec(1, 1), Vec(4, 1))

	assert.Equal(t, Seg(Vec(4, 1), Vec(7, 1)), s.Slide(1))
	assert.Equal(t, Seg(Vec(-2, 1), Vec(1, 1)), s.Slide(-1))
	assert.Equal(t, Vec(1, 0), s.Step())
	assert.Equal(t, 4, s.Cells())
}

func TestSegment_Flat(t *testing.T) {
	s := Seg(Vec(1, 2), Vec(3, 4))

	assert.Equal(t, [4]int{1, 2, 3, 4}, s.Flat())
	assert.Equal(t, s, FromFlat(s.Flat()))
}
