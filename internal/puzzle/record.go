package puzzle

import (
	"encoding/json"

	"github.com/kyiku/wordsearch-back/internal/geometry"
)

// Record is the serialized form of a Puzzle shared with storage and API
// consumers. Solutions are canonical x1, y1, x2, y2 quadruples.
type Record struct {
	Columns   int      `json:"columns"`
	Rows      int      `json:"rows"`
	Table     []string `json:"table"`
	Words     []string `json:"words"`
	Solutions [][4]int `json:"solutions"`
}

// Record converts p to its serialized form.
func (p *Puzzle) Record() Record {
	sols := p.Solutions()
	flat := make([][4]int, 0, len(sols))
	for _, s := range sols {
		flat = append(flat, s.Flat())
	}
	return Record{
		Columns:   p.columns,
		Rows:      p.rows,
		Table:     p.RenderTable(),
		Words:     p.Words(),
		Solutions: flat,
	}
}

// FromRecord rebuilds a puzzle from its serialized form.
func FromRecord(r Record) (*Puzzle, error) {
	sols := make([]geometry.Segment, 0, len(r.Solutions))
	for _, f := range r.Solutions {
		sols = append(sols, geometry.FromFlat(f))
	}
	return FromTable(r.Table, r.Columns, r.Rows, sols, r.Words)
}

// MarshalJSON encodes p as a Record.
func (p *Puzzle) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Record())
}

// UnmarshalJSON decodes a Record into p.
func (p *Puzzle) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := FromRecord(r)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}
