package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
)

// puzzleEntity is the flat column layout of a puzzle row: the grid as one
// string, solutions as x1, y1, x2, y2 groups in a single int list.
type puzzleEntity struct {
	GameTable    string
	TableColumns int
	TableRows    int
	Solutions    []int
	Words        []string
}

func toEntity(p *puzzle.Puzzle) puzzleEntity {
	rec := p.Record()
	flat := make([]int, 0, 4*len(rec.Solutions))
	for _, s := range rec.Solutions {
		flat = append(flat, s[:]...)
	}
	return puzzleEntity{
		GameTable:    strings.Join(rec.Table, ""),
		TableColumns: rec.Columns,
		TableRows:    rec.Rows,
		Solutions:    flat,
		Words:        rec.Words,
	}
}

func fromEntity(e puzzleEntity) (*puzzle.Puzzle, error) {
	if len(e.Solutions)%4 != 0 {
		return nil, fmt.Errorf("%w: %d solution coordinates", puzzle.ErrMalformedRecord, len(e.Solutions))
	}
	cells := []rune(e.GameTable)
	if e.TableColumns < 1 || len(cells) != e.TableColumns*e.TableRows {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", puzzle.ErrMalformedRecord, len(cells), e.TableColumns, e.TableRows)
	}

	rows := make([]string, 0, e.TableRows)
	for r := 0; r < e.TableRows; r++ {
		rows = append(rows, string(cells[r*e.TableColumns:(r+1)*e.TableColumns]))
	}
	sols := make([]geometry.Segment, 0, len(e.Solutions)/4)
	for i := 0; i < len(e.Solutions); i += 4 {
		sols = append(sols, geometry.FromFlat([4]int(e.Solutions[i:i+4])))
	}
	return puzzle.FromTable(rows, e.TableColumns, e.TableRows, sols, e.Words)
}

func encodeJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
