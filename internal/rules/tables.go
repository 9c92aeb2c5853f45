package rules

import (
	"strconv"
	"strings"
	"sync"

	"github.com/hailam/gridchess/internal/board"
)

// stepTable holds, for every origin square, the squares a set of
// displacements reaches without leaving the board.
type stepTable [board.Squares]board.Bitboard

// Pre-computed tables keyed by displacement signature.
var stepTables sync.Map

func init() {
	for _, kind := range []string{"king", "knight"} {
		p, err := board.NewPieceOfKind(kind, kind)
		if err != nil {
			panic(err)
		}
		deltas, err := stepDeltas(p)
		if err != nil {
			panic(err)
		}
		tableFor(deltas)
	}
}

func tableFor(deltas []Delta) *stepTable {
	key := deltaKey(deltas)
	if t, ok := stepTables.Load(key); ok {
		return t.(*stepTable)
	}

	t := new(stepTable)
	for sq := board.A1; sq <= board.H8; sq++ {
		for _, d := range deltas {
			if to, ok := sq.Offset(d.DX, d.DY); ok {
				t[sq] = t[sq].Set(to)
			}
		}
	}
	actual, _ := stepTables.LoadOrStore(key, t)
	return actual.(*stepTable)
}

func deltaKey(deltas []Delta) string {
	var sb strings.Builder
	for _, d := range deltas {
		sb.WriteString(strconv.Itoa(d.DX))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(d.DY))
		sb.WriteByte(';')
	}
	return sb.String()
}
