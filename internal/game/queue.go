package game

import (
	"container/heap"
	"sort"

	"github.com/hailam/minichess/internal/board"
)

// PendingMove is a piece that has left its origin and has not landed yet.
type PendingMove struct {
	Move   board.Move  `json:"move"`
	Piece  board.Piece `json:"piece"`
	Side   board.Color `json:"side"`
	Pushed int         `json:"pushed"` // tick of the push
	Due    int         `json:"due"`    // tick at which the piece lands
	Seq    uint64      `json:"seq"`    // push order, breaks ties on Due
}

// moveQueue orders pending moves by landing tick, then by push order.
// With one delay for every piece this is plain FIFO order.
type moveQueue []*PendingMove

func (q moveQueue) Len() int { return len(q) }

func (q moveQueue) Less(i, j int) bool {
	if q[i].Due != q[j].Due {
		return q[i].Due < q[j].Due
	}
	return q[i].Seq < q[j].Seq
}

func (q moveQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *moveQueue) Push(x any) {
	*q = append(*q, x.(*PendingMove))
}

func (q *moveQueue) Pop() any {
	old := *q
	n := len(old)
	pm := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return pm
}

// enqueue adds a pending move.
func (q *moveQueue) enqueue(pm *PendingMove) {
	heap.Push(q, pm)
}

// popDue removes and returns the next move landing at or before tick.
func (q *moveQueue) popDue(tick int) (*PendingMove, bool) {
	if q.Len() == 0 || (*q)[0].Due > tick {
		return nil, false
	}
	return heap.Pop(q).(*PendingMove), true
}

// sorted returns copies of the pending moves in landing order.
func (q moveQueue) sorted() []PendingMove {
	out := make([]PendingMove, len(q))
	for i, pm := range q {
		out[i] = *pm
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Due != out[j].Due {
			return out[i].Due < out[j].Due
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}
