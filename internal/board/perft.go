package board

// Perft counts the leaf nodes of the move tree to the given depth, with the
// sides alternating and c moving first. Every move is applied instantly
// through MakeMove and taken back with UnmakeMove, so it exercises the
// generator and the apply/undo pair together. Kings may be captured; the
// count does not filter self-check. A negative depth counts nothing.
func (p *Position) Perft(c Color, depth int) uint64 {
	if depth < 0 {
		return 0
	}
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for m := range p.GenerateMoves(c) {
		if depth == 1 {
			nodes++
			continue
		}
		u := p.MakeMove(m)
		nodes += p.Perft(c.Other(), depth-1)
		p.UnmakeMove(u)
	}
	return nodes
}
