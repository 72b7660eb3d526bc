package board

// Board dimensions. Every mask below is derived from these two values.
const (
	Rows       = 5
	Cols       = 5
	NumSquares = Rows * Cols
)

// Perspective rows. Move generation always runs as if the moving side
// advances toward row 0, so these are expressed in that frame.
const (
	PromotionRow = 0
	HomeRow      = Rows - 2
)

var (
	// RowMask holds the squares of each row, row 0 being the top of the board.
	RowMask [Rows]Bitboard

	// ColMask holds the squares of each column, column 0 being file a.
	ColMask [Cols]Bitboard

	// FullMask covers every square on the board.
	FullMask Bitboard

	// LeftEdge and RightEdge mark the outer columns. A piece standing on one
	// of them must not be shifted further in that direction.
	LeftEdge  Bitboard
	RightEdge Bitboard
)

func init() {
	initGeometry()
}

func initGeometry() {
	for r := 0; r < Rows; r++ {
		RowMask[r] = ((1 << Cols) - 1) << (r * Cols)
		FullMask |= RowMask[r]
	}
	for c := 0; c < Cols; c++ {
		for r := 0; r < Rows; r++ {
			ColMask[c] |= 1 << (r*Cols + c)
		}
	}
	LeftEdge = ColMask[0]
	RightEdge = ColMask[Cols-1]
}
