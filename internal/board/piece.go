package board

import (
	"fmt"
	"strings"
)

// Color represents the color of a piece or player.
// White advances toward row 0, Black toward the last row.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Char returns the short color code used in configuration ("w" or "b").
func (c Color) Char() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// ParseColor parses "w"/"white" or "b"/"black".
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "w", "white":
		return White, true
	case "b", "black":
		return Black, true
	}
	return NoColor, false
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// PromotionType is what a pawn becomes on its terminal row.
const PromotionType = Queen

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the board character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// ParsePieceType accepts a type name ("knight") or its character ("n").
func ParsePieceType(s string) (PieceType, bool) {
	s = strings.ToLower(s)
	for pt := Pawn; pt <= King; pt++ {
		if s == strings.ToLower(pt.String()) || (len(s) == 1 && s[0] == pt.Char()) {
			return pt, true
		}
	}
	return NoPieceType, false
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Char returns the board character: uppercase for white, lowercase for
// black, '.' for an empty square.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return '.'
	}
	return "PNBRQKpnbrqk"[p]
}

// String returns the board character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a board character to a Piece.
// '.' and unknown characters yield NoPiece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// MarshalText encodes the piece as its board character.
func (p Piece) MarshalText() ([]byte, error) {
	return []byte{p.Char()}, nil
}

// UnmarshalText decodes a board character; "." decodes to NoPiece.
func (p *Piece) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("%w: piece %q", ErrInvalidBoard, text)
	}
	piece := PieceFromChar(text[0])
	if piece == NoPiece && text[0] != '.' {
		return fmt.Errorf("%w: piece %q", ErrInvalidBoard, text)
	}
	*p = piece
	return nil
}

// MarshalText encodes the color as "w" or "b".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Char()), nil
}

// UnmarshalText decodes "w"/"white", "b"/"black" or "-" for NoColor.
func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "-" {
		*c = NoColor
		return nil
	}
	color, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = color
	return nil
}
