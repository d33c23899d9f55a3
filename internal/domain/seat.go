package domain

// NumSeats is the number of players at a coinche table.
const NumSeats = 4

// Seat is a fixed position around the table, 0..3.
type Seat int

// Team is one of the two partnerships. Seats 0 and 2 form team 0, seats 1
// and 3 form team 1; the pairing never changes within a match.
type Team int

// Next returns the seat to the left, the next to act in turn order.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partner returns the seat sitting opposite.
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Team returns the partnership the seat belongs to.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Valid reports whether the seat index is in range.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	return 1 - t
}
