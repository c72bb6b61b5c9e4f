package domain

// Coaches seat four across. Labels run row letter plus position, A1..A4
// then B1..B4 and so on, up to the trip's capacity.
const seatsPerRow = 4

// ValidSeat reports whether a seat label names a seat inside a trip's
// inventory of totalSeats.
func ValidSeat(label string, totalSeats int) bool {
	if len(label) < 2 {
		return false
	}
	row := label[0]
	if row < 'A' || row > 'Z' {
		return false
	}

	position := 0
	for i := 1; i < len(label); i++ {
		c := label[i]
		if c < '0' || c > '9' {
			return false
		}
		position = position*10 + int(c-'0')
		if position > seatsPerRow {
			return false
		}
	}
	if position < 1 {
		return false
	}

	return int(row-'A')*seatsPerRow+position <= totalSeats
}
