package liapgame

// CompareResult is the outcome of comparing two plays of the same piece
// count.
type CompareResult int

const (
	AWins CompareResult = iota
	BWins
	AWinsOnOrder
)

// Compare determines the winner between two plays of the same piece
// count. aOrder/bOrder are the plays' relative submission order (lower
// is earlier); ties resolve to the earlier play. Pure, total for any two
// non-empty piece slices of equal length.
func Compare(a, b []Piece, aOrder, bOrder int) CompareResult {
	typeA := Classify(a)
	typeB := Classify(b)
	if typeA != typeB {
		if typeA > typeB {
			return AWins
		}
		return BWins
	}

	sumA := scoringSum(a, typeA)
	sumB := scoringSum(b, typeB)
	if sumA == sumB {
		// Equal points: the earlier play wins. AWinsOnOrder flags that the
		// tie was broken by order rather than by type or point total.
		if aOrder <= bOrder {
			return AWinsOnOrder
		}
		return BWins
	}
	if sumA > sumB {
		return AWins
	}
	return BWins
}

// scoringSum computes the comparison value for a play: the sum of all
// piece points, except for EXTENDED_STRAIGHT and EXTENDED_STRAIGHT_5
// where only the three highest-valued distinct kinds count.
func scoringSum(pieces []Piece, t PlayType) int {
	if t == ExtendedStraight || t == ExtendedStraight5 {
		return topThreeDistinctKindsSum(pieces)
	}
	total := 0
	for _, p := range pieces {
		total += p.Points
	}
	return total
}

func topThreeDistinctKindsSum(pieces []Piece) int {
	best := make(map[Kind]int)
	for _, p := range pieces {
		if cur, ok := best[p.Kind]; !ok || p.Points > cur {
			best[p.Kind] = p.Points
		}
	}
	values := make([]int, 0, len(best))
	for _, v := range best {
		values = append(values, v)
	}
	// insertion sort descending; len(values) is at most 3 by construction
	for i := 1; i < len(values); i++ {
		v := values[i]
		j := i - 1
		for j >= 0 && values[j] < v {
			values[j+1] = values[j]
			j--
		}
		values[j+1] = v
	}
	total := 0
	for i := 0; i < len(values) && i < 3; i++ {
		total += values[i]
	}
	return total
}

// TurnPlay is one player's play within a single turn, in submission order.
type TurnPlay struct {
	Seat   int
	Pieces []Piece
	Order  int
}

// ResolveTurn determines the winning seat for a completed turn. The
// starter's play defines the required PlayType implicitly by its
// composition: only plays that classify to the same PlayType and piece
// count as the starter's play are eligible to win. A follower whose play
// is invalid, or not the starter's type, scores 0 and cannot win. If
// every follower fails to match, the starter wins automatically.
func ResolveTurn(plays []TurnPlay) int {
	if len(plays) == 0 {
		return -1
	}
	starter := plays[0]
	starterType := Classify(starter.Pieces)

	winner := starter
	winnerType := starterType
	for _, play := range plays[1:] {
		playType := Classify(play.Pieces)
		if playType != starterType || playType == Invalid {
			continue // scores 0, cannot win
		}
		if playType != winnerType {
			continue
		}
		result := Compare(play.Pieces, winner.Pieces, play.Order, winner.Order)
		if result == AWins {
			winner = play
			winnerType = playType
		}
	}
	return winner.Seat
}
