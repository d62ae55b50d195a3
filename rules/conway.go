package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with two or three live neighbors and dies of under- or overpopulation
otherwise. A dead cell is born with exactly three live neighbors.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case alive && (neighbors < 2 || neighbors > 3):
		return false
	case alive:
		return true
	default:
		return neighbors == 3
	}
}
