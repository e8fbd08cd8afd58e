package parser

// findDataBounds finds the bounding box of non-empty cells.
// minRow is -1 when the grid holds no data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if IsBlank(cell) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// trimGrid cuts trailing empty rows and columns off a grid.
// Leading empty rows and columns are kept so that positions stay stable.
func trimGrid(rows [][]string) [][]string {
	minRow, maxRow, _, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}

	trimmed := make([][]string, 0, maxRow+1)
	for _, row := range rows[:maxRow+1] {
		if len(row) > maxCol+1 {
			row = row[:maxCol+1]
		}
		trimmed = append(trimmed, row)
	}
	return trimmed
}
