package renderer

import "image"

// neighborOffsets lists the 8 surrounding pixels
var neighborOffsets = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// FindRefinementCandidates returns the raster positions of pixels that have
// all 8 neighbors and differ from at least one of them by more than threshold
// (euclidean distance in 0-255 color units). Only the given frame is read, so
// pixels changed by a later refinement never trigger further refinement.
func FindRefinementCandidates(frame Frame, threshold float64) []image.Point {
	var candidates []image.Point
	width, height := frame.Width(), frame.Height()

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			color := frame[y][x].Color
			for _, offset := range neighborOffsets {
				neighbor := frame[y+offset.Y][x+offset.X].Color
				if color.Distance(neighbor) > threshold {
					candidates = append(candidates, image.Point{X: x, Y: y})
					break
				}
			}
		}
	}

	return candidates
}

// groupByRow collects candidate columns per raster row, preserving order
func groupByRow(points []image.Point) map[int][]int {
	rows := make(map[int][]int)
	for _, p := range points {
		rows[p.Y] = append(rows[p.Y], p.X)
	}
	return rows
}
