// Package automaton provides a generic cellular-automaton stepping engine.
//
// A [Simulation] owns a rectangular grid of cells of any type C stored in
// row-major order and advances it in synchronous generations:
//
//   - [CoordToIdx] / [IdxToCoord]: linear index <-> (x, y) mapping
//   - [Offsets]: relative coordinates that define a neighborhood
//   - [Neighborhood]: single-pass view over the in-bounds neighbors of one cell
//   - [Rule]: user transition rule writing one next-generation cell
//
// # Example
//
//	rule := automaton.RuleFunc[bool](func(next *bool, n *automaton.Neighborhood[bool]) {
//	    if n.Count(func(c bool) bool { return c }) > 2 {
//	        *next = true
//	    }
//	})
//	s, err := automaton.FromCells(3, 3, rule, automaton.VonNeumann, cells)
//	if err != nil {
//	    return err
//	}
//	s.StepUntil(10)
//	fmt.Println(s.Cells())
//
// # Update semantics
//
// Every step reads only the generation that existed before the step began.
// The next generation is written into a second buffer and the two buffers
// swap roles once every cell has been processed, so the order in which cells
// are visited never changes the result.
//
// Offsets that land outside the grid are skipped, so border cells see fewer
// neighbors than interior cells.
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe.
package automaton
