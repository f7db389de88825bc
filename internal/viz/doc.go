// Package viz provides the terminal live view of a single Metropolis chain.
//
// The view is a Bubble Tea program: every frame runs a few sweeps at the
// current temperature and redraws the lattice next to a magnetisation
// history. Small lattices are drawn as coloured blocks, large ones on a
// Braille [Canvas] with one dot per up spin.
//
// # Key Bindings
//
//	Up/K      - Raise temperature by 0.1
//	Down/J    - Lower temperature by 0.1 (not below 0)
//	Space     - Polarise all spins up
//	Backspace - Polarise all spins down
//	R         - Thermal (random) reset
//	P         - Pause/Resume
//	T         - Cycle colour themes
//	?         - Show help overlay
//	Q         - Quit
package viz
