// Package viz renders trajectories in the terminal.
//
// The package implements an interactive dashboard using the Bubble Tea
// framework, an asciigraph height profile of the ideal and drag paths, and
// lipgloss metric panels shared with the CLI.
//
// # Key Bindings
//
//	↑/↓   - Select control
//	←/→   - Adjust selected control
//	D     - Toggle air resistance
//	I     - Toggle ideal trajectory
//	P     - Cycle planet
//	R     - Reset to defaults
//	Q     - Quit
package viz
