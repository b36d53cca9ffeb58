package candy

// Level defines a campaign level.
type Level struct {
	ID     int
	Name   string
	Target int // Total score needed to clear the level
	Moves  int // Committed swaps allowed, before the move scale
}

// Levels defines the ten campaign levels. Score carries over between
// levels, so targets are cumulative.
var Levels = []Level{
	{ID: 1, Name: "Sugar Rush", Target: 500, Moves: 20},
	{ID: 2, Name: "Gumdrop Lane", Target: 1300, Moves: 22},
	{ID: 3, Name: "Lollipop Woods", Target: 2400, Moves: 23},
	{ID: 4, Name: "Toffee Tower", Target: 3800, Moves: 24},
	{ID: 5, Name: "Caramel Canyon", Target: 5500, Moves: 25},
	{ID: 6, Name: "Licorice Lagoon", Target: 7500, Moves: 26},
	{ID: 7, Name: "Marzipan Maze", Target: 9800, Moves: 28},
	{ID: 8, Name: "Nougat Nebula", Target: 12400, Moves: 29},
	{ID: 9, Name: "Praline Peaks", Target: 15300, Moves: 30},
	{ID: 10, Name: "Sugarplum Summit", Target: 18500, Moves: 32},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	targets := make([]int, len(Levels))
	for i, lvl := range Levels {
		targets[i] = lvl.Target
	}
	return targets
}
