// Package viewmodel holds the shared data passed from the trainer to the
// dashboard, and its conversion into the display-ready form the board and
// stats views render from. Keeping one conversion function shared by both
// views mirrors how the teacher's cell_views.Convert feeds its grid view
// and its value-function view from the same []Cell shape.
package viewmodel

import (
	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/telemetry"
)

// Snapshot is what the trainer publishes to the dashboard: the live game
// state plus the current set of training metrics. It is the DataModel type
// fed into the dashboard's view builder.
type Snapshot struct {
	State        geometry.GameState
	GamesPlayed  int64
	LearnerWins  int64
	LearnerLoss  int64
	Draws        int64
	WinRate      float64
	LearningRate float64
	Stage        telemetry.CurriculumStage
}

// SnapshotFromStats builds a Snapshot from the live game state and the
// trainer's stats object.
func SnapshotFromStats(state geometry.GameState, stats *telemetry.Stats) Snapshot {
	return Snapshot{
		State:        state,
		GamesPlayed:  stats.GamesPlayed,
		LearnerWins:  stats.LearnerWins,
		LearnerLoss:  stats.LearnerLosses,
		Draws:        stats.Draws,
		WinRate:      stats.WinRate.AtomicRead(),
		LearningRate: stats.LearningRate.AtomicRead(),
		Stage:        stats.CurrentStage(),
	}
}

// CellViewModel is one board square, already reduced to what a view needs
// to render it: position, fill color, and a short occupant/tile label.
type CellViewModel struct {
	X, Y  int
	Fill  string
	Label string
}

// View is the ViewModel type the board and stats views are built from.
type View struct {
	Cells        [][]CellViewModel
	ToMove       string
	GamesPlayed  int64
	LearnerWins  int64
	LearnerLoss  int64
	Draws        int64
	WinRate      float64
	LearningRate float64
	Stage        string
}

// Convert reduces a Snapshot to its display-ready View.
func Convert(snap Snapshot) View {
	cells := make([][]CellViewModel, geometry.Width)
	for x := range cells {
		cells[x] = make([]CellViewModel, geometry.Height)
	}

	for x := 0; x < geometry.Width; x++ {
		for y := 0; y < geometry.Height; y++ {
			cell := snap.State.Board.At(x, y)
			// flip y for svg's top-left origin, matching the board's
			// printed orientation
			cells[x][geometry.Height-y-1] = CellViewModel{
				X:     x,
				Y:     geometry.Height - y - 1,
				Fill:  occupantFill(cell.Occupant),
				Label: cellLabel(cell),
			}
		}
	}

	return View{
		Cells:        cells,
		ToMove:       snap.State.ToMove.String(),
		GamesPlayed:  snap.GamesPlayed,
		LearnerWins:  snap.LearnerWins,
		LearnerLoss:  snap.LearnerLoss,
		Draws:        snap.Draws,
		WinRate:      snap.WinRate,
		LearningRate: snap.LearningRate,
		Stage:        snap.Stage.String(),
	}
}

func occupantFill(p geometry.Player) string {
	switch p {
	case geometry.Black:
		return "black"
	case geometry.White:
		return "white"
	default:
		return "lightgray"
	}
}

// cellLabel renders a cell as a short string: the occupant's initial, with
// a tile-kind suffix when a tile has been placed.
func cellLabel(c geometry.Cell) string {
	label := ""
	switch c.Occupant {
	case geometry.Black:
		label = "B"
	case geometry.White:
		label = "W"
	}
	switch c.Tile {
	case geometry.BlackTile:
		label += "/b"
	case geometry.GrayTile:
		label += "/g"
	}
	return label
}
