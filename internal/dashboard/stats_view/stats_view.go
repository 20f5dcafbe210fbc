// Package stats_view renders the trainer's live metrics (win rate,
// learning rate, curriculum stage, game tally) as plain text. Unlike the
// teacher's isometric value-function surface, Contrast's evaluator has no
// natural 2D/3D projection worth plotting live — an N-tuple weight vector
// isn't a function over the board's (x,y) coordinates the way a gridworld
// state-value table is — so this view renders the numbers the trainer
// already publishes instead of attempting a visual analogue.
package stats_view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Terauchi01/Contrast/internal/dashboard/fastview"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"

	channerics "github.com/niceyeti/channerics/channels"
)

// StatsView is a ViewComponent rendering training metrics as a small text
// table.
type StatsView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

// New returns a StatsView that converts incoming views into element
// updates until done is closed.
func New(
	done <-chan struct{},
	views <-chan viewmodel.View,
) fastview.ViewComponent {
	id := "stats"
	if strings.Contains(id, "-") {
		panic("stats_view: hyphenated ids break html/template's `template` directive")
	}
	sv := &StatsView{id: template.HTMLEscapeString(id)}
	sv.updates = channerics.Convert(done, views, sv.onUpdate)
	return sv
}

func (sv *StatsView) Updates() <-chan []fastview.EleUpdate {
	return sv.updates
}

func (sv *StatsView) onUpdate(v viewmodel.View) []fastview.EleUpdate {
	return []fastview.EleUpdate{
		textUpdate("stat-games", fmt.Sprintf("%d", v.GamesPlayed)),
		textUpdate("stat-wins", fmt.Sprintf("%d", v.LearnerWins)),
		textUpdate("stat-losses", fmt.Sprintf("%d", v.LearnerLoss)),
		textUpdate("stat-draws", fmt.Sprintf("%d", v.Draws)),
		textUpdate("stat-winrate", fmt.Sprintf("%.3f", v.WinRate)),
		textUpdate("stat-lr", fmt.Sprintf("%.5f", v.LearningRate)),
		textUpdate("stat-stage", v.Stage),
	}
}

func textUpdate(id, value string) fastview.EleUpdate {
	return fastview.EleUpdate{
		EleId: id,
		Ops:   []fastview.Op{{Key: "textContent", Value: value}},
	}
}

// Parse builds the stats table's initial markup.
func (sv *StatsView) Parse(t *template.Template) (name string, err error) {
	name = sv.id
	_, err = t.Parse(
		`{{ define "` + name + `" }}
		<table>
			<tr><td>Games played</td><td id="stat-games"></td></tr>
			<tr><td>Learner wins</td><td id="stat-wins"></td></tr>
			<tr><td>Learner losses</td><td id="stat-losses"></td></tr>
			<tr><td>Draws</td><td id="stat-draws"></td></tr>
			<tr><td>Rolling win rate</td><td id="stat-winrate"></td></tr>
			<tr><td>Learning rate</td><td id="stat-lr"></td></tr>
			<tr><td>Curriculum stage</td><td id="stat-stage"></td></tr>
		</table>
		{{ end }}`)
	return
}
