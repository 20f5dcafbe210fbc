// Package board_view renders the live 5x5 board as an svg grid, pushing
// per-cell fill and label updates to the browser as the game progresses.
package board_view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Terauchi01/Contrast/internal/dashboard/fastview"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"

	channerics "github.com/niceyeti/channerics/channels"
)

// BoardView is a ViewComponent rendering the board as an svg grid of
// labeled, filled rectangles, one per cell.
type BoardView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

// New returns a BoardView that converts incoming views into element
// updates until done is closed.
func New(
	done <-chan struct{},
	views <-chan viewmodel.View,
) fastview.ViewComponent {
	id := "board"
	if strings.Contains(id, "-") {
		panic("board_view: hyphenated ids break html/template's `template` directive")
	}
	bv := &BoardView{id: template.HTMLEscapeString(id)}
	bv.updates = channerics.Convert(done, views, bv.onUpdate)
	return bv
}

func (bv *BoardView) Updates() <-chan []fastview.EleUpdate {
	return bv.updates
}

// onUpdate returns the element updates needed to bring the board's cells
// up to date with the latest view.
func (bv *BoardView) onUpdate(v viewmodel.View) (ops []fastview.EleUpdate) {
	for _, row := range v.Cells {
		for _, cell := range row {
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-cell", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "fill", Value: cell.Fill},
				},
			})
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-label", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "textContent", Value: cell.Label},
				},
			})
		}
	}
	ops = append(ops, fastview.EleUpdate{
		EleId: "to-move",
		Ops: []fastview.Op{
			{Key: "textContent", Value: v.ToMove},
		},
	})
	return
}

// Parse builds the board's initial svg markup: one labeled rect per cell,
// sized to fit the fixed 5x5 grid.
func (bv *BoardView) Parse(t *template.Template) (name string, err error) {
	name = bv.id
	_, err = t.Parse(
		`{{ define "` + name + `" }}
		<div>
			<p>To move: <span id="to-move"></span></p>
			{{ $cell_width := 80 }}
			{{ $cell_height := $cell_width }}
			<svg id="` + bv.id + `"
				width="{{ mult $cell_width (len .Cells) }}px"
				height="{{ mult $cell_height (len (index .Cells 0)) }}px"
				style="shape-rendering: crispEdges;">
				{{ range $row := .Cells }}
					{{ range $cell := $row }}
					<g>
						<rect id="{{$cell.X}}-{{$cell.Y}}-cell"
							x="{{ mult $cell.X $cell_width }}"
							y="{{ mult $cell.Y $cell_height }}"
							width="{{ $cell_width }}"
							height="{{ $cell_height }}"
							fill="{{ $cell.Fill }}"
							stroke="black"
							stroke-width="1"/>
						<text id="{{$cell.X}}-{{$cell.Y}}-label"
							x="{{ add (mult $cell.X $cell_width) (div $cell_width 2) }}"
							y="{{ add (mult $cell.Y $cell_height) (div $cell_height 2) }}"
							stroke="blue" dominant-baseline="central" text-anchor="middle"
							>{{ $cell.Label }}</text>
					</g>
					{{ end }}
				{{ end }}
			</svg>
		</div>
		{{ end }}`)
	return
}
