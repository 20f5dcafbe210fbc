// Package root_view assembles the dashboard's main page: the board and
// stats views, their shared element-update stream, and the bootstrap
// template that opens the websocket and applies incoming DOM patches.
package root_view

import (
	"context"
	"html/template"
	"log"
	"time"

	"github.com/Terauchi01/Contrast/internal/dashboard/board_view"
	"github.com/Terauchi01/Contrast/internal/dashboard/fastview"
	"github.com/Terauchi01/Contrast/internal/dashboard/stats_view"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"

	channerics "github.com/niceyeti/channerics/channels"
)

// RootView is the main page's container: the set of view components plus
// their fanned-in, rate-limited update stream.
type RootView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

// New builds the board and stats views over snapshotUpdates and returns
// the assembled RootView.
func New(
	ctx context.Context,
	snapshotUpdates <-chan viewmodel.Snapshot,
) *RootView {
	views, err := fastview.NewViewBuilder[viewmodel.Snapshot, viewmodel.View]().
		WithContext(ctx).
		WithModel(snapshotUpdates, viewmodel.Convert).
		WithView(board_view.New).
		WithView(stats_view.New).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	return &RootView{
		views:   views,
		updates: fanIn(ctx.Done(), views),
	}
}

// Updates returns the main element-update channel, merged and rate-limited
// across all views.
func (rv *RootView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the page template: a shared func-map for the arithmetic
// helpers the views' svg templates need, the websocket bootstrap script,
// and each view's markup nested in the body.
func (rv *RootView) Parse(parent *template.Template) (name string, err error) {
	rt := parent.Funcs(
		template.FuncMap{
			"add": func(i, j int) int { return i + j },
			"sub": func(i, j int) int { return i - j },
			"mult": func(i, j int) int { return i * j },
			"div": func(i, j int) int { return i / j },
		})

	var viewTemplates []string
	for _, vc := range rv.views {
		tname, parseErr := vc.Parse(rt)
		if parseErr != nil {
			return "", parseErr
		}
		viewTemplates = append(viewTemplates, tname)
	}

	var bodySpec string
	for _, tname := range viewTemplates {
		bodySpec += `{{ template "` + tname + `" . }}`
	}

	name = "mainpage"
	indexTemplate := `
	{{ define "` + name + `" }}
	<!DOCTYPE html>
	<html>
		<head>
			<link rel="icon" href="data:,">
			<script>
				const ws = new WebSocket("ws://" + window.location.host + "/ws");
				ws.onopen = function (event) {
					console.log("dashboard socket opened")
				};
				ws.onerror = function (event) {
					console.log('dashboard socket error: ', event);
				};
				ws.onmessage = function (event) {
					const items = JSON.parse(event.data)
					for (const update of items) {
						const ele = document.getElementById(update.EleId)
						if (!ele) { continue }
						for (const op of update.Ops) {
							if (op.Key === "textContent") {
								ele.textContent = op.Value;
							} else {
								ele.setAttribute(op.Key, op.Value)
							}
						}
					}
				}
			</script>
		</head>
		<body>
		` + bodySpec + `
		</body></html>
	{{ end }}
	`

	_, err = rt.Parse(indexTemplate)
	return
}

// fanIn merges every view's update channel into one and batches updates
// within a short window, so redundant patches to the same element within
// a window collapse to the latest value.
func fanIn(
	done <-chan struct{},
	views []fastview.ViewComponent,
) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, view := range views {
		inputs[i] = view.Updates()
	}
	return batchify(done, channerics.Merge(done, inputs...), time.Millisecond*20)
}

// batchify coalesces updates to the same element id within rate into a
// single outgoing batch, keeping only the latest value for each id.
func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	rate time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)

		data := map[string]fastview.EleUpdate{}
		last := time.Now()
		for updates := range channerics.OrDone(done, source) {
			for _, update := range updates {
				data[update.EleId] = update
			}

			if time.Since(last) > rate && len(updates) > 0 {
				select {
				case output <- slicedVals(data):
					data = map[string]fastview.EleUpdate{}
					last = time.Now()
				case <-done:
					return
				}
			}
		}
	}()

	return output
}

func slicedVals[T1 comparable, T2 any](mp map[T1]T2) (sliced []T2) {
	for _, v := range mp {
		sliced = append(sliced, v)
	}
	return
}
