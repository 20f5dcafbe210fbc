// Package dashboard serves a single live page showing the board and the
// trainer's running metrics, pushed to the browser over a websocket as
// training progresses.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/Terauchi01/Contrast/internal/dashboard/fastview"
	"github.com/Terauchi01/Contrast/internal/dashboard/root_view"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"
)

// Dashboard serves the training-progress page to a single browser client
// at a time; it is a development aid, not a multi-tenant web server.
type Dashboard struct {
	addr        string
	rootView    *root_view.RootView
	initialView viewmodel.View
}

// New builds the dashboard's views over snapshotUpdates, rendering initial
// from the index page until the first update arrives over the websocket.
func New(
	ctx context.Context,
	addr string,
	initial viewmodel.Snapshot,
	snapshotUpdates <-chan viewmodel.Snapshot,
) *Dashboard {
	return &Dashboard{
		addr:        addr,
		rootView:    root_view.New(ctx, snapshotUpdates),
		initialView: viewmodel.Convert(initial),
	}
}

// Serve starts the http server and blocks until it returns an error.
func (d *Dashboard) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", d.serveIndex)
	mux.HandleFunc("/ws", d.serveWebsocket)

	if err := http.ListenAndServe(d.addr, mux); err != nil {
		return fmt.Errorf("dashboard: serve: %w", err)
	}
	return nil
}

// serveWebsocket upgrades the request and syncs dashboard updates to the
// client until it disconnects.
func (d *Dashboard) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := fastview.NewClient[[]fastview.EleUpdate](d.rootView.Updates(), w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := cli.Sync(); err != nil {
		fmt.Println("dashboard: websocket sync ended:", err)
	}
}

func (d *Dashboard) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html")

	if err := renderTemplate(w, d.rootView, d.initialView); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

func renderTemplate(w io.Writer, rv *root_view.RootView, data viewmodel.View) error {
	t := template.New("index.html")
	tname, err := rv.Parse(t)
	if err != nil {
		return err
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return err
	}
	return t.Execute(w, data)
}
