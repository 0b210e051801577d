package chord

import (
	"fmt"
	"net/http"
	"time"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/timing"

	"github.com/go-chi/chi/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"kon.nect.sh/httprate"
)

func (n *LocalNode) rttString(node *protocol.Node) string {
	if node == nil || n.NodesRTT == nil {
		return ""
	}
	return n.NodesRTT.Window(node.GetId(), timing.RTTWindow).String()
}

func (n *LocalNode) printSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")

	prev, next := n.Neighbors()

	fmt.Fprintf(w, "Current state: %s\n", n.state.Get())
	fmt.Fprintf(w, "State history: %v\n", n.state.History())
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "    Local queries: %d\n", n.localQueries.Load())
	fmt.Fprintf(w, "Forwarded queries: %d\n", n.forwardedQueries.Load())
	fmt.Fprintf(w, " Keys transferred: %d in, %d out\n", n.transferredIn.Load(), n.transferredOut.Load())
	fmt.Fprintf(w, "---\n")

	nodesTable := table.NewWriter()
	nodesTable.SetOutputMirror(w)
	nodesTable.AppendHeader(table.Row{"Where", "ID", "Address", fmt.Sprintf("RTT (-%s)", timing.RTTWindow)})
	for _, row := range []struct {
		where string
		node  *protocol.Node
	}{
		{"Predecessor", prev},
		{"Local", n.Identity()},
		{"Successor", next},
	} {
		if row.node == nil {
			nodesTable.AppendRow(table.Row{row.where, "-", "-", ""})
			continue
		}
		nodesTable.AppendRow(table.Row{row.where, row.node.GetId(), row.node.GetAddress(), n.rttString(row.node)})
	}
	owned := "entire ring"
	if next != nil {
		owned = fmt.Sprintf("[%d, %d)", n.ID(), next.GetId())
	}
	nodesTable.SetCaption("Owned range: %s", owned)
	nodesTable.SetStyle(table.StyleDefault)
	nodesTable.Style().Options.SeparateRows = true
	nodesTable.Render()

	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "Keys stored: %d\n", n.Store.Len())
}

func (n *LocalNode) printKeys(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")

	next := n.next.Load()

	keysTable := table.NewWriter()
	keysTable.SetOutputMirror(w)
	keysTable.AppendHeader(table.Row{"owner", "hash(key)", "size"})

	entries := n.Store.Scan(func(uint64) bool { return true })
	for _, entry := range entries {
		ownership := ""
		if next != nil && !ring.Owns(n.ID(), next.ID(), entry.GetKey()) {
			ownership = "X"
		}
		keysTable.AppendRow(table.Row{ownership, entry.GetKey(), len(entry.GetValue())})
	}
	keysTable.SetCaption("(With %d keys; X in owner column indicates incorrect owner)", len(entries))
	keysTable.SetStyle(table.StyleDefault)
	keysTable.Render()
}

func (n *LocalNode) printKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	val, ok := n.Store.Get(ring.Hash([]byte(key)))
	if !ok {
		http.Error(w, ring.ErrKeyNotFound.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("content-type", "application/octet-stream")
	w.Write(val)
}

// StatsHandler serves a plain text summary of the node, its neighbors and its store.
func (n *LocalNode) StatsHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitAll(10, time.Second))
	r.Get("/", n.printSummary)
	r.Get("/keys", n.printKeys)
	r.Get("/keys/{key}", n.printKey)
	return r
}
