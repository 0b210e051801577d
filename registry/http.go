package registry

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/go-chi/chi/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"kon.nect.sh/httprate"
)

func formatNode(n *protocol.Node) string {
	return fmt.Sprintf("%s/%d", n.GetAddress(), n.GetId())
}

var vOptions = []func(*graph.VertexProperties){
	graph.VertexAttribute("shape", "box"),
}

var firstVOptions = append(vOptions,
	graph.VertexAttribute("style", "filled"),
	graph.VertexAttribute("color", "yellow"),
)

func (m *Manager) printNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := m.GetConnectedNodes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "text/plain; charset=utf-8")

	nodesTable := table.NewWriter()
	nodesTable.SetOutputMirror(w)
	nodesTable.AppendHeader(table.Row{"#", "ID", "Address", "Owns (fraction)"})

	sorted := sortedByID(nodes)
	for i, node := range nodes {
		nodesTable.AppendRow(table.Row{i, node.GetId(), node.GetAddress(), fmt.Sprintf("%.4f", ownedFraction(sorted, node))})
	}
	nodesTable.SetCaption("(%d nodes in registration order)", len(nodes))
	nodesTable.SetStyle(table.StyleDefault)
	nodesTable.Render()
}

// printGraph renders the ring implied by the registered identifiers as DOT.
// The first registered node is highlighted.
func (m *Manager) printGraph(w http.ResponseWriter, r *http.Request) {
	nodes, err := m.GetConnectedNodes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(nodes) == 0 {
		http.Error(w, "no nodes registered", http.StatusNotFound)
		return
	}

	first := nodes[0]
	sorted := sortedByID(nodes)

	g := graph.New(formatNode, graph.Directed())
	for _, node := range sorted {
		if node.GetId() == first.GetId() {
			g.AddVertex(node, firstVOptions...)
		} else {
			g.AddVertex(node, vOptions...)
		}
	}
	if len(sorted) > 1 {
		for i := range sorted {
			g.AddEdge(formatNode(sorted[i]), formatNode(sorted[(i+1)%len(sorted)]))
		}
	}

	w.Header().Set("content-type", "text/plain")
	draw.DOT(g, w)
}

func sortedByID(nodes []*protocol.Node) []*protocol.Node {
	sorted := make([]*protocol.Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetId() < sorted[j].GetId()
	})
	return sorted
}

// ownedFraction is the share of the identifier space node is responsible for,
// given every node in sorted.
func ownedFraction(sorted []*protocol.Node, node *protocol.Node) float64 {
	if len(sorted) < 2 {
		return 1
	}
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].GetId() >= node.GetId()
	})
	next := sorted[(idx+1)%len(sorted)]
	span := ring.Span(node.GetId(), next.GetId())
	return float64(span) / float64(ring.MaxIdentifier)
}

// HTTPHandler serves the registered nodes as a table on /nodes and the ring as a DOT graph on /graph.
func (m *Manager) HTTPHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitAll(10, time.Second))
	r.Get("/nodes", m.printNodes)
	r.Get("/graph", m.printGraph)
	return r
}
