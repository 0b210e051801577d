package client

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

type nodeView struct {
	ID      uint64 `yaml:"id"`
	Address string `yaml:"address"`
}

type nodesView struct {
	Nodes []nodeView `yaml:"nodes"`
}

func (s *session) printNodes(ctx context.Context, asYAML bool) error {
	nodes, err := s.registry.GetConnectedNodes(ctx)
	if err != nil {
		return err
	}

	if asYAML {
		view := nodesView{
			Nodes: make([]nodeView, 0, len(nodes)),
		}
		for _, node := range nodes {
			view.Nodes = append(view.Nodes, nodeView{
				ID:      node.GetId(),
				Address: node.GetAddress(),
			})
		}
		enc := yaml.NewEncoder(s.Out)
		defer enc.Close()
		return enc.Encode(&view)
	}

	nodesTable := table.NewWriter()
	nodesTable.SetOutputMirror(s.Out)
	nodesTable.AppendHeader(table.Row{"ID", "Address"})
	for _, node := range nodes {
		nodesTable.AppendRow(table.Row{node.GetId(), node.GetAddress()})
	}
	nodesTable.SetCaption("(%d nodes)", len(nodes))
	nodesTable.SetStyle(table.StyleDefault)
	nodesTable.Render()

	return nil
}
