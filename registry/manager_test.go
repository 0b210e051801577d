package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type directoryFactory func(t *testing.T) Directory

var directories = map[string]directoryFactory{
	"memory": func(t *testing.T) Directory {
		return NewMemoryDirectory()
	},
	"sqlite": func(t *testing.T) Directory {
		logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
		dir, err := NewSQLiteDirectory(logger, filepath.Join(t.TempDir(), "registry.db"))
		require.NoError(t, err)
		t.Cleanup(func() {
			dir.Close()
		})
		return dir
	},
}

func newTestManager(t *testing.T, dir Directory, salt func() int64) *Manager {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	return NewManager(ManagerConfig{
		Logger:    logger,
		Directory: dir,
		Salt:      salt,
	})
}

// expectedRendezvous finds the predecessor of id by sorting, independently of ring.ClosestPredecessor
func expectedRendezvous(prior []*protocol.Node, id uint64) *protocol.Node {
	if len(prior) == 0 {
		return nil
	}
	sorted := sortedByID(prior)
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].GetId() >= id
	})
	if idx == 0 {
		return sorted[len(sorted)-1]
	}
	return sorted[idx-1]
}

func TestRegisterNode(t *testing.T) {
	for name, factory := range directories {
		t.Run(name, func(t *testing.T) {
			as := require.New(t)
			ctx := context.Background()

			m := newTestManager(t, factory(t), nil)

			prior := make([]*protocol.Node, 0)
			for i := 0; i < 10; i++ {
				addr := fmt.Sprintf("127.0.0.1:%d", 6000+i)
				resp, err := m.RegisterNode(ctx, addr)
				as.NoError(err)

				expected := expectedRendezvous(prior, resp.GetId())
				if expected == nil {
					as.Nil(resp.GetNeighbor())
				} else {
					as.Equal(expected.GetId(), resp.GetNeighbor().GetId())
					as.Equal(expected.GetAddress(), resp.GetNeighbor().GetAddress())
				}
				as.NotEqual(resp.GetId(), resp.GetNeighbor().GetId())

				prior = append(prior, &protocol.Node{Id: resp.GetId(), Address: addr})
			}

			nodes, err := m.GetConnectedNodes(ctx)
			as.NoError(err)
			as.Len(nodes, len(prior))
			for i := range prior {
				as.Equal(prior[i].GetId(), nodes[i].GetId())
				as.Equal(prior[i].GetAddress(), nodes[i].GetAddress())
			}
		})
	}
}

func TestRegisterCollision(t *testing.T) {
	for name, factory := range directories {
		t.Run(name, func(t *testing.T) {
			as := require.New(t)
			ctx := context.Background()

			m := newTestManager(t, factory(t), func() int64 { return 42 })

			first, err := m.RegisterNode(ctx, "127.0.0.1:7000")
			as.NoError(err)
			as.Equal(ring.NodeID("127.0.0.1:7000", 42), first.GetId())
			as.Nil(first.GetNeighbor())

			_, err = m.RegisterNode(ctx, "127.0.0.1:7000")
			as.ErrorIs(err, ring.ErrDuplicateNodeID)

			nodes, err := m.GetConnectedNodes(ctx)
			as.NoError(err)
			as.Len(nodes, 1)
		})
	}
}

func TestRegisterHighBitIdentifier(t *testing.T) {
	as := require.New(t)
	ctx := context.Background()

	dir := directories["sqlite"](t)
	node := &protocol.Node{Id: ring.MaxIdentifier - 1, Address: "high"}
	as.NoError(dir.Append(ctx, node))

	found, err := dir.Contains(ctx, node.GetId())
	as.NoError(err)
	as.True(found)

	nodes, err := dir.List(ctx)
	as.NoError(err)
	as.Len(nodes, 1)
	as.Equal(node.GetId(), nodes[0].GetId())
}

func TestSQLiteDirectoryPersists(t *testing.T) {
	as := require.New(t)
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	path := filepath.Join(t.TempDir(), "registry.db")

	dir, err := NewSQLiteDirectory(logger, path)
	as.NoError(err)
	m := newTestManager(t, dir, nil)
	resp, err := m.RegisterNode(ctx, "127.0.0.1:8000")
	as.NoError(err)
	as.NoError(dir.Close())

	dir, err = NewSQLiteDirectory(logger, path)
	as.NoError(err)
	defer dir.Close()

	nodes, err := dir.List(ctx)
	as.NoError(err)
	as.Len(nodes, 1)
	as.Equal(resp.GetId(), nodes[0].GetId())
	as.Equal("127.0.0.1:8000", nodes[0].GetAddress())
}

func TestRegisterEmptyAddress(t *testing.T) {
	as := require.New(t)

	m := newTestManager(t, NewMemoryDirectory(), nil)
	_, err := m.RegisterNode(context.Background(), "")
	as.ErrorIs(err, ring.ErrEmptyAddress)
}
