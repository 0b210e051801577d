package integrations

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.miragespace.co/chordring/chord"
	"go.miragespace.co/chordring/cmd/chordring"
	"go.miragespace.co/chordring/cmd/client"
	"go.miragespace.co/chordring/cmd/node"
	"go.miragespace.co/chordring/cmd/registry"
	registryImpl "go.miragespace.co/chordring/registry"
	rpcImpl "go.miragespace.co/chordring/rpc"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/util/testcond"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zaptest"
)

const (
	registryPort = 51900
	nodePortBase = 51910
	numNodes     = 3
)

func compileApp(cmd *cli.Command) *cli.App {
	return &cli.App{
		Name:     "chordring",
		Flags:    chordring.App.Flags,
		Commands: []*cli.Command{cmd},
		Before:   chordring.ConfigLogger,
	}
}

func runApp(ctx context.Context, cmd *cli.Command, args ...string) <-chan error {
	ret := make(chan error, 1)
	go func() {
		ret <- compileApp(cmd).RunContext(ctx, append([]string{"chordring", "--verbose"}, args...))
	}()
	return ret
}

func TestRing(t *testing.T) {
	if os.Getenv("GO_RUN_INTEGRATION") == "" {
		t.Skip("skipping integration tests")
	}

	as := require.New(t)
	logger := zaptest.NewLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registryAddr := fmt.Sprintf("127.0.0.1:%d", registryPort)
	registryReturn := runApp(ctx, registry.Generate(), "registry", "--listen", registryAddr)

	select {
	case err := <-registryReturn:
		as.FailNow("registry returned unexpectedly", "%v", err)
	case <-time.After(time.Second):
	}

	nodeReturns := make([]<-chan error, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		nodeReturns = append(nodeReturns, runApp(ctx, node.Generate(),
			"node",
			"--listen", fmt.Sprintf("127.0.0.1:%d", nodePortBase+i),
			"--registry", registryAddr,
			"--connect-delay", "100ms",
		))
		// joins are sequential, like nodes started by hand
		time.Sleep(time.Millisecond * 500)
	}

	dialer := &rpcImpl.Dialer{
		Logger:   logger,
		Attempts: 3,
		Delay:    time.Millisecond * 100,
	}
	regRPC, err := dialer.Dial(ctx, registryAddr)
	as.NoError(err)
	reg := registryImpl.NewClient(regRPC)
	defer reg.Close()

	var nodes []*protocol.Node
	as.NoError(testcond.WaitForCondition(func() bool {
		nodes, err = reg.GetConnectedNodes(ctx)
		return err == nil && len(nodes) == numNodes
	}, time.Millisecond*100, time.Second*5))

	vnodes := make([]*chord.RemoteNode, 0, len(nodes))
	for _, n := range nodes {
		vnode, err := chord.DialFactory(dialer)(ctx, n)
		as.NoError(err)
		defer vnode.(*chord.RemoteNode).Close()
		vnodes = append(vnodes, vnode.(*chord.RemoteNode))
	}

	for i := 0; i < 30; i++ {
		res, err := vnodes[i%len(vnodes)].QueryDHT(ctx, &protocol.Query{
			Ty:    protocol.OperationType_SET,
			Key:   []byte(fmt.Sprintf("key-%d", i)),
			Value: []byte(fmt.Sprintf("value-%d", i)),
		})
		as.NoError(err)
		as.False(res.HasError())
	}
	for i := 0; i < 30; i++ {
		res, err := vnodes[(i+1)%len(vnodes)].QueryDHT(ctx, &protocol.Query{
			Ty:  protocol.OperationType_GET,
			Key: []byte(fmt.Sprintf("key-%d", i)),
		})
		as.NoError(err)
		as.Equal(fmt.Sprintf("value-%d", i), string(res.GetValue()))
	}

	clientReturn := runApp(ctx, client.Generate(), "client", "--registry", registryAddr, "--nearest", "get", "key-7")
	select {
	case err := <-clientReturn:
		as.NoError(err)
	case <-time.After(time.Second * 10):
		as.FailNow("client did not return")
	}

	cancel()
	for _, ret := range append(nodeReturns, registryReturn) {
		select {
		case err := <-ret:
			as.NoError(err)
		case <-time.After(time.Second * 5):
			as.FailNow("command did not stop")
		}
	}
}
