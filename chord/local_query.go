package chord

import (
	"context"
	"time"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"go.uber.org/zap"
)

// QueryDHT hashes the raw key once, then routes the query like any forwarded one.
func (n *LocalNode) QueryDHT(ctx context.Context, query *protocol.Query) (*protocol.QueryResult, error) {
	if query == nil {
		return nil, ring.ErrUnknownOperation
	}
	return n.ForwardQuery(ctx, &protocol.EncodedQuery{
		Ty:    query.GetTy(),
		Key:   ring.Hash(query.GetKey()),
		Value: query.GetValue(),
	})
}

func (n *LocalNode) ForwardQuery(ctx context.Context, query *protocol.EncodedQuery) (*protocol.QueryResult, error) {
	if query == nil {
		return nil, ring.ErrUnknownOperation
	}

	key := query.GetKey()

	next := n.next.Load()
	if next == nil {
		// sole member of the ring
		return n.executeQuery(query)
	}
	if next.ID() == n.ID() {
		return nil, ring.ErrDegenerateNeighbor
	}
	if ring.Owns(n.ID(), next.ID(), key) {
		return n.executeQuery(query)
	}

	prev := n.prev.Load()
	if prev == nil {
		return nil, ring.ErrMissingPredecessor
	}

	target := next
	if ring.CCWDistance(n.ID(), key) < ring.CCWDistance(key, n.ID()) {
		target = prev
	}

	n.forwardedQueries.Inc()
	if ce := n.logger.Check(zap.DebugLevel, "Forwarding query"); ce != nil {
		ce.Write(zap.Object("query", query), zap.Object("to", identityOf(target)))
	}

	start := time.Now()
	result, err := target.ForwardQuery(ctx, query)
	if err == nil && n.NodesRTT != nil {
		n.NodesRTT.Observe(target.ID(), time.Since(start))
	}
	return result, err
}

// executeQuery applies a query to the local store. Missing keys and values are
// reported in the result, not as errors.
func (n *LocalNode) executeQuery(query *protocol.EncodedQuery) (*protocol.QueryResult, error) {
	n.localQueries.Inc()

	key := query.GetKey()

	switch query.GetTy() {
	case protocol.OperationType_SET:
		if !query.HasValue() {
			return &protocol.QueryResult{
				Error: ring.ErrValueRequired.Error(),
			}, nil
		}
		prev, ok := n.Store.Set(key, query.GetValue())
		if !ok {
			return &protocol.QueryResult{}, nil
		}
		return &protocol.QueryResult{
			Value: prev,
		}, nil

	case protocol.OperationType_GET:
		val, ok := n.Store.Get(key)
		if !ok {
			return &protocol.QueryResult{
				Error: ring.ErrKeyNotFound.Error(),
			}, nil
		}
		return &protocol.QueryResult{
			Value: val,
		}, nil

	case protocol.OperationType_DELETE:
		prev, ok := n.Store.Delete(key)
		if !ok {
			return &protocol.QueryResult{
				Error: ring.ErrKeyNotFound.Error(),
			}, nil
		}
		return &protocol.QueryResult{
			Value: prev,
		}, nil

	default:
		return nil, ring.ErrUnknownOperation
	}
}
