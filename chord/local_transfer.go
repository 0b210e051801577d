package chord

import (
	"context"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"go.uber.org/zap"
)

const transferBuffer = 100

// TransferKeys hands every entry outside [n, target) to fn. Each entry is
// removed from the store before it is handed over; entries still queued when
// fn fails or ctx is cancelled are put back.
func (n *LocalNode) TransferKeys(ctx context.Context, target uint64, fn ring.TransferFunc) error {
	if target == n.ID() {
		return ring.ErrDegenerateNeighbor
	}

	entries := n.Store.Scan(func(key uint64) bool {
		return !ring.Owns(n.ID(), target, key)
	})

	n.logger.Info("Transferring keys to new successor", zap.Uint64("target", target), zap.Int("keys", len(entries)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *protocol.KeyValueEntry, transferBuffer)
	go func() {
		defer close(ch)
		for _, entry := range entries {
			if ctx.Err() != nil {
				return
			}
			val, ok := n.Store.Delete(entry.GetKey())
			if !ok {
				// removed by a concurrent query since the scan
				continue
			}
			entry.Value = val
			select {
			case ch <- entry:
			case <-ctx.Done():
				n.Store.Set(entry.GetKey(), entry.GetValue())
				return
			}
		}
	}()

	var (
		sent uint64
		err  error
	)
	for entry := range ch {
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			if err = fn(entry); err == nil {
				sent++
				continue
			}
			cancel()
		}
		// the entry may not have reached the receiver. Entries already
		// handed to fn are gone from this store, so a crash mid-transfer
		// still loses them.
		n.Store.Set(entry.GetKey(), entry.GetValue())
	}
	n.transferredOut.Add(sent)

	if err == nil && sent < uint64(len(entries)) {
		err = ctx.Err()
	}
	if err != nil {
		n.logger.Warn("Key transfer aborted", zap.Uint64("target", target), zap.Uint64("sent", sent), zap.Error(err))
		return err
	}

	n.logger.Debug("Key transfer completed", zap.Uint64("target", target), zap.Uint64("sent", sent))
	return nil
}
