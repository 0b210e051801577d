package timing

import "time"

const (
	// ConnectAttempts is how many times a node tries to reach a peer before giving up
	ConnectAttempts = 5
	// ConnectDelay is the fixed wait between connection attempts
	ConnectDelay = time.Second * 5
	// ClientConnectAttempts is how many times the client tries to reach the registry or a node
	ClientConnectAttempts = 2
	// ClientConnectDelay is the fixed wait between client connection attempts
	ClientConnectDelay = time.Millisecond * 500
	// QueryTimeout bounds a single client operation, including forwarding
	QueryTimeout = time.Second * 10
	// DialTimeout bounds a single TCP connection attempt
	DialTimeout = time.Second * 3
	// RegisterAttempts bounds registration retries on identifier collision
	RegisterAttempts = 3
	// NodesCacheTTL is how long a client trusts the registry's node list
	NodesCacheTTL = time.Second * 10
	// RTTWindow is how far back stats pages aggregate latency measurements
	RTTWindow = time.Second * 30
)
