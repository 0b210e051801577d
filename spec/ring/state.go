//go:generate stringer -type=State
package ring

type State uint64

const (
	// Node not running, default state
	Inactive State = iota
	// Running the neighbor handshake and pulling keys
	Joining
	// Joined the ring, or created a new one
	Active
	// Shutting down
	Stopped
)
