// Package robot holds the narrow capability interface the controller
// uses to read odometry and, in MAP_ONLY mode, ground truth pose. The
// core never knows the concrete robot's identity.
package robot

import "github.com/itohio/rbpfslam/internal/coords"

// Command is a velocity command sampled at a wall-clock timestamp.
type Command struct {
	V, Omega, T float32
}

// Source is the capability the controller depends on.
type Source interface {
	// Command returns the most recent velocity command.
	Command() Command
	// Pose returns ground truth, consulted only in MAP_ONLY mode.
	Pose() coords.Pose
}
