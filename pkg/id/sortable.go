package id

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// UUID returns a generator of time-ordered UUID v7 strings.
// If the system random source fails it falls back to a random v4.
func UUID() func() string {
	return func() string {
		v, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return v.String()
	}
}

// Snowflake returns a generator of Twitter-style snowflake ids.
// nodeID must be unique per process in a distributed setup (0-1023).
// The generator is safe for concurrent use.
func Snowflake(nodeID int64) (func() string, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("id: failed to create snowflake node: %w", err)
	}

	return func() string { return node.Generate().String() }, nil
}
