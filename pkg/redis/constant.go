package redis

import "time"

// DefaultConnectTimeout is the maximum time to wait for the initial connection.
const DefaultConnectTimeout = 5 * time.Second
