package common

import (
	"math/rand"
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a cluster-safe int64 identifier.
// The worker id can be set with the STOREFRONT_NODE_ID environment
// variable when running more than one instance against the same database.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		nodeID := int64(rand.Intn(1024))
		if v := os.Getenv("STOREFRONT_NODE_ID"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 && n < 1024 {
				nodeID = n
			}
		}
		node, err := snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
		snowflakeNode = node
	})
	return snowflakeNode.Generate().Int64()
}
