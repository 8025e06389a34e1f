package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// NumberPrefix starts every quotation number.
const NumberPrefix = "QTN"

// Numberer hands out quotation numbers.
type Numberer interface {
	Next(at time.Time) string
}

// SnowflakeNumberer builds QTN-YYYYMMDD-<suffix> numbers whose suffix is a
// snowflake id in upper-case base36. Ids are unique per node; run one node
// id per process.
type SnowflakeNumberer struct {
	node *snowflake.Node
}

func NewSnowflakeNumberer(nodeID int64) (*SnowflakeNumberer, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeNumberer{node: node}, nil
}

func (n *SnowflakeNumberer) Next(at time.Time) string {
	suffix := strings.ToUpper(strconv.FormatInt(n.node.Generate().Int64(), 36))
	return fmt.Sprintf("%s-%s-%s", NumberPrefix, at.Format("20060102"), suffix)
}
