package idgen

import (
	"fmt"
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init 初始化Snowflake节点，多实例部署时节点ID必须互不相同
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("[IDGen] snowflake init failed: %v", err)
	}
	node = n
}

// New 生成全局唯一ID
func New() uint64 {
	if node == nil {
		panic("snowflake node not initialized")
	}
	return uint64(node.Generate().Int64())
}

// BillNo 生成商户转账单号
// 只含数字大写字母，固定BILL前缀+snowflake数字，长度远小于32位上限
// 同一逻辑转账单生成一次后在所有重试路径上保持不变
func BillNo() string {
	return fmt.Sprintf("BILL%d", New())
}
