package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNo 生成订单号
// 格式：ORD + yyyyMMddHHmmss + 8位随机十六进制（取自UUIDv4）
// 示例：ORD20250615120000A1B2C3D4
// 时间前缀保证大致有序，随机后缀防遍历；唯一性最终由order_no唯一索引保证
func GenerateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD" + time.Now().Format("20060102150405") + suffix
}
