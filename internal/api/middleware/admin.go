package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mailscout/profile_go_server/internal/pkg/response"
)

const serviceKeyHeader = "X-Service-Key"

// ServiceKey 管理端中间件：校验特权服务密钥
// 配置里只存 bcrypt 哈希，未配置时一律拒绝
func ServiceKey(serviceKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceKeyHash == "" {
			response.PermissionError(c, "管理接口未启用")
			c.Abort()
			return
		}

		key := c.GetHeader(serviceKeyHeader)
		if key == "" {
			response.PermissionError(c, "请提供服务密钥")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(serviceKeyHash), []byte(key)); err != nil {
			response.PermissionError(c, "服务密钥无效")
			c.Abort()
			return
		}

		c.Next()
	}
}
