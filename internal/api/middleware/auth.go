package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mailscout/profile_go_server/internal/model"
	"github.com/mailscout/profile_go_server/internal/pkg/jwt"
	"github.com/mailscout/profile_go_server/internal/pkg/response"
)

const (
	IdentityKey = "identity"
)

// Auth JWT 认证中间件，解析身份提供方 Token 并注入 Identity
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		c.Set(IdentityKey, &model.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
		})
		c.Next()
	}
}

// GetIdentity 从上下文获取身份
func GetIdentity(c *gin.Context) (*model.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*model.Identity)
	return identity, ok
}
