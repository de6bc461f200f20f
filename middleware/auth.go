package middleware

import (
	"jobboard/models"
	"jobboard/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
	ctxActor    = "actor"
)

// TokenParser xác thực access token và trả về actor
type TokenParser interface {
	Parse(token string) (models.Actor, error)
}

// AuthMiddleware xử lý authentication; roles rỗng nghĩa là mọi role đều được
func AuthMiddleware(tokens TokenParser, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		actor, err := tokens.Parse(authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !hasRole(actor.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth gắn actor nếu có token hợp lệ, không chặn request nếu không có
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if actor, err := tokens.Parse(authHeader); err == nil {
				setActor(c, actor)
			}
		}
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user đã xác thực
func RoleMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !hasRole(actor.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor lấy actor đã được middleware gắn vào context
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(ctxActor)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

func setActor(c *gin.Context, actor models.Actor) {
	c.Set(ctxActor, actor)
	c.Set(ctxUserID, actor.UserID)
	c.Set(ctxUserRole, actor.Role)
}

func hasRole(role models.Role, roles []models.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler trả lỗi còn sót trong c.Errors nếu handler chưa ghi response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.Fail(c, c.Errors.Last().Err)
		}
	}
}
