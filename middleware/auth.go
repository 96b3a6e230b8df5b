package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	userRepo "riggerbackend/database/repository/user"
	"riggerbackend/models"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// tokenCache is the slice of the Redis client the auth path uses.
type tokenCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// authCache returns the session cache. A nil result disables caching and
// every request falls through to the store.
var authCache = func() tokenCache {
	if utils.AuthCacheClient == nil {
		return nil
	}
	return utils.AuthCacheClient
}

// JWTAuthMiddleware validates the bearer token and confirms it is the
// user's current session by comparing the token hash stored on the
// account. The hash is checked against the Redis auth cache first and
// only a miss goes to the store; a hit refreshes the cache TTL. Revoking
// a session clears both the stored hash and the cache entry, so old
// tokens die immediately even though they are not yet expired.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, role, err := utils.ParseToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		ctx := c.Request.Context()
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		cache := authCache()
		if cache != nil {
			cachedHash, err := cache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = cache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
					c.Set("userID", userID)
					c.Set("userRole", role)
					c.Next()
					return
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session expired or revoked",
					"code":  0,
				})
				return
			}
			if err != redis.Nil {
				log.Printf("WARNING: auth cache lookup failed: %v. Falling back to store.", err)
			}
		}

		usr, err := repo.GetByTokenHash(ctx, computedHash)
		if err != nil || usr.ID != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or revoked",
				"code":  0,
			})
			return
		}

		if cache != nil {
			_ = cache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// RequireRole gates an endpoint to the named roles. Must run after
// JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		role, _ := roleVal.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

// RequireAdmin gates an endpoint to admin accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
