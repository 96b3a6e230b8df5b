package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	userRepo "riggerbackend/database/repository/user"
	"riggerbackend/models"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Session-lookup stub keyed by token hash.
type stubUserRepo struct {
	userRepo.UserRepository
	users   map[string]*models.User
	lookups int
}

func (s *stubUserRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	s.lookups++
	u, ok := s.users[tokenHash]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeTokenCache struct {
	entries map[string]string
	getErr  error
	sets    int
	expires int
}

func (f *fakeTokenCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.entries[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeTokenCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.sets++
	f.entries[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeTokenCache) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires++
	return redis.NewBoolResult(true, nil)
}

var _ = Describe("JWTAuthMiddleware", func() {
	var (
		repo  *stubUserRepo
		cache *fakeTokenCache
		token string
		hash  string
	)

	serve := func(header string) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/guarded", JWTAuthMiddleware(repo), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"userID":   c.GetString("userID"),
				"userRole": c.GetString("userRole"),
			})
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		repo = &stubUserRepo{users: map[string]*models.User{}}
		cache = &fakeTokenCache{entries: map[string]string{}}
		authCache = func() tokenCache { return cache }

		var err error
		token, err = utils.GenerateToken("user-1", models.RoleWorker, time.Hour)
		Expect(err).ToNot(HaveOccurred())
		hash = utils.HashToken(token)
		repo.users[hash] = &models.User{ID: "user-1", Role: models.RoleWorker, TokenHash: hash}
	})

	AfterEach(func() {
		authCache = func() tokenCache { return nil }
	})

	It("rejects a request without a bearer token", func() {
		w := serve("")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(repo.lookups).To(Equal(0))
	})

	It("rejects a token it cannot verify", func() {
		w := serve("Bearer not-a-token")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(repo.lookups).To(Equal(0))
	})

	Context("on a cache miss", func() {
		It("authenticates against the store and populates the cache", func() {
			w := serve("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"userID":"user-1"`))
			Expect(w.Body.String()).To(ContainSubstring(`"userRole":"worker"`))

			Expect(repo.lookups).To(Equal(1))
			Expect(cache.sets).To(Equal(1))
			Expect(cache.entries).To(HaveKeyWithValue(utils.AuthCachePrefix+"user-1", hash))
		})

		It("rejects a revoked session without caching anything", func() {
			delete(repo.users, hash)

			w := serve("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(repo.lookups).To(Equal(1))
			Expect(cache.sets).To(Equal(0))
		})
	})

	Context("on a cache hit", func() {
		BeforeEach(func() {
			cache.entries[utils.AuthCachePrefix+"user-1"] = hash
		})

		It("authenticates without touching the store and refreshes the TTL", func() {
			w := serve("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(repo.lookups).To(Equal(0))
			Expect(cache.expires).To(Equal(1))
		})

		It("rejects a token whose hash does not match the cached session", func() {
			cache.entries[utils.AuthCachePrefix+"user-1"] = "some-other-hash"

			w := serve("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(repo.lookups).To(Equal(0))
		})
	})

	It("falls back to the store when the cache errors", func() {
		cache.getErr = errors.New("connection refused")

		w := serve("Bearer " + token)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(repo.lookups).To(Equal(1))
	})

	It("authenticates through the store when caching is disabled", func() {
		authCache = func() tokenCache { return nil }

		w := serve("Bearer " + token)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(repo.lookups).To(Equal(1))
		Expect(cache.sets).To(Equal(0))
	})

	It("rejects a token that belongs to a different account", func() {
		repo.users[hash].ID = "user-2"

		w := serve("Bearer " + token)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("RequireRole", func() {
	serveAs := func(role string, guard gin.HandlerFunc) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/admin", func(c *gin.Context) {
			c.Set("userRole", role)
		}, guard, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w
	}

	It("admits an allowed role", func() {
		Expect(serveAs(models.RoleAdmin, RequireAdmin()).Code).To(Equal(http.StatusOK))
	})

	It("blocks a role outside the allow list", func() {
		Expect(serveAs(models.RoleWorker, RequireAdmin()).Code).To(Equal(http.StatusForbidden))
	})
})
