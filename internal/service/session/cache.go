// Package session 提供会话的两级缓存
// 内存 map 做一级，Redis 做二级，Redis 不可用时自动退化为纯内存
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/fit-coach/internal/model"
)

const (
	// 会话在 Redis 中的过期时间
	sessionTTL = 24 * time.Hour
	// Redis key 前缀
	sessionKeyPrefix = "session:"
	// 内存层的会话上限，超出时逐出一个旧条目腾位置
	maxMemorySessions = 1024
)

// Cache 会话缓存
type Cache struct {
	mu     sync.RWMutex
	memory map[string]*model.ChatSession
	redis  *redis.Client
}

// NewCache 创建会话缓存，redisClient 可以为 nil
func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{
		memory: make(map[string]*model.ChatSession),
		redis:  redisClient,
	}
}

// Get 读取缓存中的会话，未命中返回 nil
// 返回的是副本，调用方修改不会影响缓存里的其他读者
func (c *Cache) Get(ctx context.Context, sessionID string) *model.ChatSession {
	c.mu.RLock()
	sess, ok := c.memory[sessionID]
	c.mu.RUnlock()
	if ok {
		return sess.Clone()
	}

	if c.redis == nil {
		return nil
	}
	sess = c.loadFromRedis(ctx, sessionID)
	if sess == nil {
		return nil
	}
	c.mu.Lock()
	c.storeLocked(sess)
	c.mu.Unlock()
	return sess.Clone()
}

// Put 写入缓存（写穿到 Redis，Redis 写失败只记日志）
func (c *Cache) Put(ctx context.Context, sess *model.ChatSession) {
	if sess == nil || sess.ID == "" {
		return
	}
	c.mu.Lock()
	c.storeLocked(sess.Clone())
	c.mu.Unlock()

	if c.redis == nil {
		return
	}
	if err := c.saveToRedis(ctx, sess); err != nil {
		log.Printf("failed to save session %s to redis: %v", sess.ID, err)
	}
}

// Invalidate 清除一个会话的缓存
func (c *Cache) Invalidate(ctx context.Context, sessionID string) {
	c.mu.Lock()
	delete(c.memory, sessionID)
	c.mu.Unlock()

	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		log.Printf("failed to delete session %s from redis: %v", sessionID, err)
	}
}

// storeLocked 写入内存层，容量满时先随机逐出一个条目
// 调用方必须持有写锁
func (c *Cache) storeLocked(sess *model.ChatSession) {
	if _, exists := c.memory[sess.ID]; !exists && len(c.memory) >= maxMemorySessions {
		for id := range c.memory {
			delete(c.memory, id)
			break
		}
	}
	c.memory[sess.ID] = sess
}

func (c *Cache) loadFromRedis(ctx context.Context, sessionID string) *model.ChatSession {
	data, err := c.redis.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil
	}
	var sess model.ChatSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil
	}
	return &sess
}

func (c *Cache) saveToRedis(ctx context.Context, sess *model.ChatSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, sessionKeyPrefix+sess.ID, data, sessionTTL).Err()
}
