package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache Redis缓存实现
type RedisCache struct {
	client *redis.Client
	prefix string
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisCache 创建Redis缓存实例
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "roomcare:cache"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 测试Redis连接
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// GetClient 获取底层Redis客户端（订阅等高级用途）
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}

// key 拼接带前缀的缓存键
func (c *RedisCache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

// Get 读取缓存
func (c *RedisCache) Get(key string) (string, bool, error) {
	ctx := context.Background()
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 写入缓存并设置TTL
func (c *RedisCache) Set(key, value string, ttl time.Duration) error {
	ctx := context.Background()
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete 删除缓存键
func (c *RedisCache) Delete(key string) error {
	ctx := context.Background()
	return c.client.Del(ctx, c.key(key)).Err()
}

// Publish 发布事件消息（频道不加前缀）
func (c *RedisCache) Publish(channel, message string) error {
	ctx := context.Background()
	return c.client.Publish(ctx, channel, message).Err()
}

// Subscribe 订阅事件频道
func (c *RedisCache) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return c.client.Subscribe(ctx, channel)
}
