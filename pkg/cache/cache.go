package cache

import "time"

// Cache 带TTL的键值缓存接口
// 由调用方构造并显式注入，禁止在业务代码里隐藏单例
type Cache interface {
	// Get 读取缓存，第二个返回值表示键是否存在（过期视为不存在）
	Get(key string) (string, bool, error)
	// Set 写入缓存并设置过期时间
	Set(key, value string, ttl time.Duration) error
	// Delete 删除缓存键
	Delete(key string) error
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(channel, message string) error
}
