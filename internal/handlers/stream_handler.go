package handlers

import (
	"context"
	"net/http"
	"time"

	"roomcare/pkg/cache"
	"roomcare/pkg/config"
	"roomcare/pkg/jwt"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// 写超时
	writeWait = 10 * time.Second
	// 心跳间隔，必须小于pongWait
	pingPeriod = 30 * time.Second
	// 等待pong的超时时间
	pongWait = 60 * time.Second
)

// StreamHandler 仪表盘事件流处理器
// 把Redis频道上的空室摘要等事件透传给WebSocket客户端
type StreamHandler struct {
	redis    *cache.RedisCache
	channel  string
	upgrader websocket.Upgrader
}

func NewStreamHandler(redis *cache.RedisCache, channel string) *StreamHandler {
	allowed := make(map[string]struct{})
	for _, origin := range config.GetConfig().CORS.AllowOrigins {
		allowed[origin] = struct{}{}
	}
	_, allowAll := allowed["*"]

	return &StreamHandler{
		redis:   redis,
		channel: channel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// Stream 建立WebSocket连接并转发事件
// @Router /api/v1/dashboard/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	// 从查询参数获取token（WebSocket不支持自定义header）
	token := c.Query("token")
	if token == "" {
		// 服务间调用允许走API密钥头
		apiKey := c.GetHeader("X-API-Key")
		cfg := config.GetConfig()
		if apiKey == "" || cfg.APIKey.Key == "" || apiKey != cfg.APIKey.Key {
			response.Unauthorized(c, "请求未携带认证信息")
			return
		}
	} else {
		if _, err := jwt.GetJWTManager().VerifyToken(token); err != nil {
			response.Unauthorized(c, "无效或过期的令牌")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Errorf("WebSocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.redis.Subscribe(ctx, h.channel)
	defer sub.Close()

	// 读泵：只用于感知客户端关闭和pong应答
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
