package utils

import (
	"log"

	qconfig "github.com/qiniu/x/config"
)

var (
	DefaultConf Config
)

func InitConf(configFilePath string) {
	err := qconfig.LoadFile(&DefaultConf, configFilePath)
	if err != nil {
		log.Fatalf("failed to load config file, error %v", err)
	}
}

// MongoConfig mongo 数据库配置。
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// SignalConfig 排队信令通道（websocket）相关的配置。
type SignalConfig struct {
	// SendBufferSize 单个连接出站消息缓冲大小，缓冲满时丢弃该条推送。
	SendBufferSize int `json:"send_buffer_size"`
	// WriteTimeoutSecond 单次websocket写超时。
	WriteTimeoutSecond int `json:"write_timeout_s"`
	// MaxMessageBytes 入站消息大小上限。
	MaxMessageBytes int64 `json:"max_message_bytes"`
}

func (c *SignalConfig) FillDefault() {
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = 32
	}
	if c.WriteTimeoutSecond <= 0 {
		c.WriteTimeoutSecond = 5
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 4096
	}
}

// Config 后端配置。
type Config struct {
	// debug等级，为1时输出info/warn/error日志，为0除以上外还输出debug日志
	DebugLevel int    `json:"debug_level"`
	ListenAddr string `json:"listen_addr"`
	// 前端页面host，用于拼接通知里的跳转地址。
	FrontendUrlHost string        `json:"frontend_url_host"`
	Mongo           *MongoConfig  `json:"mongo"`
	Signal          *SignalConfig `json:"signal"`
	// JwtKey 签发面试官房间凭证所用的密钥。
	JwtKey string `json:"jwt_key"`
}

// NewSample 返回样例配置。
func NewSample() *Config {
	return &Config{
		DebugLevel: 0,
		ListenAddr: ":8080",
		Mongo: &MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "alif_test",
		},
		Signal: &SignalConfig{
			SendBufferSize:     32,
			WriteTimeoutSecond: 5,
			MaxMessageBytes:    4096,
		},
		JwtKey: "alif",
	}
}
