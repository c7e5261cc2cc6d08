package constants

import "time"

const (
	CHANNEL_SIZE         = 100              // 连接出站通道和 broker 命令通道大小
	REDIS_TIMEOUT        = 1                // 消息列表缓存过期时间 (分钟)
	PARTICIPANTS_TIMEOUT = 10               // 聊天室参与者缓存过期时间 (分钟)，房间数据不可变，可放心缓存
	MAX_MESSAGE_LENGTH   = 2000             // 消息内容最大长度（字符数），可被配置覆盖
	HANDSHAKE_TIMEOUT    = 10 * time.Second // 握手窗口：CONNECT 帧必须在此时间内到达
)
