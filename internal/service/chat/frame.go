// Package chat 实现聊天子系统的核心：帧协议、会话管理、房间代理和 WebSocket 网关
// frame.go
// 核心职责：定义连接上承载的帧协议和目的地路径解析
package chat

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// 帧类型
const (
	FrameConnect    = "CONNECT"    // 客户端：握手，携带 Authorization 头
	FrameConnected  = "CONNECTED"  // 服务端：握手成功确认
	FrameSubscribe  = "SUBSCRIBE"  // 客户端：订阅房间主题
	FrameSubscribed = "SUBSCRIBED" // 服务端：订阅成功确认
	FrameSend       = "SEND"       // 客户端：向 /app 目的地发送载荷
	FrameMessage    = "MESSAGE"    // 服务端：房间主题上的广播事件
	FrameError      = "ERROR"      // 服务端：协议级错误
	FrameDisconnect = "DISCONNECT" // 客户端：主动断开
)

// Frame 连接上的一帧
// Body 保持原始 JSON，由各目的地的处理逻辑自行解析
type Frame struct {
	Frame       string            `json:"frame"`
	Headers     map[string]string `json:"headers,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Body        json.RawMessage   `json:"body,omitempty"`
}

// 客户端可发送的 /app 目的地类型
const (
	appSendMessage = iota // /app/chat/{pedidoId}
	appTyping             // /app/chat/{pedidoId}/digitando
	appMarkRead           // /app/chat/{pedidoId}/lida/{mensagemId}
)

var (
	topicPattern   = regexp.MustCompile(`^/topic/messages/(\d+)(/digitando|/lida|/ultimo-visto)?$`)
	appSendPattern = regexp.MustCompile(`^/app/chat/(\d+)$`)
	appTypePattern = regexp.MustCompile(`^/app/chat/(\d+)/digitando$`)
	appReadPattern = regexp.MustCompile(`^/app/chat/(\d+)/lida/(\d+)$`)
)

// TopicMessages 房间的消息主题
func TopicMessages(pedidoID int64) string {
	return "/topic/messages/" + strconv.FormatInt(pedidoID, 10)
}

// TopicTyping 房间的输入状态主题
func TopicTyping(pedidoID int64) string {
	return TopicMessages(pedidoID) + "/digitando"
}

// TopicRead 房间的已读回执主题
func TopicRead(pedidoID int64) string {
	return TopicMessages(pedidoID) + "/lida"
}

// TopicLastSeen 房间的最后查看主题
func TopicLastSeen(pedidoID int64) string {
	return TopicMessages(pedidoID) + "/ultimo-visto"
}

// ParseTopicDestination 解析订阅目的地，返回所属订单 ID
// 四个子主题共用同一套参与者校验
func ParseTopicDestination(destination string) (pedidoID int64, ok bool) {
	m := topicPattern.FindStringSubmatch(destination)
	if m == nil {
		return 0, false
	}
	pedidoID, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return pedidoID, true
}

// parseAppDestination 解析 SEND 帧的目的地
func parseAppDestination(destination string) (kind int, pedidoID int64, mensagemID int64, ok bool) {
	if m := appSendPattern.FindStringSubmatch(destination); m != nil {
		pedidoID, _ = strconv.ParseInt(m[1], 10, 64)
		return appSendMessage, pedidoID, 0, true
	}
	if m := appTypePattern.FindStringSubmatch(destination); m != nil {
		pedidoID, _ = strconv.ParseInt(m[1], 10, 64)
		return appTyping, pedidoID, 0, true
	}
	if m := appReadPattern.FindStringSubmatch(destination); m != nil {
		pedidoID, _ = strconv.ParseInt(m[1], 10, 64)
		mensagemID, _ = strconv.ParseInt(m[2], 10, 64)
		return appMarkRead, pedidoID, mensagemID, true
	}
	return 0, 0, 0, false
}

// newMessageFrame 构造房间广播帧
func newMessageFrame(destination string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{
		Frame:       FrameMessage,
		Destination: destination,
		Body:        body,
	})
}
