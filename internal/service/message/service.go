// Package message 实现消息日志与已读状态引擎
package message

import (
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"easybiz_chat_server/internal/dao/mysql"
	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/internal/model"
	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

// ParticipantOracle 订单参与者查询，由 order 服务实现
// 在本包内声明接口，避免反向依赖上层包
type ParticipantOracle interface {
	GetParticipants(pedidoID int64) (*respond.OrderParticipants, error)
}

type Service struct {
	messages mysql.MessageRepository
	oracle   ParticipantOracle
	maxLen   int
}

// NewMessageService 创建消息服务
// maxLen 为消息内容最大长度（按字符计）
func NewMessageService(messages mysql.MessageRepository, oracle ParticipantOracle, maxLen int) *Service {
	return &Service{messages: messages, oracle: oracle, maxLen: maxLen}
}

func (s *Service) Append(pedidoID int64, remetenteID int64, remetenteNome string, conteudo string) (*respond.MessageRespond, error) {
	conteudo = strings.TrimSpace(conteudo)
	if conteudo == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "mensagem vazia")
	}
	if utf8.RuneCountInString(conteudo) > s.maxLen {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "mensagem excede o limite de %d caracteres", s.maxLen)
	}

	// 发送者必须是订单参与者；订单不存在返回 CodeNotFound
	participants, err := s.oracle.GetParticipants(pedidoID)
	if err != nil {
		return nil, err
	}
	if !participants.Contains(remetenteID) {
		return nil, errorx.New(errorx.CodeForbidden, "acesso negado ao chat")
	}

	msg := &model.Message{
		Id:              snowflake.GenerateID(),
		PedidoServicoId: pedidoID,
		RemetenteId:     remetenteID,
		RemetenteNome:   remetenteNome,
		Conteudo:        conteudo,
		EnviadoEm:       time.Now(),
		Lida:            false,
	}
	if err = s.messages.Create(msg); err != nil {
		return nil, err
	}

	zap.L().Debug("消息已追加",
		zap.Int64("pedidoID", pedidoID),
		zap.Int64("mensagemID", msg.Id),
		zap.Int64("remetenteID", remetenteID))
	return toRespond(msg), nil
}

func (s *Service) History(pedidoID int64, viewerID int64) ([]respond.MessageRespond, error) {
	participants, err := s.oracle.GetParticipants(pedidoID)
	if err != nil {
		return nil, err
	}
	if !participants.Contains(viewerID) {
		return nil, errorx.New(errorx.CodeForbidden, "acesso negado ao chat")
	}

	messages, err := s.messages.FindByPedidoID(pedidoID)
	if err != nil {
		return nil, err
	}
	result := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		result = append(result, *toRespond(&messages[i]))
	}
	return result, nil
}

func (s *Service) MarkOne(pedidoID int64, mensagemID int64, readerID int64) (*respond.ReadReceiptRespond, error) {
	msg, err := s.messages.FindByID(mensagemID)
	if err != nil {
		return nil, err
	}
	// 消息不属于该订单时按不存在处理，不泄露其归属
	if msg.PedidoServicoId != pedidoID {
		return nil, errorx.New(errorx.CodeNotFound, "mensagem não encontrada")
	}
	// 读自己发的消息不产生回执
	if msg.RemetenteId == readerID {
		return nil, nil
	}
	// 已读消息保持首次已读时间
	if msg.Lida {
		return &respond.ReadReceiptRespond{
			MensagemId: msg.Id,
			PedidoId:   pedidoID,
			QuemLeuId:  readerID,
			LidaEm:     msg.LidaEm.Time,
		}, nil
	}

	now := time.Now()
	rows, err := s.messages.MarkRead(mensagemID, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// 并发读者已抢先标记，取回实际的已读时间
		msg, err = s.messages.FindByID(mensagemID)
		if err != nil {
			return nil, err
		}
		if msg.LidaEm.Valid {
			now = msg.LidaEm.Time
		}
	}
	return &respond.ReadReceiptRespond{
		MensagemId: mensagemID,
		PedidoId:   pedidoID,
		QuemLeuId:  readerID,
		LidaEm:     now,
	}, nil
}

func (s *Service) MarkAll(pedidoID int64, readerID int64) (int64, error) {
	participants, err := s.oracle.GetParticipants(pedidoID)
	if err != nil {
		return 0, err
	}
	if !participants.Contains(readerID) {
		return 0, errorx.New(errorx.CodeForbidden, "acesso negado ao chat")
	}

	rows, err := s.messages.MarkAllRead(pedidoID, readerID, time.Now())
	if err != nil {
		return 0, err
	}
	return rows, nil
}

func (s *Service) LastSeen(pedidoID int64, identityID int64) (*respond.LastSeenRespond, error) {
	if _, err := s.oracle.GetParticipants(pedidoID); err != nil {
		return nil, err
	}
	lastRead, err := s.messages.LastRead(pedidoID, identityID)
	if err != nil {
		return nil, err
	}
	return &respond.LastSeenRespond{
		PedidoId: pedidoID,
		VistoEm:  lastRead,
	}, nil
}

func toRespond(msg *model.Message) *respond.MessageRespond {
	return &respond.MessageRespond{
		Id:            msg.Id,
		PedidoId:      msg.PedidoServicoId,
		RemetenteId:   msg.RemetenteId,
		RemetenteNome: msg.RemetenteNome,
		Conteudo:      msg.Conteudo,
		EnviadoEm:     msg.EnviadoEm,
		Lida:          msg.Lida,
		LidaEm:        nullTimePtr(msg.LidaEm),
	}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
