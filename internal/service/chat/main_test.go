package chat

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("chat-gateway-test-secret-0123456789", 60, 168)
	m.Run()
}

// stubOrders 固定订单 42 的参与者为 10 和 20
type stubOrders struct{}

func (stubOrders) GetParticipants(pedidoID int64) (*respond.OrderParticipants, error) {
	if pedidoID != 42 {
		return nil, errorx.New(errorx.CodeNotFound, "pedido não encontrado")
	}
	return &respond.OrderParticipants{ClienteId: 10, PrestadorId: 20}, nil
}

func (s stubOrders) Authorize(pedidoID int64, userID int64) error {
	participants, err := s.GetParticipants(pedidoID)
	if err != nil {
		return err
	}
	if !participants.Contains(userID) {
		return errorx.New(errorx.CodeForbidden, "acesso negado ao chat")
	}
	return nil
}

// stubIdentity 返回固定格式的展示名称
type stubIdentity struct{}

func (stubIdentity) ResolveDisplay(userID int64) (*respond.UserDisplayRespond, error) {
	return &respond.UserDisplayRespond{
		Id:   userID,
		Nome: "Usuário " + strconv.FormatInt(userID, 10),
	}, nil
}

// stubMessages 内存消息服务，只覆盖网关用到的路径
type stubMessages struct {
	mu     sync.Mutex
	nextID int64
	orders stubOrders
	byID   map[int64]*respond.MessageRespond
}

func newStubMessages() *stubMessages {
	return &stubMessages{nextID: 1, byID: make(map[int64]*respond.MessageRespond)}
}

func (s *stubMessages) Append(pedidoID int64, remetenteID int64, remetenteNome string, conteudo string) (*respond.MessageRespond, error) {
	if conteudo == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "mensagem vazia")
	}
	if err := s.orders.Authorize(pedidoID, remetenteID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := &respond.MessageRespond{
		Id:            s.nextID,
		PedidoId:      pedidoID,
		RemetenteId:   remetenteID,
		RemetenteNome: remetenteNome,
		Conteudo:      conteudo,
		EnviadoEm:     time.Now(),
	}
	s.nextID++
	s.byID[msg.Id] = msg
	return msg, nil
}

func (s *stubMessages) History(pedidoID int64, viewerID int64) ([]respond.MessageRespond, error) {
	if err := s.orders.Authorize(pedidoID, viewerID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []respond.MessageRespond
	for _, msg := range s.byID {
		if msg.PedidoId == pedidoID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (s *stubMessages) MarkOne(pedidoID int64, mensagemID int64, readerID int64) (*respond.ReadReceiptRespond, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.byID[mensagemID]
	if !ok || msg.PedidoId != pedidoID {
		return nil, errorx.New(errorx.CodeNotFound, "mensagem não encontrada")
	}
	if msg.RemetenteId == readerID {
		return nil, nil
	}
	if !msg.Lida {
		now := time.Now()
		msg.Lida = true
		msg.LidaEm = &now
	}
	return &respond.ReadReceiptRespond{
		MensagemId: mensagemID,
		PedidoId:   pedidoID,
		QuemLeuId:  readerID,
		LidaEm:     *msg.LidaEm,
	}, nil
}

func (s *stubMessages) MarkAll(pedidoID int64, readerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, msg := range s.byID {
		if msg.PedidoId == pedidoID && msg.RemetenteId != readerID && !msg.Lida {
			now := time.Now()
			msg.Lida = true
			msg.LidaEm = &now
			affected++
		}
	}
	return affected, nil
}

func (s *stubMessages) LastSeen(pedidoID int64, identityID int64) (*respond.LastSeenRespond, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last *time.Time
	for _, msg := range s.byID {
		if msg.PedidoId == pedidoID && msg.RemetenteId != identityID && msg.LidaEm != nil {
			if last == nil || msg.LidaEm.After(*last) {
				last = msg.LidaEm
			}
		}
	}
	return &respond.LastSeenRespond{PedidoId: pedidoID, VistoEm: last}, nil
}
