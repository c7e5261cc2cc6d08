package message

import (
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/internal/model"
	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/snowflake"
)

func TestMain(m *testing.M) {
	snowflake.Init(1)
	m.Run()
}

// fakeOracle 固定订单 42 的参与者为 10（客户）和 20（服务提供者）
type fakeOracle struct{}

func (fakeOracle) GetParticipants(pedidoID int64) (*respond.OrderParticipants, error) {
	if pedidoID != 42 {
		return nil, errorx.New(errorx.CodeNotFound, "pedido não encontrado")
	}
	return &respond.OrderParticipants{ClienteId: 10, PrestadorId: 20}, nil
}

// fakeMessageRepo 内存消息仓库
type fakeMessageRepo struct {
	rows map[int64]*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{rows: make(map[int64]*model.Message)}
}

func (f *fakeMessageRepo) Create(message *model.Message) error {
	copied := *message
	f.rows[message.Id] = &copied
	return nil
}

func (f *fakeMessageRepo) FindByPedidoID(pedidoID int64) ([]model.Message, error) {
	var result []model.Message
	for _, m := range f.rows {
		if m.PedidoServicoId == pedidoID {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EnviadoEm.Before(result[j].EnviadoEm) })
	return result, nil
}

func (f *fakeMessageRepo) FindByID(id int64) (*model.Message, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "mensagem não encontrada")
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMessageRepo) MarkRead(id int64, at time.Time) (int64, error) {
	m, ok := f.rows[id]
	if !ok || m.Lida {
		return 0, nil
	}
	m.Lida = true
	m.LidaEm = sql.NullTime{Time: at, Valid: true}
	return 1, nil
}

func (f *fakeMessageRepo) MarkAllRead(pedidoID int64, readerID int64, at time.Time) (int64, error) {
	var affected int64
	for _, m := range f.rows {
		if m.PedidoServicoId == pedidoID && m.RemetenteId != readerID && !m.Lida {
			m.Lida = true
			m.LidaEm = sql.NullTime{Time: at, Valid: true}
			affected++
		}
	}
	return affected, nil
}

func (f *fakeMessageRepo) LastRead(pedidoID int64, excludeRemetenteID int64) (*time.Time, error) {
	var last *time.Time
	for _, m := range f.rows {
		if m.PedidoServicoId == pedidoID && m.RemetenteId != excludeRemetenteID && m.LidaEm.Valid {
			t := m.LidaEm.Time
			if last == nil || t.After(*last) {
				last = &t
			}
		}
	}
	return last, nil
}

func newService(repo *fakeMessageRepo) *Service {
	return NewMessageService(repo, fakeOracle{}, 2000)
}

func TestAppendAndHistory(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	msg, err := svc.Append(42, 10, "Maria", "Olá, tudo bem?")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if msg.Id == 0 {
		t.Error("expected generated message id")
	}
	if msg.Lida {
		t.Error("new message must start unread")
	}
	if msg.RemetenteNome != "Maria" {
		t.Errorf("RemetenteNome = %q", msg.RemetenteNome)
	}

	history, err := svc.History(42, 20)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Conteudo != "Olá, tudo bem?" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestAppendValidation(t *testing.T) {
	svc := newService(newFakeMessageRepo())

	if _, err := svc.Append(42, 10, "Maria", "   "); !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("blank body: got %v, want CodeInvalidParam", err)
	}
	if _, err := svc.Append(42, 10, "Maria", strings.Repeat("a", 2001)); !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("oversized body: got %v, want CodeInvalidParam", err)
	}
	if _, err := svc.Append(42, 99, "Intruso", "oi"); !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("non-participant: got %v, want CodeForbidden", err)
	}
	if _, err := svc.Append(7, 10, "Maria", "oi"); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("missing order: got %v, want CodeNotFound", err)
	}
}

func TestHistoryAuthorization(t *testing.T) {
	svc := newService(newFakeMessageRepo())
	if _, err := svc.History(42, 99); !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("got %v, want CodeForbidden", err)
	}
}

func TestMarkOne(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	msg, err := svc.Append(42, 10, "Maria", "Olá")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	receipt, err := svc.MarkOne(42, msg.Id, 20)
	if err != nil {
		t.Fatalf("MarkOne: %v", err)
	}
	if receipt == nil || receipt.QuemLeuId != 20 || receipt.MensagemId != msg.Id {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	firstReadAt := receipt.LidaEm

	// 重复标记保持首次已读时间
	again, err := svc.MarkOne(42, msg.Id, 20)
	if err != nil {
		t.Fatalf("repeated MarkOne: %v", err)
	}
	if again == nil || !again.LidaEm.Equal(firstReadAt) {
		t.Errorf("repeated read must keep original timestamp: %+v", again)
	}
}

func TestMarkOneSelfReadIsNoOp(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	msg, _ := svc.Append(42, 10, "Maria", "Olá")
	receipt, err := svc.MarkOne(42, msg.Id, 10)
	if err != nil {
		t.Fatalf("MarkOne: %v", err)
	}
	if receipt != nil {
		t.Errorf("self-read must not produce a receipt: %+v", receipt)
	}
	stored, _ := repo.FindByID(msg.Id)
	if stored.Lida {
		t.Error("self-read must not mark the message")
	}
}

func TestMarkOneRoomMismatch(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	msg, _ := svc.Append(42, 10, "Maria", "Olá")
	if _, err := svc.MarkOne(7, msg.Id, 20); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("wrong room: got %v, want CodeNotFound", err)
	}
	if _, err := svc.MarkOne(42, 999999, 20); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("missing message: got %v, want CodeNotFound", err)
	}
}

func TestMarkAllIdempotent(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	svc.Append(42, 10, "Maria", "um")
	svc.Append(42, 10, "Maria", "dois")
	svc.Append(42, 20, "João", "três")

	// 读者 20 只标记对端 10 发来的两条
	rows, err := svc.MarkAll(42, 20)
	if err != nil {
		t.Fatalf("MarkAll: %v", err)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}

	rows, err = svc.MarkAll(42, 20)
	if err != nil {
		t.Fatalf("second MarkAll: %v", err)
	}
	if rows != 0 {
		t.Errorf("second MarkAll rows = %d, want 0", rows)
	}

	if _, err = svc.MarkAll(42, 99); !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("non-participant: got %v, want CodeForbidden", err)
	}
}

func TestLastSeen(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := newService(repo)

	msg, _ := svc.Append(42, 10, "Maria", "Olá")

	// 20 还没读任何消息
	seen, err := svc.LastSeen(42, 20)
	if err != nil {
		t.Fatalf("LastSeen: %v", err)
	}
	if seen.VistoEm != nil {
		t.Errorf("VistoEm = %v, want nil", seen.VistoEm)
	}

	receipt, err := svc.MarkOne(42, msg.Id, 20)
	if err != nil {
		t.Fatalf("MarkOne: %v", err)
	}

	seen, err = svc.LastSeen(42, 20)
	if err != nil {
		t.Fatalf("LastSeen after read: %v", err)
	}
	if seen.VistoEm == nil || !seen.VistoEm.Equal(receipt.LidaEm) {
		t.Errorf("VistoEm = %v, want %v", seen.VistoEm, receipt.LidaEm)
	}

	// 10 还没读过 20 的消息
	seen, err = svc.LastSeen(42, 10)
	if err != nil {
		t.Fatalf("LastSeen for sender: %v", err)
	}
	if seen.VistoEm != nil {
		t.Errorf("sender VistoEm = %v, want nil", seen.VistoEm)
	}

	if _, err = svc.LastSeen(7, 10); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("missing order: got %v, want CodeNotFound", err)
	}
}
