package signal

import (
	"encoding/json"
	"testing"

	model "github.com/MananRajppout/alif/internal/protodef/model"
	"github.com/MananRajppout/alif/internal/service/queue"

	"github.com/MananRajppout/alif/internal/common/utils"
	"github.com/qiniu/x/xlog"
)

type stubParticipant struct{}

func (stubParticipant) SetParticipantStatus(xl *xlog.Logger, opportunityID string, userID string, status string) error {
	return nil
}

type stubProfile struct{}

func (stubProfile) GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error) {
	return &model.AccountDo{ID: id}, nil
}

func newTestController() (*WSController, *Registry, *queue.MemoryStore) {
	xl := xlog.New("signal-test")
	registry := NewRegistry(xl)
	store := queue.NewMemoryStore()
	coordinator := queue.NewCoordinator(store, registry, stubParticipant{}, stubProfile{}, xl)
	ctl := NewWSController(registry, coordinator, utils.SignalConfig{}, xl)
	return ctl, registry, store
}

func readFrame(t *testing.T, session *Session) map[string]interface{} {
	t.Helper()
	select {
	case frame := <-session.Frames():
		decoded := map[string]interface{}{}
		if err := json.Unmarshal(frame, &decoded); err != nil {
			t.Fatalf("bad frame %s: %v", frame, err)
		}
		return decoded
	default:
		t.Fatal("expect a frame, send buffer empty")
		return nil
	}
}

func TestRegistryNotifyTargetsSession(t *testing.T) {
	registry := NewRegistry(xlog.New("registry-test"))
	session := NewSession("u1", 4)
	registry.Bind("u1", session)

	registry.Notify(nil, "u1", model.EventIsMyTurn, model.IsMyTurnEvent{RoomID: "room1"})
	frame := readFrame(t, session)
	if frame["event"] != string(model.EventIsMyTurn) {
		t.Fatalf("expect isMyTurn frame, got %v", frame)
	}

	// absent target: dropped, no panic
	registry.Notify(nil, "nobody", model.EventIsMyTurn, model.IsMyTurnEvent{RoomID: "room1"})

	registry.Unbind("u1", session)
	if _, ok := registry.Get("u1"); ok {
		t.Fatal("expect session unbound")
	}
}

func TestRegistryRebindClosesOldSession(t *testing.T) {
	registry := NewRegistry(xlog.New("registry-test"))
	old := NewSession("u1", 4)
	registry.Bind("u1", old)
	replacement := NewSession("u1", 4)
	registry.Bind("u1", replacement)

	if err := old.TrySend([]byte("{}")); err != ErrSessionClosed {
		t.Fatalf("expect old session closed, got %v", err)
	}
	if current, _ := registry.Get("u1"); current != replacement {
		t.Fatal("expect replacement session registered")
	}

	// unbind of the stale session must not evict the replacement
	registry.Unbind("u1", old)
	if _, ok := registry.Get("u1"); !ok {
		t.Fatal("stale unbind evicted the live session")
	}
}

func TestSessionBackpressureDropsFrame(t *testing.T) {
	session := NewSession("u1", 1)
	if err := session.TrySend([]byte("a")); err != nil {
		t.Fatalf("first send error %v", err)
	}
	if err := session.TrySend([]byte("b")); err != ErrBackpressure {
		t.Fatalf("expect backpressure, got %v", err)
	}
}

func TestHandleCommandAckReplies(t *testing.T) {
	ctl, registry, store := newTestController()
	store.Enqueue("roundA", "u1")
	store.Enqueue("roundA", "u2")

	candidate := NewSession("u2", 4)
	registry.Bind("u2", candidate)
	interviewer := NewSession("", 4)

	xl := xlog.New("signal-test")
	ctl.handleCommand(xl, interviewer, []byte(`{"cmd":"getMyNumber","ack":1,"data":{"user_id":"u2","round_id":"roundA"}}`))
	frame := readFrame(t, interviewer)
	if frame["ack"].(float64) != 1 {
		t.Fatalf("expect ack 1, got %v", frame)
	}
	if frame["data"].(map[string]interface{})["index"].(float64) != 1 {
		t.Fatalf("expect index 1, got %v", frame)
	}

	ctl.handleCommand(xl, interviewer, []byte(`{"cmd":"getCurrentUser","ack":2,"data":{"room_id":"room1","round_id":"roundA"}}`))
	frame = readFrame(t, interviewer)
	data := frame["data"].(map[string]interface{})
	if data["isEmpty"] != true || data["queLength"].(float64) != 2 {
		t.Fatalf("expect empty room with 2 waiting, got %v", data)
	}
}

func TestHandleCommandAdvanceFlow(t *testing.T) {
	ctl, registry, store := newTestController()
	store.Enqueue("roundA", "u1")
	store.Enqueue("roundA", "u2")

	u1 := NewSession("u1", 4)
	registry.Bind("u1", u1)
	interviewer := NewSession("", 4)

	xl := xlog.New("signal-test")
	ctl.handleCommand(xl, interviewer, []byte(`{"cmd":"getNextParticipant","ack":5,"data":{"round_id":"roundA","room_id":"room1"}}`))

	reply := readFrame(t, interviewer)
	data := reply["data"].(map[string]interface{})
	if data["next_user_id"] != "u1" || data["queLength"].(float64) != 1 {
		t.Fatalf("expect u1 admitted with 1 waiting, got %v", data)
	}

	turn := readFrame(t, u1)
	if turn["event"] != string(model.EventIsMyTurn) {
		t.Fatalf("expect isMyTurn push to u1, got %v", turn)
	}
	if turn["data"].(map[string]interface{})["room_id"] != "room1" {
		t.Fatalf("expect room1 in turn push, got %v", turn)
	}
}

func TestHandleCommandAddInQueue(t *testing.T) {
	ctl, _, store := newTestController()
	session := NewSession("u1", 4)

	xl := xlog.New("signal-test")
	ctl.handleCommand(xl, session, []byte(`{"cmd":"addInQueue","data":{"user_id":"u1","round_id":"roundA"}}`))
	ctl.handleCommand(xl, session, []byte(`{"cmd":"addInQueue","data":{"user_id":"u1","round_id":"roundA"}}`))

	if got := store.Length("roundA"); got != 1 {
		t.Fatalf("expect single entry after duplicate add, got %d", got)
	}
	select {
	case frame := <-session.Frames():
		t.Fatalf("fire-and-forget add should not reply, got %s", frame)
	default:
	}
}

func TestHandleCommandBadFrames(t *testing.T) {
	ctl, _, store := newTestController()
	session := NewSession("u1", 4)
	xl := xlog.New("signal-test")

	ctl.handleCommand(xl, session, []byte(`not json`))
	ctl.handleCommand(xl, session, []byte(`{"cmd":"unknownCmd","data":{}}`))

	if got := store.Length("roundA"); got != 0 {
		t.Fatalf("bad frames mutated state, length %d", got)
	}
}
