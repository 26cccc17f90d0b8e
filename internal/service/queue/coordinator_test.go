package queue

import (
	"testing"

	errors2 "github.com/MananRajppout/alif/internal/protodef/errors"
	model "github.com/MananRajppout/alif/internal/protodef/model"

	"github.com/qiniu/x/xlog"
)

type notification struct {
	userID string
	event  model.QueueEvent
	data   interface{}
}

type fakeDispatcher struct {
	notifications []notification
}

func (d *fakeDispatcher) Notify(xl *xlog.Logger, userID string, event model.QueueEvent, data interface{}) {
	d.notifications = append(d.notifications, notification{userID, event, data})
}

type statusCall struct {
	opportunityID string
	userID        string
	status        string
}

type fakeParticipant struct {
	calls   []statusCall
	failing bool
}

func (p *fakeParticipant) SetParticipantStatus(xl *xlog.Logger, opportunityID string, userID string, status string) error {
	if p.failing {
		return &errors2.ServerError{Code: errors2.ServerErrorParticipantStatusFail}
	}
	p.calls = append(p.calls, statusCall{opportunityID, userID, status})
	return nil
}

type fakeProfile struct{}

func (f *fakeProfile) GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error) {
	return &model.AccountDo{ID: id, Nickname: "nick-" + id}, nil
}

func newTestCoordinator() (*Coordinator, *MemoryStore, *fakeDispatcher, *fakeParticipant) {
	store := NewMemoryStore()
	dispatcher := &fakeDispatcher{}
	participant := &fakeParticipant{}
	c := NewCoordinator(store, dispatcher, participant, &fakeProfile{}, xlog.New("coordinator-test"))
	return c, store, dispatcher, participant
}

func TestAdmitAndAdvance(t *testing.T) {
	c, store, dispatcher, _ := newTestCoordinator()
	store.Enqueue("roundA", "u1")
	store.Enqueue("roundA", "u2")

	reply := c.AdvanceNext(nil, "roundA", "room1")
	if reply.IsEmpty || reply.NextUserID != "u1" {
		t.Fatalf("expect u1 admitted, got %+v", reply)
	}
	if reply.QueueLength != 1 {
		t.Fatalf("expect 1 waiting, got %d", reply.QueueLength)
	}
	if len(dispatcher.notifications) != 1 {
		t.Fatalf("expect 1 notification, got %d", len(dispatcher.notifications))
	}
	n := dispatcher.notifications[0]
	if n.userID != "u1" || n.event != model.EventIsMyTurn {
		t.Fatalf("expect isMyTurn to u1, got %+v", n)
	}
	if turn, ok := n.data.(model.IsMyTurnEvent); !ok || turn.RoomID != "room1" {
		t.Fatalf("expect room1 in turn event, got %+v", n.data)
	}

	reply = c.AdvanceNext(nil, "roundA", "room1")
	if reply.NextUserID != "u2" || reply.QueueLength != 0 {
		t.Fatalf("expect u2 admitted with empty queue, got %+v", reply)
	}

	// queue drained: room goes idle
	reply = c.AdvanceNext(nil, "roundA", "room1")
	if !reply.IsEmpty {
		t.Fatalf("expect idle room, got %+v", reply)
	}
	if got := c.CurrentOccupant(nil, "roundA", "room1"); !got.IsEmpty {
		t.Fatalf("expect no occupant after drain, got %+v", got)
	}
}

func TestPassPromotesToNextRound(t *testing.T) {
	c, store, dispatcher, participant := newTestCoordinator()
	store.Enqueue("roundA", "u1")
	c.AdvanceNext(nil, "roundA", "room1")
	dispatcher.notifications = nil

	prevLength := store.Length("roundB")
	err := c.AddInQueue(nil, model.AddInQueueArgs{
		UserID:        "u1",
		RoundID:       "roundB",
		OpportunityID: "opp1",
		CurrentRoomID: "room1",
	})
	if err != nil {
		t.Fatalf("promote error %v", err)
	}
	if got := store.Length("roundB"); got != prevLength+1 {
		t.Fatalf("expect roundB length %d, got %d", prevLength+1, got)
	}
	if got := store.PositionOf("roundB", "u1"); got != prevLength {
		t.Fatalf("expect u1 at tail, position %d", got)
	}
	if len(participant.calls) != 1 || participant.calls[0].status != model.ParticipantStatusAccepted {
		t.Fatalf("expect accepted status write, got %+v", participant.calls)
	}
	if got := c.CurrentOccupant(nil, "roundA", "room1"); !got.IsEmpty {
		t.Fatalf("expect room1 freed, got %+v", got)
	}
	if len(dispatcher.notifications) != 1 || dispatcher.notifications[0].event != model.EventGoOnWaitingRoom {
		t.Fatalf("expect goOnWaitingRoom push, got %+v", dispatcher.notifications)
	}
}

func TestRejectIsTerminal(t *testing.T) {
	c, store, dispatcher, participant := newTestCoordinator()
	store.Enqueue("roundA", "u1")
	c.AdvanceNext(nil, "roundA", "room1")
	dispatcher.notifications = nil

	err := c.AddInQueue(nil, model.AddInQueueArgs{
		UserID:        "u1",
		OpportunityID: "opp1",
		CurrentRoomID: "room1",
		OnlyRemove:    true,
		PassTrue:      false,
	})
	if err != nil {
		t.Fatalf("reject error %v", err)
	}
	if len(participant.calls) != 1 || participant.calls[0].status != model.ParticipantStatusRejected {
		t.Fatalf("expect rejected status write, got %+v", participant.calls)
	}
	if got := store.Length("roundA"); got != 0 {
		t.Fatalf("rejected user re-enqueued, roundA length %d", got)
	}
	if len(dispatcher.notifications) != 1 || dispatcher.notifications[0].event != model.EventGoOnResultPage {
		t.Fatalf("expect goOnResultPage push, got %+v", dispatcher.notifications)
	}
	result := dispatcher.notifications[0].data.(model.ResultPageEvent)
	if result.Result != model.QueueResultRejected {
		t.Fatalf("expect rejected result, got %s", result.Result)
	}
}

func TestTerminalAcceptWithoutNextRound(t *testing.T) {
	c, store, dispatcher, participant := newTestCoordinator()
	store.Enqueue("roundA", "u1")
	c.AdvanceNext(nil, "roundA", "room1")
	dispatcher.notifications = nil

	err := c.AddInQueue(nil, model.AddInQueueArgs{
		UserID:        "u1",
		OpportunityID: "opp1",
		CurrentRoomID: "room1",
		OnlyRemove:    true,
		PassTrue:      true,
	})
	if err != nil {
		t.Fatalf("terminal accept error %v", err)
	}
	if participant.calls[0].status != model.ParticipantStatusAccepted {
		t.Fatalf("expect accepted status write, got %+v", participant.calls)
	}
	result := dispatcher.notifications[0].data.(model.ResultPageEvent)
	if result.Result != model.QueueResultAccepted {
		t.Fatalf("expect accepted result, got %s", result.Result)
	}
}

func TestUpstreamFailureKeepsState(t *testing.T) {
	c, store, dispatcher, participant := newTestCoordinator()
	store.Enqueue("roundA", "u1")
	c.AdvanceNext(nil, "roundA", "room1")
	dispatcher.notifications = nil
	participant.failing = true

	err := c.AddInQueue(nil, model.AddInQueueArgs{
		UserID:        "u1",
		RoundID:       "roundB",
		OpportunityID: "opp1",
		CurrentRoomID: "room1",
	})
	if err == nil {
		t.Fatal("expect upstream failure to surface")
	}
	// status write failed: room still occupied, nothing enqueued, no push
	if got := c.CurrentOccupant(nil, "roundA", "room1"); got.IsEmpty || got.NextUserID != "u1" {
		t.Fatalf("expect u1 still in room, got %+v", got)
	}
	if got := store.Length("roundB"); got != 0 {
		t.Fatalf("expect no promotion on failure, roundB length %d", got)
	}
	if len(dispatcher.notifications) != 0 {
		t.Fatalf("expect no push on failure, got %+v", dispatcher.notifications)
	}
}

func TestFinishOnIdleRoomIsNoop(t *testing.T) {
	c, _, dispatcher, participant := newTestCoordinator()
	err := c.AddInQueue(nil, model.AddInQueueArgs{
		UserID:        "u1",
		OpportunityID: "opp1",
		CurrentRoomID: "room1",
		OnlyRemove:    true,
		PassTrue:      true,
	})
	if err != nil {
		t.Fatalf("expect silent no-op, got error %v", err)
	}
	if len(participant.calls) != 0 || len(dispatcher.notifications) != 0 {
		t.Fatal("expect no side effects on idle room")
	}
}

func TestPlainEnqueueAndPosition(t *testing.T) {
	c, _, dispatcher, _ := newTestCoordinator()
	for _, u := range []string{"u1", "u2", "u3"} {
		if err := c.AddInQueue(nil, model.AddInQueueArgs{UserID: u, RoundID: "roundA"}); err != nil {
			t.Fatalf("enqueue error %v", err)
		}
	}
	// duplicate enqueue: silent
	if err := c.AddInQueue(nil, model.AddInQueueArgs{UserID: "u2", RoundID: "roundA"}); err != nil {
		t.Fatalf("duplicate enqueue error %v", err)
	}
	if got := c.PositionOf(nil, "roundA", "u2"); got != 1 {
		t.Fatalf("expect position 1, got %d", got)
	}
	if got := c.PositionOf(nil, "roundA", "absent"); got != PositionNotQueued {
		t.Fatalf("expect sentinel, got %d", got)
	}
	if len(dispatcher.notifications) != 0 {
		t.Fatal("plain enqueue should not push")
	}
}
