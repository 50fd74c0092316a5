package room

import (
	"testing"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
	"github.com/rs/zerolog"
)

type recorder struct {
	events []broadcast.Event
}

func (r *recorder) Deliver(e broadcast.Event) { r.events = append(r.events, e) }

func (r *recorder) of(t broadcast.EventType) []broadcast.Event {
	var out []broadcast.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// newTestRoom builds a room with four seated human players, no
// registry/lifecycle involved, and drives everything through r.process
// directly on the calling goroutine — matching the single-writer
// invariant without needing a second goroutine or the action queue.
func newTestRoom(t *testing.T, seed1, seed2 uint64) (*Room, *recorder) {
	t.Helper()
	hub := broadcast.NewHub()
	rec := &recorder{}
	r := New("TEST", DefaultConfig(), nil, hub, zerolog.Nop(), seed1, seed2)
	r.cooldown = 0
	hub.Register("TEST", "observer", rec)

	names := []string{"alice", "bob", "carol", "dave"}
	for _, name := range names {
		r.process(Action{Type: ActionJoinRoom, PlayerID: "p-" + name, Payload: JoinPayload{Name: name}})
	}
	host := r.Game.Players[0].ID
	r.process(Action{Type: ActionStartGame, PlayerID: host})
	return r, rec
}

// declineAllRedeals walks the weak-hand redeal prompt to its "all
// decline" exit so the round proceeds with its original deal.
func declineAllRedeals(r *Room) {
	for r.Game.Phase == liapgame.PhasePreparation {
		seats := make([]int, 0, len(r.Game.WeakPlayersPending))
		for seat := range r.Game.WeakPlayersPending {
			seats = append(seats, seat)
		}
		if len(seats) == 0 {
			return
		}
		for _, seat := range seats {
			r.process(Action{Type: ActionDeclineRedeal, PlayerID: r.Game.Players[seat].ID, Seat: seat})
		}
	}
}

// declareRoundRobin submits a fixed, always-legal declaration for each
// seat in turn: 1 for the first three declarers, then whatever value
// among {1,2} isn't forbidden for the fourth.
func declareRoundRobin(t *testing.T, r *Room) {
	t.Helper()
	for r.Game.Phase == liapgame.PhaseDeclaration {
		seat := r.Game.CurrentDeclarer()
		if seat == -1 {
			return
		}
		value := 1
		if forbidden := r.Game.ForbiddenDeclaration(seat); forbidden != -1 && forbidden == value {
			value = 2
		}
		r.process(Action{Type: ActionDeclare, PlayerID: r.Game.Players[seat].ID, Payload: DeclarePayload{Value: value}})
	}
}

// playOutRoundSinglePieces drives the TURN phase by always playing the
// lowest-index piece, one at a time, until the round ends.
func playOutRoundSinglePieces(t *testing.T, r *Room) {
	t.Helper()
	for r.Game.Phase == liapgame.PhaseTurn {
		seat := (r.Game.CurrentTurnStarter + len(r.Game.CurrentTurnPlays)) % 4
		p := r.Game.Player(seat)
		if len(p.Hand) == 0 {
			t.Fatalf("seat %d has no pieces left but TURN is still active", seat)
		}
		r.process(Action{Type: ActionPlay, PlayerID: p.ID, Payload: PlayPayload{Indices: []int{0}}})
	}
}

func TestFullRound_CapturedPilesSumToEight(t *testing.T) {
	r, rec := newTestRoom(t, 1, 2)
	declineAllRedeals(r)
	declareRoundRobin(t, r)
	playOutRoundSinglePieces(t, r)

	if r.Game.Phase != liapgame.PhaseScoring && r.Game.Phase != liapgame.PhasePreparation && r.Game.Phase != liapgame.PhaseGameOver {
		t.Fatalf("expected the round to have left TURN, got %s", r.Game.Phase)
	}

	total := 0
	for _, e := range rec.of(broadcast.EventTurnResolved) {
		if pc, ok := e.Data["piece_count"].(int); ok {
			total += pc
		}
	}
	if total != 8 {
		t.Fatalf("expected captured piles to sum to 8 over the round, got %d", total)
	}
}

func TestDeclaration_LastDeclarerCannotMakeSumEight(t *testing.T) {
	r, _ := newTestRoom(t, 3, 4)
	declineAllRedeals(r)

	for i := 0; i < 3; i++ {
		seat := r.Game.CurrentDeclarer()
		r.process(Action{Type: ActionDeclare, PlayerID: r.Game.Players[seat].ID, Payload: DeclarePayload{Value: 2}})
	}
	// previous declarations sum to 6; the forbidden value for the last
	// declarer is 2 (6+2=8).
	lastSeat := r.Game.CurrentDeclarer()
	before := r.Game.DeclareIndex
	r.process(Action{Type: ActionDeclare, PlayerID: r.Game.Players[lastSeat].ID, Payload: DeclarePayload{Value: 2}})
	if r.Game.DeclareIndex != before {
		t.Fatalf("expected the forbidden declaration to be rejected, declarer advanced anyway")
	}

	r.process(Action{Type: ActionDeclare, PlayerID: r.Game.Players[lastSeat].ID, Payload: DeclarePayload{Value: 1}})
	if r.Game.DeclareIndex == before {
		t.Fatalf("expected a legal declaration to advance the declarer")
	}
}

func TestPhaseChange_VersionsAreMonotonicAndIncreasing(t *testing.T) {
	r, rec := newTestRoom(t, 5, 6)
	declineAllRedeals(r)
	declareRoundRobin(t, r)
	changes := rec.of(broadcast.EventPhaseChange)
	if len(changes) < 2 {
		t.Fatalf("expected at least two phase_change events, got %d", len(changes))
	}
	for i := 1; i < len(changes); i++ {
		if changes[i].Version <= changes[i-1].Version {
			t.Fatalf("expected strictly increasing versions, got %d then %d", changes[i-1].Version, changes[i].Version)
		}
	}
}

// TestPhaseChange_PublicAndPrivateEventsShareVersion registers a
// subscriber under a real seated player's ID (not the catch-all
// "observer" key the other tests use), so it receives both the public
// phase_change broadcast and its own targeted private-hand one for
// every transition. Both must carry the same version: one logical
// transition is exactly one version, not one per Hub.Broadcast call.
func TestPhaseChange_PublicAndPrivateEventsShareVersion(t *testing.T) {
	r, _ := newTestRoom(t, 11, 12)

	alice := r.Game.Players[0]
	aliceRec := &recorder{}
	r.hub.Register("TEST", alice.ID, aliceRec)

	declineAllRedeals(r)

	var publicVersions, privateVersions []int
	for _, e := range aliceRec.events {
		if e.Type != broadcast.EventPhaseChange {
			continue
		}
		if e.TargetPlayerID == "" {
			publicVersions = append(publicVersions, e.Version)
		} else {
			privateVersions = append(privateVersions, e.Version)
		}
	}
	if len(publicVersions) == 0 || len(privateVersions) == 0 {
		t.Fatalf("expected at least one public and one private phase_change, got %d public, %d private",
			len(publicVersions), len(privateVersions))
	}
	if len(publicVersions) != len(privateVersions) {
		t.Fatalf("expected one private event per public event, got %d public, %d private",
			len(publicVersions), len(privateVersions))
	}
	for i := range publicVersions {
		if publicVersions[i] != privateVersions[i] {
			t.Fatalf("transition %d: public version %d != private version %d",
				i, publicVersions[i], privateVersions[i])
		}
	}
	for i := 1; i < len(publicVersions); i++ {
		if publicVersions[i] <= publicVersions[i-1] {
			t.Fatalf("expected strictly increasing versions across transitions, got %d then %d",
				publicVersions[i-1], publicVersions[i])
		}
	}
}

func TestJoinRoom_RejectedOnceGameHasStarted(t *testing.T) {
	r, _ := newTestRoom(t, 13, 14)
	if r.Game.Phase == liapgame.PhaseWaiting {
		t.Fatalf("expected newTestRoom to have already started the game")
	}

	rec := &recorder{}
	r.hub.Register("TEST", "p-eve", rec)
	r.process(Action{Type: ActionJoinRoom, PlayerID: "p-eve", Payload: JoinPayload{Name: "eve"}})

	errs := rec.of(broadcast.EventError)
	if len(errs) != 1 {
		t.Fatalf("expected one error event for a join after start, got %d", len(errs))
	}
	if errs[0].TargetPlayerID != "p-eve" {
		t.Fatalf("expected the error targeted at the joining player")
	}
	if errs[0].Data["code"] != ErrGameNotWaiting.Error() {
		t.Fatalf("expected ErrGameNotWaiting, got %v", errs[0].Data["code"])
	}
}

func TestSubmit_AfterStopReturnsRoomClosedError(t *testing.T) {
	hub := broadcast.NewHub()
	r := New("TEST3", DefaultConfig(), nil, hub, zerolog.Nop(), 15, 16)
	rec := &recorder{}
	hub.Register("TEST3", "p-alice", rec)
	go r.Run()
	r.Stop()

	r.Submit(Action{Type: ActionJoinRoom, PlayerID: "p-alice", Payload: JoinPayload{Name: "alice"}})

	errs := rec.of(broadcast.EventError)
	if len(errs) != 1 {
		t.Fatalf("expected one error event after Submit on a stopped room, got %d", len(errs))
	}
	if errs[0].Data["code"] != ErrRoomClosed.Error() {
		t.Fatalf("expected ErrRoomClosed, got %v", errs[0].Data["code"])
	}
}

func TestDedup_RepeatedIdenticalActionIsDropped(t *testing.T) {
	hub := broadcast.NewHub()
	r := New("TEST2", DefaultConfig(), nil, hub, zerolog.Nop(), 7, 8)
	rec := &recorder{}
	hub.Register("TEST2", "observer", rec)

	a := Action{Type: ActionJoinRoom, PlayerID: "p-alice", Payload: JoinPayload{Name: "alice"}}
	r.Submit(a)
	r.Submit(a) // identical within the dedup window, dropped
	r.Submit(a)

	select {
	case got := <-r.actions:
		r.process(got)
	default:
		t.Fatalf("expected at least one queued action")
	}
	select {
	case <-r.actions:
		t.Fatalf("expected duplicate submissions to have been dropped")
	default:
	}
}

func TestHostMigration_MovesToNextConnectedHuman(t *testing.T) {
	r, _ := newTestRoom(t, 9, 10)
	host := r.Host
	hostSeat := r.SeatByID(host)

	r.process(Action{Type: actionPlayerDisconnected, Seat: hostSeat})
	if r.Host == host {
		t.Fatalf("expected host migration away from the disconnected seat")
	}
	if !r.Game.Player(r.SeatByID(r.Host)).Connected {
		t.Fatalf("expected the new host to be a connected player")
	}
}
