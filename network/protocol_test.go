package network

import (
	"encoding/json"
	"testing"
)

func TestParseAction_Join(t *testing.T) {
	act, err := ParseAction([]byte(`{"type":"join_game","roomId":"r1"}`))
	if err != nil {
		t.Fatalf("Valid join should parse: %v", err)
	}
	if act.Type != ActionJoinGame || act.RoomID != "r1" {
		t.Errorf("Unexpected action: %+v", act)
	}
}

func TestParseAction_Move(t *testing.T) {
	payload := `{"type":"make_move","fromRow":5,"fromCol":0,"toRow":4,"toCol":1}`
	act, err := ParseAction([]byte(payload))
	if err != nil {
		t.Fatalf("Valid move should parse: %v", err)
	}
	if act.FromRow != 5 || act.FromCol != 0 || act.ToRow != 4 || act.ToCol != 1 {
		t.Errorf("Move coordinates mangled: %+v", act)
	}
}

func TestParseAction_Malformed(t *testing.T) {
	if _, err := ParseAction([]byte(`not json at all`)); err == nil {
		t.Error("Garbage input should fail to parse")
	}
	if _, err := ParseAction([]byte(`{"type":"steal_pieces"}`)); err != ErrUnknownAction {
		t.Error("Unknown action types should be rejected")
	}
}

func TestMarshalHelpers(t *testing.T) {
	var errNotice ErrorNotice
	if err := json.Unmarshal(MarshalError("room is full"), &errNotice); err != nil {
		t.Fatalf("Error notice should be valid JSON: %v", err)
	}
	if errNotice.Type != NoticeError || errNotice.Message != "room is full" {
		t.Errorf("Unexpected error notice: %+v", errNotice)
	}

	var over GameOver
	if err := json.Unmarshal(MarshalGameOver("white"), &over); err != nil {
		t.Fatalf("Game over notice should be valid JSON: %v", err)
	}
	if over.Type != NoticeGameOver || over.Winner != "white" {
		t.Errorf("Unexpected game over notice: %+v", over)
	}

	var disc Disconnected
	if err := json.Unmarshal(MarshalDisconnected(), &disc); err != nil {
		t.Fatalf("Disconnect notice should be valid JSON: %v", err)
	}
	if disc.Type != NoticeDisconnected {
		t.Errorf("Unexpected disconnect notice: %+v", disc)
	}
}
