package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Action
	}{
		{"play", `{"type":"PLAY","tickInterval":150}`, Play{TickInterval: 150}},
		{"pause", `{"type":"PAUSE"}`, Pause{}},
		{"tick", `{"type":"TICK"}`, Tick{}},
		{"move", `{"type":"MOVE","payload":{"dx":-10,"dy":0}}`, Move{Payload: core.Vec{DX: -10}}},
		{"change direction", `{"type":"CHANGE_DIRECTION","payload":"UP"}`, ChangeDirection{Direction: core.DirUp}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tc.input))
			if err != nil {
				t.Fatalf("DecodeAction() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("DecodeAction() = %#v, expected %#v", got, tc.expected)
			}
		})
	}
}

func TestDecodeUnknownAction(t *testing.T) {
	got, err := DecodeAction([]byte(`{"type":"ADD_SCORE","payload":{"points":3}}`))
	if err != nil {
		t.Fatalf("DecodeAction() failed: %v", err)
	}
	u, ok := got.(Unknown)
	if !ok {
		t.Fatalf("DecodeAction() = %T, expected Unknown", got)
	}
	if u.Type != "ADD_SCORE" || string(u.Payload) != `{"points":3}` {
		t.Errorf("Unknown = %+v", u)
	}
}

func TestDecodeActionErrors(t *testing.T) {
	inputs := map[string]string{
		"not json":          `nope`,
		"missing type":      `{"payload":1}`,
		"play w/o interval": `{"type":"PLAY"}`,
		"move w/o payload":  `{"type":"MOVE"}`,
		"move missing dy":   `{"type":"MOVE","payload":{"dx":1}}`,
		"move float":        `{"type":"MOVE","payload":{"dx":1.5,"dy":0}}`,
		"bad direction":     `{"type":"CHANGE_DIRECTION","payload":"NORTH"}`,
		"numeric direction": `{"type":"CHANGE_DIRECTION","payload":2}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAction([]byte(input)); err == nil {
				t.Errorf("DecodeAction(%s) should fail", input)
			}
		})
	}

	_, err := DecodeAction([]byte(`{"type":"CHANGE_DIRECTION","payload":"NORTH"}`))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad direction error = %v, expected ErrInvalidArgument", err)
	}
}

func TestEncodeDecodeAction(t *testing.T) {
	actions := []Action{
		Play{TickInterval: 90},
		Pause{},
		Tick{},
		Move{Payload: core.Vec{DX: 0, DY: -4}},
		ChangeDirection{Direction: core.DirLeft},
	}

	for _, a := range actions {
		data, err := EncodeAction(a)
		if err != nil {
			t.Fatalf("EncodeAction(%s) failed: %v", a.ActionType(), err)
		}
		back, err := DecodeAction(data)
		if err != nil {
			t.Fatalf("DecodeAction(%s) failed: %v", data, err)
		}
		if !reflect.DeepEqual(back, a) {
			t.Errorf("round trip of %s = %#v", data, back)
		}
	}
}

func TestEncodeActionWireShape(t *testing.T) {
	data, err := EncodeAction(ChangeDirection{Direction: core.DirDown})
	if err != nil {
		t.Fatalf("EncodeAction() failed: %v", err)
	}
	if string(data) != `{"type":"CHANGE_DIRECTION","payload":"DOWN"}` {
		t.Errorf("EncodeAction() = %s", data)
	}

	data, err = EncodeAction(Pause{})
	if err != nil {
		t.Fatalf("EncodeAction() failed: %v", err)
	}
	if string(data) != `{"type":"PAUSE"}` {
		t.Errorf("EncodeAction() = %s", data)
	}

	if _, err := EncodeAction(ChangeDirection{Direction: core.Direction(-3)}); err == nil {
		t.Error("EncodeAction() should fail for invalid direction")
	}
}
