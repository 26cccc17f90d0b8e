package utils

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if len(id) != 12 {
			t.Fatalf("expect 12-digit id, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestJwtSignDecode(t *testing.T) {
	DefaultConf.JwtKey = "test-key"
	token, err := JwtSign(map[string]interface{}{
		"room_id": "room1",
		"name":    "interviewer",
	})
	if err != nil {
		t.Fatalf("sign error %v", err)
	}
	claims, err := JwtDecode(token)
	if err != nil {
		t.Fatalf("decode error %v", err)
	}
	if claims["room_id"] != "room1" {
		t.Fatalf("expect room_id room1, got %v", claims["room_id"])
	}
}
