package game

import "testing"

func TestRegistryCreatesOnce(t *testing.T) {
	created := 0
	registry := NewRegistry(func(id string) *Room {
		created++
		return NewRoom(id, DefaultSettings(), &recordingEmitter{}, NewLeaderboard(nil))
	})

	if _, ok := registry.Get(DefaultRoomID); ok {
		t.Fatal("registry returned a room before creation")
	}
	first := registry.GetOrCreate(DefaultRoomID)
	second := registry.GetOrCreate(DefaultRoomID)
	if first != second {
		t.Fatal("GetOrCreate returned different rooms for one id")
	}
	if created != 1 {
		t.Fatalf("factory ran %d times", created)
	}
	if got, ok := registry.Get(DefaultRoomID); !ok || got != first {
		t.Fatal("Get did not return the created room")
	}
}
