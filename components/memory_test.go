package components

import (
	"testing"

	"github.com/bububa/dataframe-agents/schema"
)

func TestMemoryOverflow(t *testing.T) {
	mem := NewMemory(3)
	for _, txt := range []string{"a", "b", "c", "d"} {
		mem.NewMessage(UserRole, schema.NewString(txt))
	}
	if mem.MessageCount() != 3 {
		t.Errorf("expect 3 messages, got %d", mem.MessageCount())
	}
	history := mem.History()
	if history[0].StringifiedContent() != "b" {
		t.Errorf("expect oldest message dropped, got %s", history[0].StringifiedContent())
	}
}

func TestMemoryTurns(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	first := mem.TurnID()
	if first == "" {
		t.Fatal("expect non-empty turn ID")
	}
	mem.NewMessage(UserRole, schema.NewString("question"))
	mem.NewMessage(AssistantRole, schema.NewString("answer"))
	mem.NewTurn()
	if mem.TurnID() == first {
		t.Error("expect a fresh turn ID")
	}
	mem.NewMessage(UserRole, schema.NewString("followup"))
	if err := mem.DeleteTurn(first); err != nil {
		t.Fatal(err)
	}
	if mem.MessageCount() != 1 {
		t.Errorf("expect 1 message after turn deletion, got %d", mem.MessageCount())
	}
	if err := mem.DeleteTurn("missing"); err == nil {
		t.Error("expect error for unknown turn ID")
	}
}

func TestMemoryCopyReset(t *testing.T) {
	mem := NewMemory(5)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("hello"))
	snapshot := NewMemory(0)
	snapshot.Copy(mem)
	mem.Reset()
	if mem.MessageCount() != 0 {
		t.Errorf("expect empty memory after reset, got %d", mem.MessageCount())
	}
	if snapshot.MessageCount() != 1 {
		t.Errorf("expect snapshot unaffected, got %d", snapshot.MessageCount())
	}
}
