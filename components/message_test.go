package components

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/dataframe-agents/schema"
)

func TestMessageToOpenAI(t *testing.T) {
	msg := NewMessage(UserRole, schema.NewString("how many cars were sold?"))
	var dist openai.ChatCompletionMessage
	msg.ToOpenAI(&dist)
	if dist.Role != UserRole {
		t.Errorf("expect role %s, got %s", UserRole, dist.Role)
	}
	if dist.Content != "how many cars were sold?" {
		t.Errorf("unexpected content: %s", dist.Content)
	}
}

func TestNewTurnID(t *testing.T) {
	a := NewTurnID()
	b := NewTurnID()
	if a == "" || a == b {
		t.Errorf("expect unique non-empty turn IDs, got %q and %q", a, b)
	}
}
