package schema

import "encoding/json"

// Input is the default chat input schema representing a user message
type Input struct {
	Base
	// ChatMessage the message sent by the user to the assistant
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The chat message sent by the user to the assistant." validate:"required"`
}

// NewInput returns a new Input with the given chat message
func NewInput(msg string) *Input {
	return &Input{
		ChatMessage: msg,
	}
}

func (s Input) String() string {
	return s.ChatMessage
}

// Output is the default chat output schema representing an assistant reply
type Output struct {
	Base
	// ChatMessage the response message generated by the assistant
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The chat message generated by the assistant." validate:"required"`
}

// NewOutput returns a new Output with the given chat message
func NewOutput(msg string) *Output {
	return &Output{
		ChatMessage: msg,
	}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
