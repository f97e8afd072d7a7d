package contextkeys

import "context"

type messageTypeKey struct{}
type commandKey struct{}
type callbackDataKey struct{}

type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeMedia      MessageType = "media"
	MessageTypeCommand    MessageType = "command"
	MessageTypeButton     MessageType = "button"
	MessageTypeMembership MessageType = "membership"
	MessageTypeUnknown    MessageType = "unknown"
)

// Command is a parsed slash command: the bare name without the leading
// slash or bot-name suffix, plus the whitespace-split arguments.
type Command struct {
	Name string
	Args []string
}

func WithMessageType(ctx context.Context, msgType MessageType) context.Context {
	return context.WithValue(ctx, messageTypeKey{}, msgType)
}

func GetMessageType(ctx context.Context) (MessageType, bool) {
	v := ctx.Value(messageTypeKey{})
	if v == nil {
		return MessageTypeUnknown, false
	}
	return v.(MessageType), true
}

func WithCommand(ctx context.Context, cmd Command) context.Context {
	return context.WithValue(ctx, commandKey{}, cmd)
}

func GetCommand(ctx context.Context) (Command, bool) {
	v := ctx.Value(commandKey{})
	if v == nil {
		return Command{}, false
	}
	return v.(Command), true
}

func WithCallbackData(ctx context.Context, data string) context.Context {
	return context.WithValue(ctx, callbackDataKey{}, data)
}

func GetCallbackData(ctx context.Context) (string, bool) {
	v := ctx.Value(callbackDataKey{})
	if v == nil {
		return "", false
	}
	return v.(string), true
}
