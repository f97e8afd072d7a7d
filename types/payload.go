package types

// PayloadKind tags the content variant of a saved or relayed message.
type PayloadKind string

const (
	PayloadText     PayloadKind = "text"
	PayloadPhoto    PayloadKind = "photo"
	PayloadVideo    PayloadKind = "video"
	PayloadDocument PayloadKind = "document"
	PayloadSticker  PayloadKind = "sticker"
	PayloadVoice    PayloadKind = "voice"
)

// Payload is a tagged union over the supported content types. Beyond the tag
// it only carries the platform file reference and optional caption; the
// content itself stays on Telegram's servers.
type Payload struct {
	Kind    PayloadKind `json:"type"`
	Text    string      `json:"text,omitempty"`
	FileID  string      `json:"file_id,omitempty"`
	Caption string      `json:"caption,omitempty"`
}

// Cooldown action namespaces. Each namespace keeps an independent per-actor
// ledger.
const (
	ActionShare     = "share"
	ActionBroadcast = "broadcast"
)
