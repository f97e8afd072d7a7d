package types

import (
	"context"
	"strconv"
)

// DefaultCooldownMinutes is the global fanout cooldown applied when the
// snapshot carries no explicit setting.
const DefaultCooldownMinutes = 15

// State is the whole persisted snapshot. It is loaded at the start of a
// handler and rewritten wholesale after mutation; user-keyed maps use
// stringified Telegram IDs, matching the original data.json layout.
type State struct {
	Premium        map[string]Expiry           `json:"premium"`
	Owners         []string                    `json:"owner"`
	Groups         []int64                     `json:"groups"`
	Users          []string                    `json:"users"`
	Blacklist      []string                    `json:"blacklist"`
	UserGroupCount map[string]int              `json:"user_group_count"`
	Cooldowns      map[string]map[string]int64 `json:"cooldowns"`
	Settings       Settings                    `json:"settings"`
}

type Settings struct {
	Cooldown CooldownSettings `json:"cooldown"`
}

type CooldownSettings struct {
	DefaultMinutes int `json:"default,omitempty"`
}

func NewState() *State {
	s := &State{}
	s.Normalize()
	return s
}

// Normalize fills nil containers after unmarshaling a sparse snapshot.
func (s *State) Normalize() {
	if s.Premium == nil {
		s.Premium = make(map[string]Expiry)
	}
	if s.Owners == nil {
		s.Owners = []string{}
	}
	if s.Groups == nil {
		s.Groups = []int64{}
	}
	if s.Users == nil {
		s.Users = []string{}
	}
	if s.Blacklist == nil {
		s.Blacklist = []string{}
	}
	if s.UserGroupCount == nil {
		s.UserGroupCount = make(map[string]int)
	}
	if s.Cooldowns == nil {
		s.Cooldowns = make(map[string]map[string]int64)
	}
}

func (s *State) CooldownMinutes() int {
	if s.Settings.Cooldown.DefaultMinutes > 0 {
		return s.Settings.Cooldown.DefaultMinutes
	}
	return DefaultCooldownMinutes
}

func (s *State) SetCooldownMinutes(minutes int) {
	s.Settings.Cooldown.DefaultMinutes = minutes
}

func (s *State) HasGroup(chatID int64) bool {
	for _, id := range s.Groups {
		if id == chatID {
			return true
		}
	}
	return false
}

// AddGroup registers a group, suppressing duplicates. Reports whether the
// group was newly added.
func (s *State) AddGroup(chatID int64) bool {
	if s.HasGroup(chatID) {
		return false
	}
	s.Groups = append(s.Groups, chatID)
	return true
}

func (s *State) RemoveGroup(chatID int64) bool {
	for i, id := range s.Groups {
		if id == chatID {
			s.Groups = append(s.Groups[:i], s.Groups[i+1:]...)
			return true
		}
	}
	return false
}

// AddUser records a user who started the bot. Reports whether the user was
// newly added.
func (s *State) AddUser(userID string) bool {
	for _, id := range s.Users {
		if id == userID {
			return false
		}
	}
	s.Users = append(s.Users, userID)
	return true
}

// BumpGroupCount adjusts the add-counter for a user and returns the new
// total. The counter never goes below zero.
func (s *State) BumpGroupCount(userID string, delta int) int {
	total := s.UserGroupCount[userID] + delta
	if total < 0 {
		total = 0
	}
	s.UserGroupCount[userID] = total
	return total
}

// LastUse returns the last-use timestamp for an action namespace, zero when
// the actor has never used it.
func (s *State) LastUse(action, actor string) int64 {
	ledger := s.Cooldowns[action]
	if ledger == nil {
		return 0
	}
	return ledger[actor]
}

func (s *State) StampUse(action, actor string, now int64) {
	ledger := s.Cooldowns[action]
	if ledger == nil {
		ledger = make(map[string]int64)
		s.Cooldowns[action] = ledger
	}
	ledger[actor] = now
}

// GroupRecipients returns the registered groups as fanout recipients in
// insertion order.
func (s *State) GroupRecipients() []any {
	out := make([]any, 0, len(s.Groups))
	for _, id := range s.Groups {
		out = append(out, id)
	}
	return out
}

// UserRecipients returns the registered users as fanout recipients in
// insertion order.
func (s *State) UserRecipients() []any {
	out := make([]any, 0, len(s.Users))
	for _, id := range s.Users {
		out = append(out, id)
	}
	return out
}

// ActorKey converts a Telegram user ID to the string form used as map key.
func ActorKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// StateStore persists the State snapshot. Implementations serialize Update
// calls internally: all mutations must go through Update so concurrent
// handlers cannot lose each other's writes.
type StateStore interface {
	Load() (*State, error)
	Save(*State) error
	Update(fn func(*State) error) error
	// Export writes a timestamped snapshot copy under dir and returns its path.
	Export(dir string) (string, error)
	Close() error
}

// Transport is the narrow chat-platform surface the core services use. All
// methods are fallible; chat IDs are int64 for groups and decimal strings
// for users, as the Bot API accepts both.
type Transport interface {
	SendMessage(ctx context.Context, chatID any, text string) error
	SendHTML(ctx context.Context, chatID any, text string) error
	SendPhoto(ctx context.Context, chatID any, fileID, caption string) error
	SendVideo(ctx context.Context, chatID any, fileID, caption string) error
	SendDocument(ctx context.Context, chatID any, fileID, caption string) error
	SendVoice(ctx context.Context, chatID any, fileID, caption string) error
	SendSticker(ctx context.Context, chatID any, fileID string) error
	ForwardMessage(ctx context.Context, to any, from any, messageID int) error
	SendDocumentFile(ctx context.Context, chatID any, path, filename string) error
	GetChatMemberCount(ctx context.Context, chatID any) (int, error)
}
