// Package access resolves privilege tiers against a loaded State snapshot:
// primary owners come from configuration and are immutable at runtime,
// additional owners, premium grants and the blacklist live in the snapshot.
package access

import (
	"errors"
	"time"

	"github.com/kyzzavilable/jaseb-bot/types"
)

var ErrPrimaryOwner = errors.New("cannot remove primary owner")

type Control struct {
	primary []string
}

func New(primaryOwners []string) *Control {
	return &Control{primary: primaryOwners}
}

// PrimaryOwner returns the report recipient (first configured owner).
func (c *Control) PrimaryOwner() string {
	if len(c.primary) == 0 {
		return ""
	}
	return c.primary[0]
}

func (c *Control) IsPrimaryOwner(actor string) bool {
	for _, id := range c.primary {
		if id == actor {
			return true
		}
	}
	return false
}

// IsOwner reports whether the actor is a primary or additional owner.
func (c *Control) IsOwner(st *types.State, actor string) bool {
	if c.IsPrimaryOwner(actor) {
		return true
	}
	for _, id := range st.Owners {
		if id == actor {
			return true
		}
	}
	return false
}

// IsPremium reports whether the actor holds an active premium entry: the
// permanent sentinel, or a numeric expiry strictly in the future.
func (c *Control) IsPremium(st *types.State, actor string) bool {
	exp, ok := st.Premium[actor]
	return ok && exp.Active(time.Now().Unix())
}

func (c *Control) IsBlacklisted(st *types.State, actor string) bool {
	for _, id := range st.Blacklist {
		if id == actor {
			return true
		}
	}
	return false
}

// AddOwner adds an additional owner. Reports whether the actor was newly
// added.
func (c *Control) AddOwner(st *types.State, actor string) bool {
	for _, id := range st.Owners {
		if id == actor {
			return false
		}
	}
	st.Owners = append(st.Owners, actor)
	return true
}

// RemoveOwner removes an additional owner. Removing a primary owner is
// rejected with ErrPrimaryOwner; removing an unknown actor reports false.
func (c *Control) RemoveOwner(st *types.State, actor string) (bool, error) {
	if c.IsPrimaryOwner(actor) {
		return false, ErrPrimaryOwner
	}
	for i, id := range st.Owners {
		if id == actor {
			st.Owners = append(st.Owners[:i], st.Owners[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Blacklist bars the actor from all commands. Reports whether the actor was
// newly added.
func (c *Control) Blacklist(st *types.State, actor string) bool {
	for _, id := range st.Blacklist {
		if id == actor {
			return false
		}
	}
	st.Blacklist = append(st.Blacklist, actor)
	return true
}

func (c *Control) Unblacklist(st *types.State, actor string) bool {
	for i, id := range st.Blacklist {
		if id == actor {
			st.Blacklist = append(st.Blacklist[:i], st.Blacklist[i+1:]...)
			return true
		}
	}
	return false
}
