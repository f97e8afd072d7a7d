package types

import (
	"fmt"
	"strconv"
)

// Expiry is a premium ledger entry: either the "permanent" sentinel or an
// absolute expiry in epoch seconds. The JSON form matches the original
// snapshot, where the value is the bare string "permanent" or a number.
type Expiry struct {
	Permanent bool
	Unix      int64
}

func PermanentExpiry() Expiry {
	return Expiry{Permanent: true}
}

func ExpiryAt(unix int64) Expiry {
	return Expiry{Unix: unix}
}

// Active reports whether the entry still grants premium at the given time.
func (e Expiry) Active(now int64) bool {
	return e.Permanent || e.Unix > now
}

func (e Expiry) MarshalJSON() ([]byte, error) {
	if e.Permanent {
		return []byte(`"permanent"`), nil
	}
	return strconv.AppendInt(nil, e.Unix, 10), nil
}

func (e *Expiry) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `"permanent"` {
		*e = Expiry{Permanent: true}
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("premium expiry %q: expected epoch seconds or \"permanent\"", s)
	}
	*e = Expiry{Unix: n}
	return nil
}
