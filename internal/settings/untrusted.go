package settings

import "encoding/json"

// UntrustedContent wraps author-supplied HTML, CSS or JS. It has no String
// method so it cannot be interpolated into trusted markup by accident; the
// render layer reads it through Raw and isolates it in a sandboxed frame.
type UntrustedContent struct {
	raw string
}

// Untrusted wraps raw author content.
func Untrusted(raw string) UntrustedContent {
	return UntrustedContent{raw: raw}
}

// Raw returns the unmodified author content.
func (u UntrustedContent) Raw() string {
	return u.raw
}

// IsEmpty reports whether no content was supplied.
func (u UntrustedContent) IsEmpty() bool {
	return u.raw == ""
}

func (u UntrustedContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.raw)
}

func (u *UntrustedContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &u.raw)
}
