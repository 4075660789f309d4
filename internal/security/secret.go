// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret holds a clear-text password between the prompt and the hash. It
// redacts itself in fmt output and JSON so it cannot end up in logs.
type Secret []byte

// FromString wraps a password given as a string.
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromBytes wraps a copy of in.
func FromBytes(in []byte) Secret {
	out := make([]byte, len(in))
	copy(out, in)
	return Secret(out)
}

func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb prints the placeholder.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// Bytes returns a copy of the underlying bytes.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Len returns the length of the secret in bytes.
func (s Secret) Len() int { return len(s) }

// Zero overwrites the secret in place.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}
