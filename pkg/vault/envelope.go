package vault

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

// EnvelopeVersion is the current envelope format.
const EnvelopeVersion = 1

// Bytes is binary data that marshals as standard Base64 text in JSON and YAML.
type Bytes []byte

func (b Bytes) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out, nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return err
	}
	*b = out[:n]
	return nil
}

// Envelope is a self-describing password-encrypted payload: everything
// needed to reverse it except the password is stored alongside the
// ciphertext.
type Envelope struct {
	Version     int            `json:"version" yaml:"version"`
	Algorithm   backend.Cipher `json:"algorithm" yaml:"algorithm"`
	KDF         backend.KDF    `json:"kdf" yaml:"kdf"`
	Iterations  int            `json:"iterations" yaml:"iterations"`
	MemoryKB    uint32         `json:"memory_kb,omitempty" yaml:"memory_kb,omitempty"`
	Parallelism uint8          `json:"parallelism,omitempty" yaml:"parallelism,omitempty"`
	Salt        Bytes          `json:"salt" yaml:"salt"`
	IV          Bytes          `json:"iv" yaml:"iv"`
	Tag         Bytes          `json:"tag,omitempty" yaml:"tag,omitempty"`
	AAD         Bytes          `json:"aad,omitempty" yaml:"aad,omitempty"`
	Ciphertext  Bytes          `json:"ciphertext" yaml:"ciphertext"`
}

func (e *Envelope) keyParams() backend.KeyParams {
	return backend.KeyParams{
		KDF:         e.KDF,
		Iterations:  e.Iterations,
		MemoryKB:    e.MemoryKB,
		Parallelism: e.Parallelism,
		KeyLength:   backend.DefaultKeyLength,
		SaltLength:  len(e.Salt),
	}
}

// header is the additional authenticated data: the stored parameters plus
// any caller-supplied context, so none of them can be swapped undetected.
func (e *Envelope) header() []byte {
	h := make([]byte, 0, 64+len(e.AAD))
	h = strconv.AppendInt(h, int64(e.Version), 10)
	h = append(h, '|')
	h = append(h, e.Algorithm...)
	h = append(h, '|')
	h = append(h, e.KDF...)
	h = append(h, '|')
	h = strconv.AppendInt(h, int64(e.Iterations), 10)
	h = append(h, '|')
	h = strconv.AppendUint(h, uint64(e.MemoryKB), 10)
	h = append(h, '|')
	h = strconv.AppendUint(h, uint64(e.Parallelism), 10)
	h = append(h, '|')
	h = append(h, e.AAD...)
	return h
}

// Marshal encodes the envelope as JSON.
func (e *Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// ParseEnvelope decodes JSON produced by Marshal.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}
	if env.Version == 0 || len(env.Ciphertext)+len(env.Tag) == 0 || len(env.Salt) == 0 || len(env.IV) == 0 {
		return nil, ErrInvalidEnvelope
	}
	return &env, nil
}
