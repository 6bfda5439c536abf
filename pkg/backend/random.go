package backend

import (
	"crypto/rand"
	"errors"
	"math/big"
)

func (n *Native) RandomBytes(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidRange
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Join(ErrRandom, err)
	}
	return b, nil
}

// RandomInt returns a uniform integer in [min, max).
func (n *Native) RandomInt(min, max int) (int, error) {
	if max <= min {
		return 0, ErrInvalidRange
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	if err != nil {
		return 0, errors.Join(ErrRandom, err)
	}
	return min + int(v.Int64()), nil
}
