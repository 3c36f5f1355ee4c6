package model

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a forest as msgpack.
func Encode(f *Forest) ([]byte, error) {
	if f.Version == 0 {
		f.Version = FormatVersion
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("model: encode: %w", err)
	}
	return data, nil
}

// Decode parses and validates a msgpack artifact.
func Decode(data []byte) (*Forest, error) {
	var f Forest
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}
