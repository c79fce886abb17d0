// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewFromBytesRoundtrip(t *testing.T) {
	source := []byte("sealing-key-material")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if !bytes.Equal(buffer.Bytes(), source) {
		t.Errorf("Bytes() = %q, want %q", buffer.Bytes(), source)
	}
	if buffer.Len() != len(source) {
		t.Errorf("Len() = %d, want %d", buffer.Len(), len(source))
	}
	if buffer.String() != string(source) {
		t.Errorf("String() = %q, want %q", buffer.String(), source)
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("New(0) succeeded, want error")
	}
	if _, err := New(-4); err == nil {
		t.Error("New(-4) succeeded, want error")
	}
}

func TestNewFromBytesRejectsEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) succeeded, want error")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromBytes([]byte("k"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	buffer, err := NewFromBytes([]byte("k"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Error("Bytes() after Close did not panic")
		}
	}()
	buffer.Bytes()
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	Zero(data)
	if !bytes.Equal(data, []byte{0, 0, 0, 0}) {
		t.Errorf("Zero left %v", data)
	}
}
