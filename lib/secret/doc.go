// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a guarded buffer for cryptographic key
// material: symmetric sealing keys and age identities held by the
// encryption strategies in lib/sealing.
//
// Buffer allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped.
//
// Because the memory lives outside the Go heap, the garbage collector
// never copies or relocates it, so closing the buffer is the last word
// on where the key material existed.
package secret
