// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shardtest

import (
	"bytes"
	"os"
	"testing"

	"github.com/bureau-foundation/zcl/lib/shardformat"
)

func TestBuildLayout(t *testing.T) {
	shard, err := Build([][]byte{[]byte("ab"), []byte("cde")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	header, err := shardformat.ParseHeader(shard)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if err := header.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if header.MetadataOffset != shardformat.HeaderSize {
		t.Errorf("MetadataOffset = %d, want %d", header.MetadataOffset, shardformat.HeaderSize)
	}

	metadata, err := shardformat.ParseMetadata(shard[header.MetadataOffset:header.DataOffset])
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	want := []shardformat.SampleMetadata{{Offset: 0, Size: 2}, {Offset: 2, Size: 3}}
	for i, sample := range want {
		if metadata.Samples[i] != sample {
			t.Errorf("Samples[%d] = %+v, want %+v", i, metadata.Samples[i], sample)
		}
	}
	if got := string(shard[header.DataOffset:]); got != "abcde" {
		t.Errorf("data section = %q, want %q", got, "abcde")
	}
}

func TestWriteShardAndPatch(t *testing.T) {
	path := WriteShard(t, t.TempDir(), "a.shard", "x")
	Patch(t, path, 0, []byte{0, 0})

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if content[0] != 0 || content[1] != 0 {
		t.Errorf("patched bytes = % x, want 00 00", content[:2])
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	first := Synthetic(3, 16, 42)
	second := Synthetic(3, 16, 42)
	other := Synthetic(3, 16, 43)

	if len(first) != 3 || len(first[0]) != 16 {
		t.Fatalf("Synthetic shape = %d x %d, want 3 x 16", len(first), len(first[0]))
	}
	for i := range first {
		if !bytes.Equal(first[i], second[i]) {
			t.Errorf("sample %d differs between runs with the same seed", i)
		}
	}
	if bytes.Equal(first[0], other[0]) {
		t.Error("different seeds produced the same first sample")
	}
}
