// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shard

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bureau-foundation/zcl/lib/mmapfile"
	"github.com/bureau-foundation/zcl/lib/shardformat"
	"github.com/bureau-foundation/zcl/lib/shardtest"
)

func TestMultiReaderGlobalIndex(t *testing.T) {
	directory := t.TempDir()
	shardA := shardtest.WriteShard(t, directory, "a.shard", "a0", "a1")
	shardB := shardtest.WriteShard(t, directory, "b.shard", "b0")

	multi, err := OpenMulti([]string{shardA, shardB})
	if err != nil {
		t.Fatalf("OpenMulti: %v", err)
	}
	defer multi.Close()

	if multi.TotalSamples() != 3 {
		t.Errorf("TotalSamples = %d, want 3", multi.TotalSamples())
	}
	if multi.NumShards() != 2 {
		t.Errorf("NumShards = %d, want 2", multi.NumShards())
	}

	tests := []struct {
		global   int
		want     string
		location Location
	}{
		{0, "a0", Location{Shard: 0, Local: 0}},
		{1, "a1", Location{Shard: 0, Local: 1}},
		{2, "b0", Location{Shard: 1, Local: 0}},
	}
	for _, test := range tests {
		got, err := multi.Sample(test.global)
		if err != nil {
			t.Fatalf("Sample(%d): %v", test.global, err)
		}
		if string(got) != test.want {
			t.Errorf("Sample(%d) = %q, want %q", test.global, got, test.want)
		}
		location, err := multi.Locate(test.global)
		if err != nil {
			t.Fatalf("Locate(%d): %v", test.global, err)
		}
		if location != test.location {
			t.Errorf("Locate(%d) = %+v, want %+v", test.global, location, test.location)
		}
	}

	for _, global := range []int{3, -1} {
		if _, err := multi.Sample(global); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("Sample(%d) error = %v, want ErrIndexOutOfBounds", global, err)
		}
		if _, err := multi.Locate(global); !errors.Is(err, mmapfile.ErrOutOfBounds) {
			t.Errorf("Locate(%d) error = %v, want a bounds error", global, err)
		}
	}
}

func TestMultiReaderSkipsEmptyShards(t *testing.T) {
	directory := t.TempDir()
	paths := []string{
		shardtest.WriteShard(t, directory, "0.shard"),
		shardtest.WriteShard(t, directory, "1.shard", "x"),
		shardtest.WriteShard(t, directory, "2.shard"),
		shardtest.WriteShard(t, directory, "3.shard", "y", "z"),
	}

	multi, err := OpenMulti(paths)
	if err != nil {
		t.Fatalf("OpenMulti: %v", err)
	}
	defer multi.Close()

	samples, err := multi.Batch([]int{2, 0, 1})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	for i, want := range []string{"z", "x", "y"} {
		if string(samples[i]) != want {
			t.Errorf("Batch[%d] = %q, want %q", i, samples[i], want)
		}
	}
	if location, _ := multi.Locate(1); location != (Location{Shard: 3, Local: 0}) {
		t.Errorf("Locate(1) = %+v, want shard 3 local 0", location)
	}
}

func TestMultiReaderBatchAllOrNothing(t *testing.T) {
	directory := t.TempDir()
	multi, err := OpenMulti([]string{shardtest.WriteShard(t, directory, "a.shard", "a", "b")})
	if err != nil {
		t.Fatalf("OpenMulti: %v", err)
	}
	defer multi.Close()

	samples, err := multi.Batch([]int{0, 1, 2})
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Batch error = %v, want ErrIndexOutOfBounds", err)
	}
	if samples != nil {
		t.Errorf("Batch returned partial result of %d samples", len(samples))
	}
}

func TestOpenMultiFailsOnAnyBadShard(t *testing.T) {
	directory := t.TempDir()
	good := shardtest.WriteShard(t, directory, "good.shard", "ok")
	corrupt := shardtest.WriteShard(t, directory, "corrupt.shard", "bad")
	shardtest.Patch(t, corrupt, 0, []byte("XXXX"))

	multi, err := OpenMulti([]string{good, corrupt})
	if !errors.Is(err, shardformat.ErrFormat) {
		t.Errorf("OpenMulti error = %v, want ErrFormat", err)
	}
	if multi != nil {
		t.Error("OpenMulti returned a partial reader")
	}

	_, err = OpenMulti([]string{good, filepath.Join(directory, "missing.shard")})
	if !errors.Is(err, mmapfile.ErrIO) {
		t.Errorf("OpenMulti with a missing shard error = %v, want ErrIO", err)
	}
}

func TestOpenMultiNoPaths(t *testing.T) {
	multi, err := OpenMulti(nil)
	if err != nil {
		t.Fatalf("OpenMulti(nil): %v", err)
	}
	defer multi.Close()

	if multi.TotalSamples() != 0 || multi.NumShards() != 0 {
		t.Errorf("empty reader has %d samples in %d shards", multi.TotalSamples(), multi.NumShards())
	}
	if _, err := multi.Sample(0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Sample(0) error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestMultiReaderAccessors(t *testing.T) {
	directory := t.TempDir()
	paths := []string{
		shardtest.WriteShard(t, directory, "a.shard", "aaaa"),
		shardtest.WriteShard(t, directory, "b.shard", "bb"),
	}
	multi, err := OpenMulti(paths)
	if err != nil {
		t.Fatalf("OpenMulti: %v", err)
	}
	defer multi.Close()

	got := multi.Paths()
	if len(got) != 2 || got[0] != paths[0] || got[1] != paths[1] {
		t.Errorf("Paths = %v, want %v", got, paths)
	}
	got[0] = "mutated"
	if multi.Paths()[0] != paths[0] {
		t.Error("Paths exposed internal state")
	}

	if multi.Shard(1).Path() != paths[1] {
		t.Errorf("Shard(1).Path = %q, want %q", multi.Shard(1).Path(), paths[1])
	}
	if multi.Shard(2) != nil {
		t.Error("Shard(2) returned a reader")
	}
	if want := multi.Shard(0).Size() + multi.Shard(1).Size(); multi.MappedBytes() != want {
		t.Errorf("MappedBytes = %d, want %d", multi.MappedBytes(), want)
	}
}

func TestMultiReaderConcurrentReads(t *testing.T) {
	directory := t.TempDir()
	var paths []string
	var want []string
	for shardIndex := range 4 {
		var samples []string
		for local := range 25 {
			samples = append(samples, fmt.Sprintf("shard%d-sample%d", shardIndex, local))
		}
		want = append(want, samples...)
		paths = append(paths, shardtest.WriteShard(t, directory, fmt.Sprintf("%d.shard", shardIndex), samples...))
	}

	multi, err := OpenMulti(paths)
	if err != nil {
		t.Fatalf("OpenMulti: %v", err)
	}
	defer multi.Close()

	var waitGroup sync.WaitGroup
	errs := make(chan error, 8)
	for worker := range 8 {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for step := range len(want) {
				global := (worker*13 + step*7) % len(want)
				sample, err := multi.Sample(global)
				if err != nil {
					errs <- err
					return
				}
				if string(sample) != want[global] {
					errs <- fmt.Errorf("Sample(%d) = %q, want %q", global, sample, want[global])
					return
				}
			}
		}()
	}
	waitGroup.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
