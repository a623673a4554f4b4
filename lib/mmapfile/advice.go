// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mmapfile

import "fmt"

// Advice is an access-pattern hint for [File.Advise].
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	// AdviceWillNeed asks the kernel to start reading the mapped pages
	// in ahead of access.
	AdviceWillNeed
)

func (a Advice) String() string {
	switch a {
	case AdviceNormal:
		return "normal"
	case AdviceSequential:
		return "sequential"
	case AdviceRandom:
		return "random"
	case AdviceWillNeed:
		return "willneed"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}
