// Copyright 2025 go-relax Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relax

import (
	"fmt"
	"strings"
)

// Mode selects how a Gauss-Seidel sweep is ordered.
type Mode int

const (
	// Strict runs indices in ascending order on a single goroutine.
	// Every row sees the values already updated by earlier rows, which
	// reproduces sequential Gauss-Seidel exactly.
	Strict Mode = iota

	// Hybrid runs indices on the caller's Executor with no ordering or
	// synchronization. Rows may read neighbours that are stale or being
	// written concurrently, giving asynchronous Gauss-Seidel. It converges
	// for the usual diagonally dominant systems but does not reproduce the
	// sequential iterates.
	Hybrid
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseMode parses "strict" or "hybrid", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "hybrid":
		return Hybrid, nil
	default:
		return Strict, fmt.Errorf("relax: unknown mode %q (want strict or hybrid)", s)
	}
}

// RunGaussSeidel performs one Gauss-Seidel sweep of op.
//
// In Strict mode ex is ignored and the sweep runs serially in ascending
// order. In Hybrid mode the sweep runs on ex (serially if ex is nil).
func RunGaussSeidel[T Floats, I Ordinals](ex Executor, mode Mode, op GaussSeidelOp[T, I]) {
	if mode == Hybrid {
		Run(ex, op)
		return
	}
	Run(Serial{}, op)
}

// RunSymmetricGaussSeidel performs a strict forward sweep followed by a
// strict backward sweep.
func RunSymmetricGaussSeidel[T Floats, I Ordinals](op GaussSeidelOp[T, I]) {
	Run(Serial{}, op)
	Run(Reverse{}, op)
}
