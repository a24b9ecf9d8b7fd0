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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedLayout reports inconsistent offsets, counts or slice lengths.
	ErrMalformedLayout = errors.New("relax: malformed layout")

	// ErrColumnOutOfRange reports a column index outside [0, numRows).
	ErrColumnOutOfRange = errors.New("relax: column index out of range")

	// ErrShape reports vectors or blocks whose dimensions do not match the matrix.
	ErrShape = errors.New("relax: shape mismatch")

	// ErrAliased reports an output block that overlaps an input block.
	ErrAliased = errors.New("relax: output aliases input")

	// ErrMissingDiagonal reports rows with no stored diagonal entry.
	ErrMissingDiagonal = errors.New("relax: missing diagonal entry")

	// ErrZeroDiagonal reports diagonal entries that are zero or not finite.
	ErrZeroDiagonal = errors.New("relax: zero or non-finite diagonal entry")
)

// maxListedRows caps the number of rows spelled out in error messages.
const maxListedRows = 8

// MissingDiagonalError lists the rows that have no stored diagonal entry.
// It matches ErrMissingDiagonal with errors.Is.
type MissingDiagonalError struct {
	Rows []int
}

func (e *MissingDiagonalError) Error() string {
	return fmt.Sprintf("%v in %d row(s): %s", ErrMissingDiagonal, len(e.Rows), listRows(e.Rows))
}

func (e *MissingDiagonalError) Is(target error) bool {
	return target == ErrMissingDiagonal
}

// ZeroDiagonalError lists the rows whose diagonal entry is zero, NaN or Inf.
// It matches ErrZeroDiagonal with errors.Is.
type ZeroDiagonalError struct {
	Rows []int
}

func (e *ZeroDiagonalError) Error() string {
	return fmt.Sprintf("%v in %d row(s): %s", ErrZeroDiagonal, len(e.Rows), listRows(e.Rows))
}

func (e *ZeroDiagonalError) Is(target error) bool {
	return target == ErrZeroDiagonal
}

func listRows(rows []int) string {
	var sb strings.Builder
	for i, r := range rows {
		if i == maxListedRows {
			sb.WriteString(", ...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", r)
	}
	return sb.String()
}
