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
package relax_test

import (
	"errors"
	"testing"

	"github.com/ajroetker/go-relax/relax"
)

func TestNewBlock(t *testing.T) {
	tests := []struct {
		name                 string
		dataLen              int
		rows, numRHS, stride int
		wantErr              bool
	}{
		{"single column", 4, 4, 1, 4, false},
		{"padded stride", 14, 4, 3, 5, false},
		{"last column needs only rows", 13, 3, 3, 5, false},
		{"stride below rows", 12, 4, 3, 3, true},
		{"data too short", 13, 4, 3, 5, true},
		{"zero rows", 4, 0, 1, 4, true},
		{"zero rhs", 4, 4, 0, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := relax.NewBlock(make([]float64, tt.dataLen), tt.rows, tt.numRHS, tt.stride)
			if tt.wantErr {
				if !errors.Is(err, relax.ErrShape) {
					t.Fatalf("NewBlock() error = %v, want ErrShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBlock() unexpected error: %v", err)
			}
		})
	}
}

func TestBlockAccessors(t *testing.T) {
	data := []float64{
		1, 2, 3, -1, // rhs 0 plus one padding element
		4, 5, 6, -1, // rhs 1
	}
	b, err := relax.NewBlock(data, 3, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	if b.Len() != 6 {
		t.Errorf("Len() = %d, want 6", b.Len())
	}
	if got := b.At(2, 1); got != 6 {
		t.Errorf("At(2, 1) = %v, want 6", got)
	}
	col := b.Col(1)
	if len(col) != 3 || col[0] != 4 || col[2] != 6 {
		t.Errorf("Col(1) = %v, want [4 5 6]", col)
	}

	b.Set(0, 1, 40)
	if data[4] != 40 {
		t.Errorf("Set(0, 1) wrote %v at data[4], want 40", data[4])
	}
	if data[3] != -1 || data[7] != -1 {
		t.Errorf("padding modified: %v", data)
	}
}

func TestVector(t *testing.T) {
	v := relax.Vector([]float32{1, 2, 3})
	if v.Rows != 3 || v.NumRHS != 1 || v.Stride != 3 {
		t.Errorf("Vector() = %+v, want 3 rows, 1 rhs, stride 3", v)
	}
}

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		i, rows       int
		wantRow, wRHS int
	}{
		{0, 4, 0, 0},
		{3, 4, 3, 0},
		{4, 4, 0, 1},
		{11, 4, 3, 2},
		{5, 1, 0, 5},
	}
	for _, tt := range tests {
		row, rhs := relax.SplitIndex(tt.i, tt.rows)
		if row != tt.wantRow || rhs != tt.wRHS {
			t.Errorf("SplitIndex(%d, %d) = (%d, %d), want (%d, %d)", tt.i, tt.rows, row, rhs, tt.wantRow, tt.wRHS)
		}
	}
}
