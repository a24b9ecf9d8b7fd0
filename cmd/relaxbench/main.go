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
// Command relaxbench runs relaxation sweeps on a 2D Poisson model problem
// and reports residual norms, timings and, optionally, the distance to a
// sparse LU reference solution.
//
// Usage:
//
//	relaxbench info
//	relaxbench run --grid 64 --kernel gauss-seidel --mode hybrid --executor pool --sweeps 50
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
