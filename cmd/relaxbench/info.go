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
package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-relax/relax/contrib/grid"
	"github.com/ajroetker/go-relax/relax/contrib/workerpool"
)

func newInfoCommand(logger *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print execution defaults and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debug().Str("goarch", runtime.GOARCH).Msg("collecting host info")
			printInfo(cmd.OutOrStdout())
			return nil
		},
	}
}

func printInfo(w io.Writer) {
	fmt.Fprintf(w, "GOOS/GOARCH:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "GOMAXPROCS:        %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintf(w, "pool workers:      %d (%s)\n", workerpool.DefaultWorkers(), workerpool.EnvNumWorkers)
	fmt.Fprintf(w, "grid block size:   %d\n", grid.DefaultBlockSize)

	switch runtime.GOARCH {
	case "amd64":
		fmt.Fprintf(w, "AVX2: %v  FMA: %v  AVX-512F: %v\n", cpu.X86.HasAVX2, cpu.X86.HasFMA, cpu.X86.HasAVX512F)
	case "arm64":
		fmt.Fprintf(w, "ASIMD: %v  FP: %v  SVE: %v\n", cpu.ARM64.HasASIMD, cpu.ARM64.HasFP, cpu.ARM64.HasSVE)
	default:
		fmt.Fprintln(w, "no CPU feature report for this architecture")
	}
}
