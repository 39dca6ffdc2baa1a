// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
