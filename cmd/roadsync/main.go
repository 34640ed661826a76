/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/roadsight/roadsync/pkg/cli"

func main() {
	cli.Execute()
}
