// Package main renders a basic format template in order to test WASM
// compilation.
package main

import (
	"context"
	"fmt"

	"github.com/theory/dtformat/format"
	"github.com/theory/dtformat/format/holiday"
)

func main() {
	// Compile a template.
	tmpl, _ := format.Compile(`%DATE-M1B% {}`)

	// Render it for an integer date, skipping US federal holidays.
	result, _ := tmpl.Render(
		context.Background(), 20210706,
		format.WithHolidays(holiday.Federal{}),
		format.WithArgs("report"),
	)

	// Show the result.
	//nolint:forbidigo
	fmt.Printf("%s\n", result)
}
