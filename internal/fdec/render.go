// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fdec

import (
	"fmt"
	"strings"
)

// guard is the include guard macro of the generated header.
const guard = "FDEC_H"

// DefaultAttribution is the leading comment block used when none is
// configured.
var DefaultAttribution = []string{
	"LastEmperor, a Chess960 move generator (Derived from Sapeli 1.67)",
	"Copyright (C) 2019 Toni Helminen",
}

// DefaultToolName appears on the "Generated by" line when none is configured.
const DefaultToolName = "srctools fdec"

// HeaderOptions controls the fixed text around the declaration list.
type HeaderOptions struct {
	Attribution []string
	ToolName    string
}

func (o HeaderOptions) withDefaults() HeaderOptions {
	if len(o.Attribution) == 0 {
		o.Attribution = DefaultAttribution
	}
	if o.ToolName == "" {
		o.ToolName = DefaultToolName
	}
	return o
}

// RenderBody joins decls into declaration statements. The trailing ";" is
// always appended, so an empty list renders as a lone ";".
func RenderBody(decls []string) string {
	return strings.Join(decls, ";\n") + ";"
}

// Render builds the complete header document for decls extracted from the
// file named inputName.
func Render(inputName string, decls []string, opts HeaderOptions) string {
	opts = opts.withDefaults()

	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range opts.Attribution {
		fmt.Fprintf(&b, "* %s\n", line)
	}
	b.WriteString("**/\n\n")

	b.WriteString("/**\n")
	fmt.Fprintf(&b, "* %s function declarations\n", inputName)
	fmt.Fprintf(&b, "* Generated by %s\n", opts.ToolName)
	b.WriteString("**/\n\n")

	fmt.Fprintf(&b, "#ifndef %s\n", guard)
	fmt.Fprintf(&b, "#define %s\n\n", guard)

	b.WriteString(RenderBody(decls))

	fmt.Fprintf(&b, "\n\n#endif /* #ifndef %s */\n", guard)
	return b.String()
}
