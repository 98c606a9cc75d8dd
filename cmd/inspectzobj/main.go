// cmd/inspectzobj/main.go — Print the embedded trailer and skeleton of zobj files.
//
// Usage:
//
//	go run ./cmd/inspectzobj link.zobj [child.zobj ...]
package main

import (
	"fmt"
	"os"
	"strings"

	"zobj-alias-compiler/internal/skeleton"
	"zobj-alias-compiler/internal/source"
	"zobj-alias-compiler/internal/zobj"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectzobj <file.zobj> ...")
		os.Exit(2)
	}

	status := 0
	for _, arg := range os.Args[1:] {
		f, err := source.ReadZobj(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			status = 1
			continue
		}
		fmt.Printf("\n=== %s (0x%X bytes) ===\n", f.Name, len(f.Data))

		tr, err := zobj.ParseTrailer(f.Data, f.Name)
		if err != nil {
			fmt.Printf("Trailer: %v\n", err)
		} else {
			fmt.Printf("Trailer at 0x%X, %d display lists\n", tr.Offset, len(tr.Entries))
			for _, e := range tr.Entries {
				fmt.Printf("  0x%06X  %s\n", e.Offset, e.Name)
			}
		}

		h, err := zobj.FindHierarchy(f.Data, f.Name)
		if err != nil {
			fmt.Printf("Hierarchy: %v\n", err)
			status = 1
			continue
		}
		fmt.Printf("Hierarchy at 0x%X: table 0x%08X, %d limbs, %d with display lists\n",
			h.Offset, h.LimbTable(), h.Limbs(), h.DLists())

		limbs, err := skeleton.Read(f.Data, h)
		if err != nil {
			fmt.Printf("  %v\n", err)
			status = 1
			continue
		}
		skeleton.Walk(limbs, func(i, depth int) {
			l := limbs[i]
			fmt.Printf("  %s[%2d] 0x%06X joint=(%d,%d,%d) dl=0x%08X\n",
				strings.Repeat("  ", depth), i, l.Offset, l.Joint[0], l.Joint[1], l.Joint[2], l.DList)
		})
	}
	os.Exit(status)
}
