// Package generators builds small boundary-DSL programs from fuzz
// input bytes. Programs are generated together with a ground-truth
// verdict so fuzz targets can check the checker against an oracle
// instead of only exercising crash-freedom.
package generators

import (
	"fmt"
	"strings"
)

// Generator consumes fuzz data bytes as a decision stream.
type Generator struct {
	data []byte
	pos  int
}

func NewFromData(data []byte) *Generator {
	return &Generator{data: data}
}

// Byte returns the next decision byte, cycling to a fixed point once
// the data is exhausted so generation always terminates.
func (g *Generator) Byte() byte {
	if len(g.data) == 0 {
		return 0
	}
	b := g.data[g.pos%len(g.data)]
	g.pos++
	return b
}

// Intn returns a value in [0, n).
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Byte()) % n
}

// binding is one generated let binding with its known tag.
type binding struct {
	name   string
	inproc bool
}

// Program is a generated program plus its ground truth.
type Program struct {
	Source string

	// Leaks is true iff the program passes at least one inproc-tagged
	// value into the xproc sink without a reveal. A sound checker must
	// reject exactly these programs.
	Leaks bool

	// RevealCount is the number of reveal calls on inproc values.
	RevealCount int
}

// GenerateBoundaryProgram emits a program of the shape:
//
//	fun sink(v: xproc String) -> Unit { }
//	let bN: <tag> String = "..."        (several)
//	let cN = bX ++ bY                   (sometimes)
//	sink(bX) | sink(reveal(bX))         (several)
//
// Every construct's tag is tracked while generating, so Leaks is exact.
func GenerateBoundaryProgram(g *Generator) Program {
	var sb strings.Builder
	sb.WriteString("fun sink(v: xproc String) -> Unit { }\n")

	bindings := []binding{}
	numLets := 1 + g.Intn(4)
	for i := 0; i < numLets; i++ {
		name := fmt.Sprintf("b%d", i)
		inproc := g.Intn(2) == 1
		tag := "xproc"
		if inproc {
			tag = "inproc"
		}
		fmt.Fprintf(&sb, "let %s: %s String = \"v%d\"\n", name, tag, i)
		bindings = append(bindings, binding{name: name, inproc: inproc})
	}

	// Derived bindings: concatenation combines tags (poisoning).
	numDerived := g.Intn(3)
	for i := 0; i < numDerived; i++ {
		left := bindings[g.Intn(len(bindings))]
		right := bindings[g.Intn(len(bindings))]
		name := fmt.Sprintf("c%d", i)
		fmt.Fprintf(&sb, "let %s = %s ++ %s\n", name, left.name, right.name)
		bindings = append(bindings, binding{name: name, inproc: left.inproc || right.inproc})
	}

	prog := Program{}
	numCalls := 1 + g.Intn(4)
	for i := 0; i < numCalls; i++ {
		b := bindings[g.Intn(len(bindings))]
		if g.Intn(2) == 1 {
			fmt.Fprintf(&sb, "sink(reveal(%s))\n", b.name)
			if b.inproc {
				prog.RevealCount++
			}
		} else {
			fmt.Fprintf(&sb, "sink(%s)\n", b.name)
			if b.inproc {
				prog.Leaks = true
			}
		}
	}

	prog.Source = sb.String()
	return prog
}
