package bytecode

import (
	"logtag/internal/facade"
)

// InstrKind enumerates lowered instruction kinds.
type InstrKind uint8

const (
	// InstrRaw is an opaque lowered instruction the rewriter never inspects.
	InstrRaw InstrKind = iota
	// InstrLoadConst pushes a string constant onto the operand stack.
	InstrLoadConst
	// InstrInvoke calls a method.
	InstrInvoke
	// InstrPop discards the value on top of the operand stack.
	InstrPop
	// InstrReturn leaves the enclosing method.
	InstrReturn
)

func (k InstrKind) String() string {
	switch k {
	case InstrRaw:
		return "raw"
	case InstrLoadConst:
		return "ldc"
	case InstrInvoke:
		return "invoke"
	case InstrPop:
		return "pop"
	case InstrReturn:
		return "return"
	}
	return "unknown"
}

// Instr is one lowered instruction. The payload field matching Kind is set;
// all others stay zero. All fields are comparable, so instruction streams can
// be compared directly in tests.
type Instr struct {
	Kind InstrKind

	Raw       RawInstr
	LoadConst LoadConstInstr
	Invoke    InvokeInstr
}

// RawInstr carries the textual form of an instruction the rewriter forwards
// without interpretation.
type RawInstr struct {
	Text string
}

// LoadConstInstr pushes Value as a string constant.
type LoadConstInstr struct {
	Value string
}

// InvokeInstr is a call site: owner internal name, method name, descriptor
// and dispatch mode.
type InvokeInstr struct {
	Owner      string
	Name       string
	Descriptor string
	Dispatch   facade.Dispatch
}

// Raw builds an opaque instruction from its textual form.
func Raw(text string) Instr {
	return Instr{Kind: InstrRaw, Raw: RawInstr{Text: text}}
}

// LoadConst builds a string-constant push.
func LoadConst(value string) Instr {
	return Instr{Kind: InstrLoadConst, LoadConst: LoadConstInstr{Value: value}}
}

// Invoke builds a call-site instruction.
func Invoke(dispatch facade.Dispatch, owner, name, descriptor string) Instr {
	return Instr{Kind: InstrInvoke, Invoke: InvokeInstr{
		Owner:      owner,
		Name:       name,
		Descriptor: descriptor,
		Dispatch:   dispatch,
	}}
}

// Pop builds a stack-discard instruction.
func Pop() Instr {
	return Instr{Kind: InstrPop}
}

// Return builds a method-return instruction.
func Return() Instr {
	return Instr{Kind: InstrReturn}
}
