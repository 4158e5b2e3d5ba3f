package bytecode

// Sink accepts the linear instruction sequence of one method body, in
// original order. Implementations must not reorder or drop instructions.
// Emit errors signal pipeline corruption in the host and must propagate to
// the caller unmodified.
type Sink interface {
	Emit(Instr) error
}

// SliceSink collects emitted instructions in order.
type SliceSink struct {
	Instrs []Instr
}

func (s *SliceSink) Emit(in Instr) error {
	s.Instrs = append(s.Instrs, in)
	return nil
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Instr) error

func (f SinkFunc) Emit(in Instr) error {
	return f(in)
}
