// Package facade describes the logging API recognized by the rewriter.
//
// The facade identity is plain configuration data passed into the rewriting
// layer at construction time. There is no module-level mutable state: tests
// and projects swap the recognized facade by constructing a different value.
package facade

// Dispatch distinguishes how a call instruction binds its target.
type Dispatch uint8

const (
	// DispatchStatic is a static (receiver-less) call.
	DispatchStatic Dispatch = iota
	// DispatchVirtual is an instance-bound call resolved at runtime.
	DispatchVirtual
	// DispatchInterface is an instance-bound call through an interface type.
	DispatchInterface
	// DispatchSpecial is an instance-bound call with fixed resolution
	// (constructors, super calls).
	DispatchSpecial
)

func (d Dispatch) String() string {
	switch d {
	case DispatchStatic:
		return "static"
	case DispatchVirtual:
		return "virtual"
	case DispatchInterface:
		return "interface"
	case DispatchSpecial:
		return "special"
	}
	return "unknown"
}

// Facade identifies one logging API by its internal owner name, the set of
// static log methods to prefix, and the static tag-binding method.
type Facade struct {
	owner         string
	logMethods    map[string]struct{}
	tagMethod     string
	tagDescriptor string
}

// New constructs a facade description. The method list is copied.
func New(owner string, logMethods []string, tagMethod, tagDescriptor string) Facade {
	set := make(map[string]struct{}, len(logMethods))
	for _, m := range logMethods {
		set[m] = struct{}{}
	}
	return Facade{
		owner:         owner,
		logMethods:    set,
		tagMethod:     tagMethod,
		tagDescriptor: tagDescriptor,
	}
}

// Default returns the Timber facade model the plugin ships with.
func Default() Facade {
	return New(
		"timber/log/Timber",
		[]string{"v", "d", "i", "w", "e", "wtf", "log"},
		"tag",
		"(Ljava/lang/String;)Ltimber/log/Timber$Tree;",
	)
}

// Absent returns the zero facade, modelling a classpath without the
// recognized logging API. Rewriting against it is a complete bypass.
func Absent() Facade {
	return Facade{}
}

// Present reports whether the facade exists on the modelled classpath.
func (f Facade) Present() bool {
	return f.owner != ""
}

// Owner returns the facade's internal type name, e.g. "timber/log/Timber".
func (f Facade) Owner() string {
	return f.owner
}

// TagMethod returns the name of the static tag-binding method.
func (f Facade) TagMethod() string {
	return f.tagMethod
}

// TagDescriptor returns the descriptor of the static tag-binding method.
// The method takes one string and returns an opaque handle to the facade.
func (f Facade) TagDescriptor() string {
	return f.tagDescriptor
}

// LogMethods returns the recognized log method names in unspecified order.
func (f Facade) LogMethods() []string {
	out := make([]string, 0, len(f.logMethods))
	for m := range f.logMethods {
		out = append(out, m)
	}
	return out
}

// RecognizesLogCall reports whether a call with the given owner, method name
// and dispatch is a static call into this facade's log-method family.
// Instance-bound dispatch never matches: a non-static call means the tag was
// already bound by an explicit call earlier in the original source.
func (f Facade) RecognizesLogCall(owner, name string, dispatch Dispatch) bool {
	if !f.Present() || dispatch != DispatchStatic || owner != f.owner {
		return false
	}
	_, ok := f.logMethods[name]
	return ok
}
