/*
Package runtime holds the non-primitive values a running Lox program
creates: user-defined functions, classes, and instances. It is the
"closure-carrying" counterpart to package value's pure primitives, the same
split go-mix's interpreter draws between objects (primitive
GoMixObject implementations with no parser/scope dependency) and function
(function.Function, which needs parser and scope types objects cannot
import without a cycle).

None of the types here implement a Call method. Dispatch is done by the
interpreter with a type switch over the concrete callee, mirroring
go-mix's Evaluator.CallFunction, which inspects the callee's concrete
Go type rather than calling through an interface method - the same
choice that lets this package sit below interpreter in the import graph
instead of across from it.
*/
package runtime

import (
	"fmt"

	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/environment"
	"github.com/gomix-lang/golox/value"
)

// NativeRuntime is the narrow capability natives need from the interpreter
// that created them: access to the environment active at the call site.
// Defined here (rather than in interpreter) so natives.Register can depend
// on runtime without depending on interpreter, avoiding a cycle back.
type NativeRuntime interface {
	CurrentEnvironment() *environment.Environment
}

// Function is a user-defined function or method: its declaration plus the
// environment it closed over at definition time.
type Function struct {
	Name          string
	Decl          *ast.FunctionExpr
	Closure       *environment.Environment
	IsInitializer bool
}

func (*Function) Type() string { return "function" }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Arity is the declared parameter count.
func (f *Function) Arity() int { return len(f.Decl.Params) }

// Bind returns a copy of f whose closure is a new scope, nested in the
// original closure, with `this` bound to instance. Used when a method is
// read off an instance via Get, so the bound `this` travels with the
// resulting callable even if it is stored and invoked later.
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.New(f.Closure)
	env.RawDefine("this", instance)
	return &Function{Name: f.Name, Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction is a builtin implemented in Go (clock, environment, ...).
type NativeFunction struct {
	Name       string
	ArityValue int
	Fn         func(rt NativeRuntime, args []value.Value) (value.Value, error)
}

func (*NativeFunction) Type() string     { return "native" }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFunction) Arity() int     { return n.ArityValue }

// Class is a Lox class. A class is itself an instance of a singleton
// metaclass, which is what lets it carry static fields and methods the
// same way an ordinary instance carries instance fields; Meta is that
// per-class metaclass instance, created alongside the class.
type Class struct {
	Name       string
	Superclass *Class // nil only for the implicit root Object class and the interpreter's metaclass
	Methods    map[string]*Function
	Meta       *Instance // this class's own static-member storage
}

func (*Class) Type() string { return "class" }

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// Arity mirrors the constructor's arity: calling a class invokes `init`.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up name on c, then walks the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// GetStatic reads a static field or static method off the class itself,
// e.g. `ClassName.field` or `ClassName.helper()`. Static members live on
// c.Meta, the per-class metaclass instance; they are never class-Bound the
// way instance methods are, since a static method closes over the scope it
// was declared in, not over any particular instance.
func (c *Class) GetStatic(name string) (value.Value, bool) {
	if v, ok := c.Meta.Fields[name]; ok {
		return v, true
	}
	if c.Superclass != nil {
		return c.Superclass.GetStatic(name)
	}
	return nil, false
}

// SetStatic installs a static field or static method on the class.
func (c *Class) SetStatic(name string, v value.Value) {
	c.Meta.Fields[name] = v
}

// Instance is a runtime object: either an ordinary instance of a Class, or
// (when used as Class.Meta) the holder of a class's own static fields.
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

// NewInstance allocates a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]value.Value)}
}

func (*Instance) Type() string { return "instance" }

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// Get reads a field, then a bound method, off the instance. The bool is
// false when neither exists; callers turn that into a RuntimeError with the
// access token attached, which this package - having no loxerror or token
// dependency - deliberately leaves to the interpreter.
func (i *Instance) Get(name string) (value.Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set writes a field directly; Lox instances admit arbitrary new fields.
func (i *Instance) Set(name string, v value.Value) {
	i.Fields[name] = v
}

// NewObjectRoot builds the implicit root class every class without an
// explicit superclass extends. It has no methods of its own; its purpose
// is solely to give every user class a non-nil Superclass. The superclass
// walks in FindMethod and GetStatic stop here, at the nil Superclass of
// this root.
func NewObjectRoot() *Class {
	root := &Class{Name: "Object", Methods: map[string]*Function{}}
	root.Meta = NewInstance(root)
	return root
}
