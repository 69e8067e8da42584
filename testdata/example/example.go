// Package example is an input fixture for sdoc tests.
package example

/**
### &Greeter ###

Greeter produces greeting messages.

#### fields ####

+ Name
  * included in every greeting
*/
type Greeter struct {
	Name string
}

/**
### constructor &NewGreeter ###

Constructs a Greeter.
*/
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

/**
### Greet ###

Returns a friendly message.

#### returns ####

The greeting text.
*/
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}
