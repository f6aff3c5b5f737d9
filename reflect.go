package control

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Ports derives a block's port maps from its struct fields, saving custom
// blocks from writing Inputs and Outputs by hand.
//
// Exported fields of a port type tagged `io:"in"` or `io:"out"` are
// collected. The port name defaults to the lowercased field name and can be
// forced with `io:"in,name"`. A slice or array field expands to an indexed
// family of ports named name1, name2, ...:
//
//	type Cart struct {
//		UForce control.Input[float64]  `io:"in,u_force"`
//		YPos   control.Output[float64] `io:"out,y_pos"`
//	}
//
//	func (c *Cart) Inputs() map[string]control.InputPort  { in, _ := control.Ports(c); return in }
//	func (c *Cart) Outputs() map[string]control.OutputPort { _, out := control.Ports(c); return out }
//
// Ports panics on malformed tags or non-port tagged fields: these are
// programming errors in the block definition, not runtime conditions.
func Ports(block any) (map[string]InputPort, map[string]OutputPort) {
	v := reflect.ValueOf(block)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("control: Ports expects a pointer to struct, got %T", block))
	}
	e := v.Elem()
	typ := e.Type()

	ins := make(map[string]InputPort)
	outs := make(map[string]OutputPort)
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("io")
		if !ok {
			continue
		}
		dir, override, _ := strings.Cut(tag, ",")
		name := strings.ToLower(f.Name)
		if override != "" {
			name = override
		}
		var isInput bool
		switch dir {
		case "in":
			isInput = true
		case "out":
		default:
			panic(errors.Errorf("control: unsupported io tag %q on field %s.%s", tag, typ.Name(), f.Name))
		}
		if !f.IsExported() {
			panic(errors.Errorf("control: io-tagged field %s.%s must be exported", typ.Name(), f.Name))
		}
		fv := e.Field(i)
		switch f.Type.Kind() {
		case reflect.Slice, reflect.Array:
			for j := 0; j < fv.Len(); j++ {
				addPort(ins, outs, name+strconv.Itoa(j+1), fv.Index(j).Addr(), isInput, typ, f)
			}
		default:
			addPort(ins, outs, name, fv.Addr(), isInput, typ, f)
		}
	}
	return ins, outs
}

func addPort(ins map[string]InputPort, outs map[string]OutputPort,
	name string, pv reflect.Value, isInput bool, typ reflect.Type, f reflect.StructField) {

	if isInput {
		p, ok := pv.Interface().(InputPort)
		if !ok {
			panic(errors.Errorf("control: field %s.%s tagged io:\"in\" is not an input port", typ.Name(), f.Name))
		}
		ins[name] = p
		return
	}
	p, ok := pv.Interface().(OutputPort)
	if !ok {
		panic(errors.Errorf("control: field %s.%s tagged io:\"out\" is not an output port", typ.Name(), f.Name))
	}
	outs[name] = p
}
