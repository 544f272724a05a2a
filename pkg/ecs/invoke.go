package ecs

import (
	"fmt"
	"reflect"

	"github.com/zeusync/entity/pkg/observability/log"
)

// Invoke calls method on the component stored under name and returns the
// method's results. A missing (or nil) component is not an error: Invoke
// returns nil results and calls nothing. A present component without the
// method fails with ErrMissingMethod.
//
// Methods are resolved on the stored value, so a component stored by value
// does not expose methods declared on its pointer type.
func (c *Components) Invoke(name, method string, args ...any) ([]any, error) {
	component, ok := c.Get(name)
	if !ok || component == nil {
		return nil, nil
	}

	m, ok := lookupMethod(component, method)
	if !ok {
		return nil, &MethodError{Component: name, Method: method, Err: ErrMissingMethod}
	}

	results, err := call(m, args)
	if err != nil {
		return nil, &MethodError{Component: name, Method: method, Err: err}
	}
	return results, nil
}

// InvokeForEachComponent calls method with args on every named component that
// has it. Components without the method are skipped. Enumeration stops at the
// first component whose method cannot take args.
func (c *Components) InvokeForEachComponent(method string, args []any, keys ...string) error {
	var failure error
	c.walk(c.resolve(keys), func(component any, key string) bool {
		m, ok := lookupMethod(component, method)
		if !ok {
			c.logger.Debug("component skipped", log.String("component", key), log.String("method", method))
			return true
		}
		if _, err := call(m, args); err != nil {
			failure = &MethodError{Component: key, Method: method, Err: err}
			return false
		}
		return true
	})
	return failure
}

func lookupMethod(component any, method string) (reflect.Value, bool) {
	if component == nil || method == "" {
		return reflect.Value{}, false
	}
	m := reflect.ValueOf(component).MethodByName(method)
	return m, m.IsValid()
}

// call invokes m, checking the arguments first so a mismatch surfaces as
// ErrInvalidArguments instead of a reflect panic.
func call(m reflect.Value, args []any) ([]any, error) {
	mt := m.Type()
	in := mt.NumIn()

	if mt.IsVariadic() {
		if len(args) < in-1 {
			return nil, fmt.Errorf("%w: want at least %d, got %d", ErrInvalidArguments, in-1, len(args))
		}
	} else if len(args) != in {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrInvalidArguments, in, len(args))
	}

	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		value, err := argValue(arg, paramType(mt, i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrInvalidArguments, i, err)
		}
		values[i] = value
	}

	out := m.Call(values)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// paramType returns the type argument i is passed as, or nil when the method
// takes fewer arguments.
func paramType(mt reflect.Type, i int) reflect.Type {
	in := mt.NumIn()
	if mt.IsVariadic() && i >= in-1 {
		return mt.In(in - 1).Elem()
	}
	if i < in {
		return mt.In(i)
	}
	return nil
}

func argValue(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch target.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(target), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil is not a valid %s", target)
		}
	}

	value := reflect.ValueOf(arg)
	if value.Type().AssignableTo(target) {
		return value, nil
	}
	// Func types sharing a signature are converted, so a Finish can be handed
	// to a method declared with its own callback type.
	if value.Kind() == reflect.Func && target.Kind() == reflect.Func && value.Type().ConvertibleTo(target) {
		return value.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", value.Type(), target)
}
