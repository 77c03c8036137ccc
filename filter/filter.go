package filter

import "github.com/s0up4200/yageo/yandex"

var defaultCompiler = NewExprCompiler(WithCache(32))

// CompileFilter compiles an expression with the shared, caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the objects matching f, preserving order. A nil filter
// matches everything.
func Apply(f Filter, objects []yandex.GeoObject) []yandex.GeoObject {
	if f == nil {
		return objects
	}
	matched := make([]yandex.GeoObject, 0, len(objects))
	for _, obj := range objects {
		if f.Evaluate(obj) {
			matched = append(matched, obj)
		}
	}
	return matched
}
