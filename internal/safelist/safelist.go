// Package safelist holds the two immutable method-name allow-lists the
// chain validator checks against: schema constructors (reachable as
// z.<name>(...)) and chain methods (reachable as <schema>.<name>(...)).
package safelist

// constructors are the schema-construction entry points hung off the
// root z namespace identifier.
var constructors = map[string]struct{}{
	"string": {}, "number": {}, "bigint": {}, "boolean": {}, "date": {},
	"symbol": {}, "undefined": {}, "null": {}, "void": {}, "any": {},
	"unknown": {}, "never": {}, "nan": {},
	"object": {}, "array": {}, "tuple": {}, "record": {}, "map": {}, "set": {},
	"union": {}, "discriminatedUnion": {}, "intersection": {},
	"literal": {}, "enum": {}, "nativeEnum": {},
	"function": {}, "promise": {}, "lazy": {}, "effect": {}, "preprocess": {},
	"custom": {}, "instanceof": {}, "coerce": {},
}

// chainMethods are method names reachable off an already-constructed
// schema expression. Some names (e.g. "optional") have no constructor
// counterpart; others overlap with constructors intentionally.
var chainMethods = map[string]struct{}{
	// shared refinements/wrappers
	"optional": {}, "nullable": {}, "nullish": {}, "default": {}, "catch": {},
	"describe": {}, "brand": {}, "readonly": {},
	"refine": {}, "superRefine": {}, "transform": {}, "pipe": {},
	"or": {}, "and": {},
	// string
	"min": {}, "max": {}, "length": {}, "email": {}, "url": {}, "uuid": {},
	"cuid": {}, "cuid2": {}, "ulid": {}, "regex": {}, "includes": {},
	"startsWith": {}, "endsWith": {}, "trim": {}, "toLowerCase": {}, "toUpperCase": {},
	"datetime": {}, "ip": {}, "emoji": {},
	// number/bigint
	"gt": {}, "gte": {}, "lt": {}, "lte": {}, "int": {}, "positive": {},
	"nonnegative": {}, "negative": {}, "nonpositive": {}, "multipleOf": {}, "finite": {}, "safe": {},
	// object
	"partial": {}, "required": {}, "pick": {}, "omit": {}, "extend": {},
	"merge": {}, "passthrough": {}, "strict": {}, "strip": {}, "shape": {}, "keyof": {},
	// array/tuple
	"nonempty": {}, "element": {}, "rest": {},
}

// IsConstructor reports whether name is an allowed z.<name>(...) entry point.
func IsConstructor(name string) bool {
	_, ok := constructors[name]

	return ok
}

// IsChainMethod reports whether name is an allowed <schema>.<name>(...) call.
func IsChainMethod(name string) bool {
	_, ok := chainMethods[name]

	return ok
}

// IsAllowed reports whether name is in the union of both allow-lists,
// the check the grammar recognizer applies to every method name in a
// z-chain regardless of position.
func IsAllowed(name string) bool {
	return IsConstructor(name) || IsChainMethod(name)
}
