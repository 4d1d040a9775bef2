// Package schema compiles JSON Schema (draft 7) documents into
// validation graphs and validates instances against them.
//
// # Compilation
//
// Compile walks a parsed schema document. For each object node it
// instantiates one validator per recognized keyword, recurses into
// child schemas, and records the node's JSON-Pointer path in the
// root's Resolver. Compilation errors are accumulated, not
// short-circuited: the compiler records every failure it can find in
// one pass and returns them as one ValidationError.
//
// A root schema owns exactly one Resolver; every descendant borrows
// it. References ($ref) are queued during compilation and swept once
// at the end of root compilation. At validation time a $ref is an
// indirection through the resolver's pointer-keyed registry, never a
// structural edge, so cyclic schemas need no special handling.
//
// Unless disabled, Compile validates the schema document against the
// embedded draft 7 meta-schema. The meta-schema itself is compiled
// with that check suppressed, which breaks the recursion.
//
// # Validation
//
// Validators are stateless. A validator that does not apply to the
// instance's type passes silently (maxLength on a number is a no-op).
// Validation errors accumulate across siblings; anyOf discards branch
// errors once a branch succeeds, oneOf counts successes only.
package schema
