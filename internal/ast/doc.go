// Package ast models the Java subset relog rewrites as a closed set of node
// kinds. Every node embeds Meta with its original source span; synthesized
// nodes carry the zero span. Rewrites never mutate nodes in place: passes
// return a new tree that shares every untouched subtree with its input, and
// each rebuilt node along the edited spine is marked dirty so the printer
// knows where original bytes stop being authoritative.
//
// Constructs outside the subset (try, switch, lambdas, ...) parse into Raw
// nodes that keep their spans but expose no structure; passes skip them and
// the printer emits them verbatim.
package ast
