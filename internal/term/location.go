package term

// Location is a source span attached to a term id via a side table (§3
// invariant 7). The checker is agnostic to the AST/lexer that produced it;
// it only needs enough to key error reports by term id.
type Location struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}
