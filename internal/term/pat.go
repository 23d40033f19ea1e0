package term

// Pat is the tagged variant of pattern forms (§3). Like Term, concrete
// pattern kinds implement it through an unexported marker method.
type Pat interface {
	patNode()
}

// Visibility controls whether a bound name escapes the enclosing module.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// BindingPat binds the matched value to a name.
type BindingPat struct {
	Name Ident
	Mut  bool
	Vis  Visibility
}

func (*BindingPat) patNode() {}

// AccessPat matches a property of the subject pattern's match.
type AccessPat struct {
	Subject  PatId
	Property Ident
}

func (*AccessPat) patNode() {}

// PatArg is one pattern argument: an optional name and the sub-pattern it
// binds. pairing.Pair takes call Args only and does not pair these.
type PatArg struct {
	Name  *Ident
	Value PatId
}

func (a PatArg) GetNameOpt() *Ident { return a.Name }

type PatArgs = ParamList[PatArg]

// ConstructorPat matches a nominal constructor applied to pattern args.
type ConstructorPat struct {
	Subject TermId
	Args    PatArgsId
}

func (*ConstructorPat) patNode() {}

// ListPat matches a list value against an inner element pattern.
type ListPat struct {
	Term  TermId
	Inner PatId
}

func (*ListPat) patNode() {}

// TuplePat matches a tuple value field-by-field.
type TuplePat struct {
	Args PatArgsId
}

func (*TuplePat) patNode() {}

// ModPat matches a module's members.
type ModPat struct {
	Members PatArgsId
}

func (*ModPat) patNode() {}

// ConstPat matches against a known constant term (value equality).
type ConstPat struct {
	Term TermId
}

func (*ConstPat) patNode() {}

// LitPat matches a literal value.
type LitPat struct {
	Term TermId
}

func (*LitPat) patNode() {}

// OrPat matches if any alternative matches; every alternative must bind the
// same set of names exactly once (§4.9 IdentifierBoundMultipleTimes /
// MissingPatternBounds).
type OrPat struct {
	Alternatives []PatId
}

func (*OrPat) patNode() {}

// IfPat matches the inner pattern and additionally requires a guard
// condition to hold.
type IfPat struct {
	Pat       PatId
	Condition TermId
}

func (*IfPat) patNode() {}

// IgnorePat matches anything and binds nothing.
type IgnorePat struct{}

func (*IgnorePat) patNode() {}

// SpreadPat matches the remainder of a list/tuple/struct pattern.
type SpreadPat struct {
	Name *Ident
}

func (*SpreadPat) patNode() {}
