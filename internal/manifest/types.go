package manifest

// Manifest is the parsed external manifest.
type Manifest struct {
	Name     string
	Literals []Literal
	Aliases  []Alias
	Pool     Pool
}

// Literal is a DICTIONARY entry with a fixed offset.
type Literal struct {
	Name   string
	Offset uint32
	Line   int
}

// Alias is a DL_ DICTIONARY entry: Name is defined by whichever trailer
// display list is called Key, or is resolved by the bank when no such
// display list exists.
type Alias struct {
	Name string
	Key  string
	Line int
}

// Pool is the OBJECT POOL section.
type Pool struct {
	Base   uint32 // zobj offset the alias table is written to
	Size   uint32 // byte budget for the alias table
	Line   int
	Groups []Group
}

// Group is one labelled run of calls.
type Group struct {
	Label string
	Line  int
	Calls []Call
}

// Call is one instruction call as written, whitespace removed.
type Call struct {
	Text string
	Line int
}
