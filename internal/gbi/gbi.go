// Package gbi compiles manifest instruction calls into F3DZEX2 display
// list commands.
package gbi

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/mathutil"
	"zobj-alias-compiler/internal/symtab"
	"zobj-alias-compiler/internal/zobj"
)

// Command opcodes.
const (
	OpDL      = 0xDE
	OpMtx     = 0xDA
	OpPopMtx  = 0xD8
	OpEndDL   = 0xDF
	mtxParams = 0x38 // push, load, modelview
)

// InstrSize is the length of one display list command.
const InstrSize = 8

// segmentBase tags an offset as an address in segment 6.
const segmentBase = zobj.SegmentTag << 24

// Function names understood by Compile.
const (
	FnCallList   = "CallList"
	FnCallMatrix = "CallMatrix"
	FnPopMatrix  = "PopMatrix"
	FnMatrix     = "Matrix"
	FnHexString  = "HexString"
)

// Placeholder is the end-display-list command appended to every zobj for
// bank objects to point at.
var Placeholder = [InstrSize]byte{OpEndDL}

// Call is a parsed `Name(arg, ...)` expression.
type Call struct {
	Name string
	Args []string
}

// ParseCall splits s into a function name and its comma-separated
// arguments. An empty argument list yields one empty argument.
func ParseCall(s string) (Call, error) {
	open := strings.IndexByte(s, '(')
	end := strings.IndexByte(s, ')')
	if open == -1 || end == -1 || end < open || end != len(s)-1 {
		return Call{}, errs.New(errs.Syntax, "error parsing arguments in %q (parentheses invalid)", s)
	}
	args := strings.Split(s[open+1:end], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return Call{Name: strings.TrimSpace(s[:open]), Args: args}, nil
}

// Compile encodes one call. Names are resolved against d.
func Compile(c Call, d *symtab.Dictionary) ([]byte, error) {
	switch c.Name {
	case FnCallList:
		if err := arity(c, 1); err != nil {
			return nil, err
		}
		off, err := d.Resolve(c.Args[0])
		if err != nil {
			return nil, err
		}
		return segmented(OpDL, 0, off), nil

	case FnCallMatrix:
		if err := arity(c, 1); err != nil {
			return nil, err
		}
		v, ok := d.Lookup(c.Args[0])
		if !ok {
			return nil, &errs.Error{Kind: errs.Unresolved, Symbol: c.Args[0], Msg: "dictionary entry not found: " + c.Args[0]}
		}
		off, ok := v.Offset()
		if !ok {
			return nil, &errs.Error{Kind: errs.Argument, Symbol: c.Args[0], Msg: "matrix " + c.Args[0] + " is resolved by the bank"}
		}
		return segmented(OpMtx, mtxParams, off), nil

	case FnPopMatrix:
		if err := arity(c, 1); err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(c.Args[0], 10, 32)
		if err != nil || n > 0xFFFFFFFF/mathutil.MatrixSize {
			return nil, invalidArg(c, err)
		}
		buf := []byte{OpPopMtx, 0x38, 0x00, 0x02, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(buf[4:], uint32(n)*mathutil.MatrixSize)
		return buf, nil

	case FnMatrix:
		if err := arity(c, 9); err != nil {
			return nil, err
		}
		var f [9]float64
		for i, a := range c.Args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, invalidArg(c, err)
			}
			f[i] = v
		}
		m := mathutil.RTS(f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[8]).FixedPoint()
		return m[:], nil

	case FnHexString:
		if err := arity(c, 1); err != nil {
			return nil, err
		}
		buf, err := hex.DecodeString(c.Args[0])
		if err != nil {
			return nil, &errs.Error{Kind: errs.Argument, Msg: "invalid hex string: " + c.Args[0], Err: err}
		}
		return buf, nil
	}
	return nil, errs.New(errs.UnknownOpcode, "unknown function name '%s'", c.Name)
}

// segmented encodes an 8-byte command whose second word is a segment 6
// address.
func segmented(op, param byte, off uint32) []byte {
	buf := []byte{op, param, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[4:], segmentBase+off)
	return buf
}

func arity(c Call, n int) error {
	if len(c.Args) != n {
		return errs.New(errs.Argument, "invalid number of arguments for %s: got %d, want %d", c.Name, len(c.Args), n)
	}
	return nil
}

func invalidArg(c Call, err error) error {
	return &errs.Error{Kind: errs.Argument, Msg: "invalid argument to " + c.Name, Err: err}
}
