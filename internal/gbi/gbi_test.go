package gbi

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"reflect"
	"testing"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/symtab"
)

func testDict() *symtab.Dictionary {
	d := symtab.New()
	d.Set("DL_SWORD", symtab.Resolved(0x1230))
	d.Set("DL_BANK", symtab.External)
	d.Set("MATRIX_HAND", symtab.Resolved(0x5008))
	d.Set("ZERO", symtab.Resolved(0))
	d.Set(symtab.Placeholder, symtab.Resolved(0x7F8))
	return d
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		in      string
		want    Call
		wantErr bool
	}{
		{"CallList(DL_SWORD)", Call{"CallList", []string{"DL_SWORD"}}, false},
		{"Matrix(0, 0,0 ,1,2,3,1,1,1)", Call{"Matrix", []string{"0", "0", "0", "1", "2", "3", "1", "1", "1"}}, false},
		{"PopMatrix()", Call{"PopMatrix", []string{""}}, false},
		{"CallList DL_SWORD", Call{}, true},
		{"CallList(DL_SWORD", Call{}, true},
		{"CallList)DL_SWORD(", Call{}, true},
		{"CallList(A)B", Call{}, true},
	}
	for _, tc := range tests {
		got, err := ParseCall(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCall(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			if !errs.Is(err, errs.Syntax) {
				t.Errorf("ParseCall(%q) kind = %v; want Syntax", tc.in, errs.KindOf(err))
			}
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseCall(%q) = %+v; want %+v", tc.in, got, tc.want)
		}
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		call string
		want string
	}{
		{"CallList(DL_SWORD)", "DE00000006001230"},
		{"CallList(DL_BANK)", "DE000000060007F8"},
		{"CallList(ZERO)", "DE00000006000000"},
		{"CallMatrix(MATRIX_HAND)", "DA38000006005008"},
		{"PopMatrix(2)", "D838000200000080"},
		{"PopMatrix(1)", "D838000200000040"},
		{"HexString(E700000000000000)", "E700000000000000"},
		{"HexString(DF00)", "DF00"},
	}
	d := testDict()
	for _, tc := range tests {
		c, err := ParseCall(tc.call)
		if err != nil {
			t.Fatalf("ParseCall(%q): %v", tc.call, err)
		}
		got, err := Compile(c, d)
		if err != nil {
			t.Errorf("Compile(%s): %v", tc.call, err)
			continue
		}
		if !bytes.Equal(got, mustHex(tc.want)) {
			t.Errorf("Compile(%s) = %X; want %s", tc.call, got, tc.want)
		}
	}
}

func TestCompileMatrix(t *testing.T) {
	c, _ := ParseCall("Matrix(0,0,0,1,2,3,1,1,1)")
	got, err := Compile(c, testDict())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(got) != 64 {
		t.Fatalf("len = %d; want 64", len(got))
	}
	want := []uint32{
		0x00010000, 0, 0x00000001, 0, 0, 0x00010000, 0x00010002, 0x00030001,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	for i, w := range want {
		if g := binary.BigEndian.Uint32(got[i*4:]); g != w {
			t.Errorf("word %d = %#08x; want %#08x", i, g, w)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		call string
		kind errs.Kind
	}{
		{"CallList(NOPE)", errs.Unresolved},
		{"CallMatrix(NOPE)", errs.Unresolved},
		{"CallMatrix(DL_BANK)", errs.Argument},
		{"CallList(A,B)", errs.Argument},
		{"PopMatrix(two)", errs.Argument},
		{"PopMatrix(-1)", errs.Argument},
		{"Matrix(0,0,0,1,2,3,1,1)", errs.Argument},
		{"Matrix(0,0,0,1,2,x,1,1,1)", errs.Argument},
		{"HexString(XYZ)", errs.Argument},
		{"HexString(ABC)", errs.Argument},
		{"Jump(DL_SWORD)", errs.UnknownOpcode},
	}
	d := testDict()
	for _, tc := range tests {
		c, err := ParseCall(tc.call)
		if err != nil {
			t.Fatalf("ParseCall(%q): %v", tc.call, err)
		}
		if _, err := Compile(c, d); !errs.Is(err, tc.kind) {
			t.Errorf("Compile(%s) err = %v; want kind %v", tc.call, err, tc.kind)
		}
	}

	c, _ := ParseCall("CallList(NOPE)")
	_, err := Compile(c, d)
	if err == nil || err.Error() != "dictionary entry not found: NOPE" {
		t.Errorf("unresolved message = %v", err)
	}
}

func TestPlaceholder(t *testing.T) {
	if !bytes.Equal(Placeholder[:], mustHex("DF00000000000000")) {
		t.Errorf("Placeholder = %X", Placeholder)
	}
}
