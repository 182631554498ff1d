package isa

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name                        string
		op                          Opcode
		rd, rs1, rs2, pred, rs3     uint8
		imm                         int32
	}{
		{"zero", OpNop, 0, 0, 0, 0, 0, 0},
		{"positive imm", OpAdd, 3, 1, 2, 0, 0, 1234},
		{"negative imm", OpAdd, 3, 1, 0, 0, 0, -5},
		{"predicate set", OpMov, 5, 1, 0, 7, 0, 0},
		{"rs3 set", OpImad, 4, 1, 2, 0, 9, 0},
		{"max fields", OpSelp, 255, 255, 255, 0xF, 255, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := Encode(c.op, c.rd, c.rs1, c.rs2, c.pred, c.rs3, c.imm)
			if got := w.Opcode(); got != c.op {
				t.Errorf("opcode: got %#x want %#x", got, c.op)
			}
			if got := w.Rd(); got != c.rd {
				t.Errorf("rd: got %d want %d", got, c.rd)
			}
			if got := w.Rs1(); got != c.rs1 {
				t.Errorf("rs1: got %d want %d", got, c.rs1)
			}
			if got := w.Rs2(); got != c.rs2 {
				t.Errorf("rs2: got %d want %d", got, c.rs2)
			}
			if got := w.Pred(); got != c.pred&0xF {
				t.Errorf("pred: got %d want %d", got, c.pred&0xF)
			}
			if got := w.Rs3(); got != c.rs3 {
				t.Errorf("rs3: got %d want %d", got, c.rs3)
			}
			if got := w.Imm(); got != c.imm {
				t.Errorf("imm: got %d want %d", got, c.imm)
			}
		})
	}
}

func TestImmSignExtension(t *testing.T) {
	w := Encode(OpAdd, 0, 0, 0, 0, 0, -1)
	if w.Imm() != -1 {
		t.Fatalf("expected -1, got %d", w.Imm())
	}
	// 0x7FFFF is the largest positive 20-bit value; 0x80000 is the
	// smallest negative one.
	w = Encode(OpAdd, 0, 0, 0, 0, 0, 0x7FFFF)
	if w.Imm() != 0x7FFFF {
		t.Fatalf("expected 0x7FFFF, got %#x", w.Imm())
	}
}

func TestPredicateNibbleFixedPosition(t *testing.T) {
	// The predicate guard always lands at bits 31..28 regardless of
	// whether the instruction uses rs3.
	a := Encode(OpAdd, 1, 2, 3, 9, 0, 0)
	b := Encode(OpSelp, 1, 2, 3, 9, 4, 0)
	if a.Pred() != 9 || b.Pred() != 9 {
		t.Fatalf("predicate field moved: a=%d b=%d", a.Pred(), b.Pred())
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("ADD")
	if !ok || e.Opcode != OpAdd || e.NumArgs != 3 {
		t.Fatalf("unexpected lookup result: %+v ok=%v", e, ok)
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Fatal("expected lookup miss")
	}
	addi, ok := Lookup("addi")
	if !ok || addi.Opcode != OpAdd || addi.Form != "rri" {
		t.Fatalf("addi should alias add with rri form, got %+v", addi)
	}
}
