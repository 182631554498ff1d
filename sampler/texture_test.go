package sampler

import "testing"

func TestSampleMissingTexture(t *testing.T) {
	if got := Sample(nil, 0.5, 0.5); got != missingColor {
		t.Fatalf("expected missing color, got %#x", got)
	}
	empty := &Texture{}
	if got := Sample(empty, 0.5, 0.5); got != missingColor {
		t.Fatalf("expected missing color for empty texture, got %#x", got)
	}
}

func TestSampleNearestSingleTexel(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.Filter = false
	tex.Pixels[0] = 0x11223344
	if got := Sample(tex, 0.9, 0.1); got != 0x11223344 {
		t.Fatalf("got %#x", got)
	}
}

func TestSampleBilinearMidpoint(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.Filter = true
	tex.WrapS, tex.WrapT = false, false
	tex.Pixels[0] = Pack(0, 0, 0, 1)
	tex.Pixels[1] = Pack(1, 1, 1, 1)

	got := Sample(tex, 0.5, 0.0)
	r, g, b, a := Unpack(got)
	if r < 0.49 || r > 0.51 || g < 0.49 || g > 0.51 || b < 0.49 || b > 0.51 {
		t.Fatalf("expected ~0.5 midpoint, got r=%v g=%v b=%v a=%v", r, g, b, a)
	}
}

func TestAddressWrapClamp(t *testing.T) {
	if got := address(1.25, true); got < 0.24 || got > 0.26 {
		t.Fatalf("wrap: expected ~0.25, got %v", got)
	}
	if got := address(1.25, false); got != 1.0 {
		t.Fatalf("clamp: expected 1.0, got %v", got)
	}
	if got := address(-0.5, false); got != 0.0 {
		t.Fatalf("clamp negative: expected 0.0, got %v", got)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	packed := Pack(0.2, 0.4, 0.6, 0.8)
	r, g, b, a := Unpack(packed)
	tol := float32(0.01)
	check := func(name string, got, want float32) {
		if got < want-tol || got > want+tol {
			t.Errorf("%s: got %v want ~%v", name, got, want)
		}
	}
	check("r", r, 0.2)
	check("g", g, 0.4)
	check("b", b, 0.6)
	check("a", a, 0.8)
}
