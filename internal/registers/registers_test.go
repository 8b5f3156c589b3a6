package registers

import (
	"testing"
)

func TestLookup_KnownKey(t *testing.T) {
	def, err := Lookup(Gen1, KeySupplyTemp)
	if err != nil {
		t.Fatalf("Lookup() err=%v", err)
	}
	if def.Address() != 1023 {
		t.Fatalf("supply temp address=%d, want 1023", def.Address())
	}
	if !def.Signed || def.Scale != 10 {
		t.Fatalf("supply temp signed=%v scale=%d, want signed /10", def.Signed, def.Scale)
	}
}

func TestLookup_UnknownKey(t *testing.T) {
	_, err := Lookup(Gen1, "no_such_register")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if got := ForGeneration(Gen1); got.Len() == 0 {
		t.Fatal("gen1 table empty")
	}
}

func TestKeys_StableOrderAndCopy(t *testing.T) {
	table := ForGeneration(Gen1)
	a := table.Keys()
	b := table.Keys()
	if len(a) != len(b) || len(a) != table.Len() {
		t.Fatalf("key count mismatch: %d vs %d vs %d", len(a), len(b), table.Len())
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("iteration order not deterministic at %d: %q vs %q", i, a[i], b[i])
		}
	}
	a[0] = "mutated"
	if table.Keys()[0] == "mutated" {
		t.Fatal("Keys() must return a copy")
	}
}

func TestGenerationDeltas(t *testing.T) {
	v1Heater, err := Lookup(Gen1, KeyHeaterType)
	if err != nil {
		t.Fatalf("gen1 heater: %v", err)
	}
	v2Heater, err := Lookup(Gen2, KeyHeaterType)
	if err != nil {
		t.Fatalf("gen2 heater: %v", err)
	}
	if v1Heater.Address() != 1240 || v2Heater.Address() != 1127 {
		t.Fatalf("heater addresses=%d/%d, want 1240/1127", v1Heater.Address(), v2Heater.Address())
	}

	v1State, _ := Lookup(Gen1, KeyControlState)
	v2State, _ := Lookup(Gen2, KeyControlState)
	if v1State.Address() != 1185 || v2State.Address() != 1181 {
		t.Fatalf("control state addresses=%d/%d, want 1185/1181", v1State.Address(), v2State.Address())
	}

	// The per-state flags exist only on 1.xx; 2.xx derives them.
	if _, err := Lookup(Gen2, KeyHomeState); err == nil {
		t.Fatal("gen2 must not define home_state as a register")
	}
}

func TestForGeneration_UnknownFallsBack(t *testing.T) {
	table := ForGeneration(Generation("9.x"))
	if table.Generation() != DefaultGeneration {
		t.Fatalf("fallback generation=%s, want %s", table.Generation(), DefaultGeneration)
	}
}

func TestGenerationForVersion(t *testing.T) {
	cases := []struct {
		version float64
		want    Generation
	}{
		{0, Gen1},
		{1.87, Gen1},
		{1.99, Gen1},
		{2.0, Gen2},
		{2.15, Gen2},
	}
	for _, tc := range cases {
		if got := GenerationForVersion(tc.version); got != tc.want {
			t.Fatalf("GenerationForVersion(%v)=%s, want %s", tc.version, got, tc.want)
		}
	}
}

func TestHeaterTypeForGeneration_ReversedEncoding(t *testing.T) {
	if got := HeaterTypeForGeneration(Gen1, 0); got != HeaterWater {
		t.Fatalf("gen1 raw 0 = %s, want water", got)
	}
	if got := HeaterTypeForGeneration(Gen2, 0); got != HeaterElectric {
		t.Fatalf("gen2 raw 0 = %s, want electric", got)
	}
	if got := HeaterTypeForGeneration(Gen1, 1); got != HeaterElectric {
		t.Fatalf("gen1 raw 1 = %s, want electric", got)
	}
	if got := HeaterTypeForGeneration(Gen2, 1); got != HeaterWater {
		t.Fatalf("gen2 raw 1 = %s, want water", got)
	}
	for _, gen := range []Generation{Gen1, Gen2} {
		if got := HeaterTypeForGeneration(gen, 2); got != HeaterNone {
			t.Fatalf("%s raw 2 = %s, want none", gen, got)
		}
		if got := HeaterTypeForGeneration(gen, 99); got != HeaterUnknown {
			t.Fatalf("%s raw 99 = %s, want unknown", gen, got)
		}
	}
}

func TestModelForHardwareType(t *testing.T) {
	if got := ModelForHardwareType(Gen1, 1); got != "MAC 80" {
		t.Fatalf("gen1 code 1 = %q", got)
	}
	if got := ModelForHardwareType(Gen2, 150); got != "MAC 150" {
		t.Fatalf("gen2 size 150 = %q", got)
	}
	if got := ModelForHardwareType(Gen1, 7); got != "MAC" {
		t.Fatalf("gen1 bogus code = %q, want bare MAC", got)
	}
}
