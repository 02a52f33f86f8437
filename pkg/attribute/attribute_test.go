package attribute

import "testing"

func TestDeriveAppliesPublishedWeights(t *testing.T) {
	p := Primary{Strength: 10, Agility: 10, Intelligence: 10}
	sec := Derive(p, Base{})

	if sec.AttackPower != 5 {
		t.Errorf("AttackPower = %v, want 5 (0.5*10)", sec.AttackPower)
	}
	if sec.Vitality != 5 {
		t.Errorf("Vitality = %v, want 5", sec.Vitality)
	}
	if sec.Defense != 5 {
		t.Errorf("Defense = %v, want 5", sec.Defense)
	}
	if sec.CritRate != 2 {
		t.Errorf("CritRate = %v, want 2 (0.2*10)", sec.CritRate)
	}
	if sec.Endurance != 10 {
		t.Errorf("Endurance = %v, want 10 (1.0*10)", sec.Endurance)
	}
	if sec.SpellPower != 5 {
		t.Errorf("SpellPower = %v, want 5", sec.SpellPower)
	}
}

func TestDeriveAddsBase(t *testing.T) {
	p := Primary{Strength: 4}
	base := Base{AttackPower: 100}
	sec := Derive(p, base)
	if sec.AttackPower != 102 {
		t.Errorf("AttackPower = %v, want 102", sec.AttackPower)
	}
}

func TestMaxHealthIncludesVitalityContribution(t *testing.T) {
	got := MaxHealth(50, 10)
	want := 50 + 10*int(HealthPerVitality)
	if got != want {
		t.Errorf("MaxHealth = %v, want %v", got, want)
	}
}

func TestMaxManaIncludesWisdomContribution(t *testing.T) {
	got := MaxMana(20, 5)
	want := 20 + 5*int(ManaPerWisdom)
	if got != want {
		t.Errorf("MaxMana = %v, want %v", got, want)
	}
}

func TestRoundForDisplayHalfEven(t *testing.T) {
	cases := map[float64]int{
		2.125: 2, // rounds to 2.12 (2 is even), floors to 2
		2.135: 2, // stored just below the tie, rounds to 2.13, floors to 2
		1.249: 1, // rounds to 1.25, floors to 1
		3.999: 4, // rounds to 4.00, floors to 4
	}
	for in, want := range cases {
		if got := RoundForDisplay(in); got != want {
			t.Errorf("RoundForDisplay(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestClampBounds(t *testing.T) {
	if Clamp(-5, 100) != 0 {
		t.Error("expected negative clamp to 0")
	}
	if Clamp(150, 100) != 100 {
		t.Error("expected overflow clamp to max")
	}
	if Clamp(50, 100) != 50 {
		t.Error("expected in-range value unchanged")
	}
}

func TestPrimaryAddAndScale(t *testing.T) {
	a := Primary{Strength: 1, Agility: 2, Intelligence: 3}
	b := Primary{Strength: 10, Agility: 10, Intelligence: 10}
	sum := a.Add(b)
	if sum != (Primary{Strength: 11, Agility: 12, Intelligence: 13}) {
		t.Errorf("Add = %+v", sum)
	}
	scaled := a.Scale(5)
	if scaled != (Primary{Strength: 5, Agility: 10, Intelligence: 15}) {
		t.Errorf("Scale = %+v", scaled)
	}
}
