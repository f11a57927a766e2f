package environment

import "testing"

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		expected Environment
	}{
		{"earth", Earth()},
		{"Earth (9.81 m/s²)", Earth()},
		{"MOON", Moon()},
		{"Moon (1.62 m/s²)", Moon()},
		{"mars", Mars()},
		{"planet mars", Mars()},
		{"Jupiter", Jupiter()},
		{"pluto", Earth()},
		{"", Earth()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.name); got != tt.expected {
				t.Errorf("Select(%q) = %+v, want %+v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestSelect_FirstMatchWins(t *testing.T) {
	if got := Select("moon of earth"); got != Earth() {
		t.Errorf("expected earth to win, got %s", got.Name)
	}
}

func TestPresetValues(t *testing.T) {
	for _, env := range Planets() {
		if env.Gravity <= 0 {
			t.Errorf("%s: gravity must be positive", env.Name)
		}
		if env.AirDensity < 0 {
			t.Errorf("%s: air density must be non-negative", env.Name)
		}
		if env.DragCoefficient != 0.47 {
			t.Errorf("%s: drag coefficient %v", env.Name, env.DragCoefficient)
		}
	}
}

func TestHasAtmosphere(t *testing.T) {
	if !Earth().HasAtmosphere() || !Mars().HasAtmosphere() || !Jupiter().HasAtmosphere() {
		t.Error("expected earth, mars and jupiter to have an atmosphere")
	}
	if Moon().HasAtmosphere() {
		t.Error("moon should have no atmosphere")
	}
}

func TestSelect_ReturnsIndependentValue(t *testing.T) {
	env := Select("earth")
	env.Gravity = 0
	if Select("earth").Gravity != 9.81 {
		t.Error("mutating a selected value leaked into the preset")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"Earth", "Moon", "Mars", "Jupiter"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestPresets_CannotBeModified(t *testing.T) {
	e := Earth()
	e.Gravity = 0
	planets := Planets()
	planets[2].AirDensity = 99

	if Earth().Gravity != 9.81 || Select("earth").Gravity != 9.81 {
		t.Error("changing a returned preset altered earth")
	}
	if Mars().AirDensity != 0.02 {
		t.Error("changing the planet list altered mars")
	}
}
