package domain

import "testing"

func TestParseTransportMode(t *testing.T) {
	cases := []struct {
		in      string
		want    TransportMode
		wantErr bool
	}{
		{"", ModeDriving, false},
		{"driving", ModeDriving, false},
		{"cycling", ModeCycling, false},
		{"walking", ModeWalking, false},
		{"bus", ModeBus, false},
		{"teleport", "", true},
	}

	for _, c := range cases {
		got, err := ParseTransportMode(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTransportMode(%q): want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTransportMode(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTransportMode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTransportModeProfile(t *testing.T) {
	cases := []struct {
		mode TransportMode
		want string
	}{
		{ModeDriving, "driving"},
		{ModeCycling, "cycling"},
		{ModeWalking, "foot"},
		// Bus rides the driving profile; the slowdown is applied to
		// durations afterwards.
		{ModeBus, "driving"},
	}

	for _, c := range cases {
		if got := c.mode.Profile(); got != c.want {
			t.Errorf("%q.Profile() = %q, want %q", c.mode, got, c.want)
		}
	}
}

func TestTransportModeDurationFactor(t *testing.T) {
	if got := ModeBus.DurationFactor(); got != 1.2 {
		t.Errorf("bus factor = %v, want 1.2", got)
	}
	for _, mode := range []TransportMode{ModeDriving, ModeCycling, ModeWalking} {
		if got := mode.DurationFactor(); got != 1.0 {
			t.Errorf("%q factor = %v, want 1.0", mode, got)
		}
	}
}

func TestParseObjective(t *testing.T) {
	cases := []struct {
		in      string
		want    Objective
		wantErr bool
	}{
		{"", OptimizeTime, false},
		{"time", OptimizeTime, false},
		{"distance", OptimizeDistance, false},
		{"beauty", "", true},
	}

	for _, c := range cases {
		got, err := ParseObjective(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseObjective(%q): want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseObjective(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseObjective(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
