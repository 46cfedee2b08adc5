package prefabs

import "testing"

func TestLoadGraph(t *testing.T) {
	cases := []struct {
		name        string
		file        string
		wantInitial string
		wantStates  int
		wantScript  bool
	}{
		{"ghoul", "ghoul.yaml", "idle", 3, false},
		{"wisp_scripted", "wisp.yaml", "drift", 3, true},
		{"path_prefix_tolerated", "prefabs/graphs/ghoul.yaml", "idle", 3, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := LoadGraph(c.file)
			if err != nil {
				t.Fatalf("LoadGraph(%s): %v", c.file, err)
			}
			if spec.Graph.Initial != c.wantInitial {
				t.Fatalf("initial = %q, want %q", spec.Graph.Initial, c.wantInitial)
			}
			if len(spec.Graph.States) != c.wantStates {
				t.Fatalf("states = %d, want %d", len(spec.Graph.States), c.wantStates)
			}
			if (spec.Script != "") != c.wantScript {
				t.Fatalf("script = %q, want script=%v", spec.Script, c.wantScript)
			}
		})
	}

	if _, err := LoadGraph("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing graph")
	}
}

func TestLoadWidgetsSpec(t *testing.T) {
	spec, err := LoadWidgetsSpec()
	if err != nil {
		t.Fatalf("LoadWidgetsSpec: %v", err)
	}
	if spec.Joystick.Radius <= spec.Joystick.KnobRadius {
		t.Fatalf("joystick radius %v should exceed knob radius %v", spec.Joystick.Radius, spec.Joystick.KnobRadius)
	}
	if len(spec.Rewards.Cycle) != 7 {
		t.Fatalf("reward cycle has %d days, want 7", len(spec.Rewards.Cycle))
	}
	for i, r := range spec.Rewards.Cycle {
		if r.Day != i+1 {
			t.Fatalf("reward %d has day %d", i, r.Day)
		}
	}
}

func TestLoadScript(t *testing.T) {
	data, err := LoadScript("wisp.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("script is empty")
	}
	if _, err := LoadScript("scripts/wisp.tengo"); err != nil {
		t.Fatalf("prefixed script path: %v", err)
	}
}
