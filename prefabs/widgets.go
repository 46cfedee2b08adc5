package prefabs

// WidgetsSpec configures the HUD layout. One widgets.yaml ships embedded;
// a disk copy under prefabs/ overrides it during development.
type WidgetsSpec struct {
	Joystick JoystickSpec `yaml:"joystick"`
	Clock    ClockSpec    `yaml:"clock"`
	XPBar    XPBarSpec    `yaml:"xp_bar"`
	Rewards  RewardsSpec  `yaml:"rewards"`
}

type JoystickSpec struct {
	Radius     float64 `yaml:"radius"`
	KnobRadius float64 `yaml:"knob_radius"`
	Deadzone   float64 `yaml:"deadzone"`
}

type ClockSpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Countdown bool    `yaml:"countdown"`
	Duration  float64 `yaml:"duration"`
}

type XPBarSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RewardSpec struct {
	Day    int    `yaml:"day"`
	Item   string `yaml:"item"`
	Amount int    `yaml:"amount"`
}

type RewardsSpec struct {
	Cycle []RewardSpec `yaml:"cycle"`
}

func LoadWidgetsSpec() (WidgetsSpec, error) {
	return LoadSpec[WidgetsSpec]("widgets.yaml")
}
