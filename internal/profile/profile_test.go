package profile

import (
	"slices"
	"testing"
)

func TestSettingTicks(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		value   float64
		want    int
	}{
		{name: "positive delta", setting: "grip_front", value: 5, want: 5},
		{name: "negative delta", setting: "load_rear", value: -7, want: -7},
		{name: "zero delta", setting: "brake_power", value: 0, want: 0},
		{name: "camber hundredths", setting: "camber_front", value: 0.05, want: 5},
		{name: "camber negative", setting: "camber_rear", value: -0.03, want: -3},
		{name: "rounds down below half", setting: "camber_front", value: 0.024, want: 2},
		{name: "rounds up above half", setting: "camber_front", value: 0.026, want: 3},
		{name: "absolute below start presses right", setting: "front_power_distrib", value: 48, want: 12},
		{name: "absolute above start presses left", setting: "front_brake_balance", value: 90, want: -10},
		{name: "absolute at start", setting: "front_power_distrib", value: 60, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSetting(tt.setting, tt.value)
			if err != nil {
				t.Fatalf("NewSetting(%q) error: %v", tt.setting, err)
			}
			if got := s.Ticks(); got != tt.want {
				t.Errorf("Ticks() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSettingUnknown(t *testing.T) {
	if _, err := NewSetting("turbo_boost", 1); err == nil {
		t.Error("NewSetting(unknown) expected error")
	}
}

func TestNewProfileMenuOrderAndSkipped(t *testing.T) {
	p := New(map[string]float64{
		"grip_front":  3,
		"final_drive": 1,
		"camber_rear": -0.02,
	})

	got := make([]string, 0, len(p.Settings))
	for _, s := range p.Settings {
		got = append(got, s.Name)
	}
	want := []string{"final_drive", "grip_front", "camber_rear"}
	if !slices.Equal(got, want) {
		t.Errorf("settings order = %v, want %v", got, want)
	}

	if len(p.Skipped) != len(MenuOrder)-3 {
		t.Errorf("skipped = %d settings, want %d", len(p.Skipped), len(MenuOrder)-3)
	}
	if !slices.Contains(p.Skipped, "spring_front") {
		t.Error("spring_front should be skipped")
	}

	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestProfileDrop(t *testing.T) {
	p := New(map[string]float64{
		"final_drive": 1,
		"grip_front":  3,
	})
	p.Drop("final_drive", "no_such_setting")

	if len(p.Settings) != 1 || p.Settings[0].Name != "grip_front" {
		t.Errorf("after Drop, settings = %v", p.Settings)
	}
	if !slices.Contains(p.Skipped, "final_drive") {
		t.Error("dropped setting should be recorded as skipped")
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{
			name:    "empty",
			profile: Profile{},
			wantErr: true,
		},
		{
			name: "unknown setting",
			profile: Profile{Settings: []Setting{
				{Name: "nitro", Value: 1, Increment: 1},
			}},
			wantErr: true,
		},
		{
			name: "out of menu order",
			profile: Profile{Settings: []Setting{
				{Name: "grip_front", Value: 1, Increment: 1},
				{Name: "final_drive", Value: 1, Increment: 1},
			}},
			wantErr: true,
		},
		{
			name: "zero increment",
			profile: Profile{Settings: []Setting{
				{Name: "final_drive", Value: 1, Increment: 0},
			}},
			wantErr: true,
		},
		{
			name: "wrong absolute flag",
			profile: Profile{Settings: []Setting{
				{Name: "front_power_distrib", Value: 50, Increment: 1, Absolute: false},
			}},
			wantErr: true,
		},
		{
			name: "valid",
			profile: Profile{Settings: []Setting{
				{Name: "final_drive", Value: 1, Increment: 1},
				{Name: "front_power_distrib", Value: 50, Increment: 1, Absolute: true},
				{Name: "camber_front", Value: 0.02, Increment: 0.01},
			}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRangeFor(t *testing.T) {
	if r := RangeFor("front_power_distrib"); r.Min != 0 || r.Max != 100 {
		t.Errorf("front_power_distrib range = %+v", r)
	}
	if r := RangeFor("grip_front"); r != defaultRange {
		t.Errorf("grip_front range = %+v, want default", r)
	}
}

func TestCar(t *testing.T) {
	p := &Profile{Category: "RACING", Manufacturer: "BMW", Model: "BMW M3"}
	if got := p.Car(); got != "RACING / BMW / BMW M3" {
		t.Errorf("Car() = %q", got)
	}
	if got := (&Profile{}).Car(); got != "(unnamed)" {
		t.Errorf("Car() on empty profile = %q", got)
	}
}
