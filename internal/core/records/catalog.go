package records

import "github.com/custodia-labs/travelog/internal/core/domain"

// Environment is an ambient sample taken alongside a position.
type Environment struct {
	Base

	Temperature *float64 `json:"temperature,omitempty"`
	Gradient    *float64 `json:"gradient,omitempty"`
}

func (e *Environment) Kind() Kind                    { return KindEnvironment }
func (e *Environment) SetData(fields map[string]any) { assign(e, fields) }
func (e *Environment) Clean()                        { e.clean(e.validate) }
func (e *Environment) IsValid() bool                 { return e.check(e.validate) }
func (e *Environment) Fields() map[string]any        { return render(e) }

// validate rejects implausible air temperatures, in degrees Celsius.
// Devices without a temperature sensor report none.
func (e *Environment) validate() {
	if e.Temperature == nil {
		return
	}
	if t := *e.Temperature; t <= -100 || t >= 100 {
		e.addFinding(domain.FindingRange, "temperature", "temperature %v is out of range", t)
	}
}

// Physiological is a body or effort sample.
type Physiological struct {
	Base

	HeartRate *float64 `json:"heart_rate,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Power     *float64 `json:"power,omitempty"`
}

func (p *Physiological) Kind() Kind                    { return KindPhysiological }
func (p *Physiological) SetData(fields map[string]any) { assign(p, fields) }
func (p *Physiological) Clean()                        { p.clean(p.validate) }
func (p *Physiological) IsValid() bool                 { return p.check(p.validate) }
func (p *Physiological) Fields() map[string]any        { return render(p) }

// validate requires at least one measurement and rejects impossible ones.
func (p *Physiological) validate() {
	if p.HeartRate == nil && p.Speed == nil && p.Power == nil {
		p.addFinding(domain.FindingMissing, "", "no physiological measurement")
		return
	}
	if p.HeartRate != nil && (*p.HeartRate < 0 || *p.HeartRate > 255) {
		p.addFinding(domain.FindingRange, "heart_rate", "heart rate %v is out of range", *p.HeartRate)
	}
	if p.Speed != nil && *p.Speed < 0 {
		p.addFinding(domain.FindingRange, "speed", "speed %v is negative", *p.Speed)
	}
	if p.Power != nil && *p.Power < 0 {
		p.addFinding(domain.FindingRange, "power", "power %v is negative", *p.Power)
	}
}

// Gear types.
const (
	GearUnknown        = "unknown"
	GearPhone          = "phone"
	GearRideComputer   = "ride computer"
	GearCamera         = "camera"
	GearSportCamera    = "sport camera"
	GearUnmannedAerial = "UAV"
)

// Gear describes a recording device.
type Gear struct {
	Base

	Type         string  `json:"type,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`

	DeviceType         any `json:"device_type,omitempty"`
	SoftwareVersion    any `json:"software_version,omitempty"`
	SerialNumber       any `json:"serial_number,omitempty"`
	DeviceIndex        any `json:"device_index,omitempty"`
	GarminProduct      any `json:"garmin_product,omitempty"`
	BatteryVoltage     any `json:"battery_voltage,omitempty"`
	BatteryStatus      any `json:"battery_status,omitempty"`
	AntNetwork         any `json:"ant_network,omitempty"`
	SourceType         any `json:"source_type,omitempty"`
	CumOperatingTime   any `json:"cum_operating_time,omitempty"`
	UTCOffset          any `json:"utc_offset,omitempty"`
	TimeOffset         any `json:"time_offset,omitempty"`
	TimeMode           any `json:"time_mode,omitempty"`
	TimeZoneOffset     any `json:"time_zone_offset,omitempty"`
	BacklightMode      any `json:"backlight_mode,omitempty"`
	DisplayOrientation any `json:"display_orientation,omitempty"`
	NumberOfScreens    any `json:"number_of_screens,omitempty"`
}

func (g *Gear) Kind() Kind                    { return KindGear }
func (g *Gear) SetData(fields map[string]any) { assign(g, fields) }
func (g *Gear) Clean()                        { g.clean(g.validate) }
func (g *Gear) IsValid() bool                 { return g.check(g.validate) }
func (g *Gear) Fields() map[string]any        { return render(g) }

// validate defaults the type and requires brand, manufacturer and model,
// reporting each missing one separately.
func (g *Gear) validate() {
	if g.Type == "" {
		g.Type = GearUnknown
	}
	if g.Brand == nil {
		g.addFinding(domain.FindingMissing, "brand", "gear's brand can not be empty")
	}
	if g.Manufacturer == nil {
		g.addFinding(domain.FindingMissing, "manufacturer", "gear's manufacturer can not be empty")
	}
	if g.Model == nil {
		g.addFinding(domain.FindingMissing, "model", "gear's model can not be empty")
	}
}

// Activity summarises a session.
type Activity struct {
	Base

	StartPosition any      `json:"start_position,omitempty"`
	NECPosition   any      `json:"nec_position,omitempty"`
	SWCPosition   any      `json:"swc_position,omitempty"`
	AvgSpeed      *float64 `json:"avg_speed,omitempty"`
	MaxSpeed      *float64 `json:"max_speed,omitempty"`

	SubType                     any `json:"sub_type,omitempty"`
	StartTime                   any `json:"start_time,omitempty"`
	TotalElapsedTime            any `json:"total_elapsed_time,omitempty"`
	TotalTimerTime              any `json:"total_timer_time,omitempty"`
	TotalDistance               any `json:"total_distance,omitempty"`
	TotalCycles                 any `json:"total_cycles,omitempty"`
	TotalWork                   any `json:"total_work,omitempty"`
	TimeInHRZone                any `json:"time_in_hr_zone,omitempty"`
	TimeInPowerZone             any `json:"time_in_power_zone,omitempty"`
	TimeStanding                any `json:"time_standing,omitempty"`
	AvgLeftPowerPhase           any `json:"avg_left_power_phase,omitempty"`
	AvgLeftPowerPhasePeak       any `json:"avg_left_power_phase_peak,omitempty"`
	AvgRightPowerPhase          any `json:"avg_right_power_phase,omitempty"`
	AvgRightPowerPhasePeak      any `json:"avg_right_power_phase_peak,omitempty"`
	AvgPowerPosition            any `json:"avg_power_position,omitempty"`
	MaxPowerPosition            any `json:"max_power_position,omitempty"`
	MessageIndex                any `json:"message_index,omitempty"`
	TotalCalories               any `json:"total_calories,omitempty"`
	TotalFatCalories            any `json:"total_fat_calories,omitempty"`
	AvgPower                    any `json:"avg_power,omitempty"`
	MaxPower                    any `json:"max_power,omitempty"`
	TotalAscent                 any `json:"total_ascent,omitempty"`
	TotalDescent                any `json:"total_descent,omitempty"`
	FirstLapIndex               any `json:"first_lap_index,omitempty"`
	NumLaps                     any `json:"num_laps,omitempty"`
	NormalizedPower             any `json:"normalized_power,omitempty"`
	TrainingStressScore         any `json:"training_stress_score,omitempty"`
	IntensityFactor             any `json:"intensity_factor,omitempty"`
	LeftRightBalance            any `json:"left_right_balance,omitempty"`
	ThresholdPower              any `json:"threshold_power,omitempty"`
	StandCount                  any `json:"stand_count,omitempty"`
	EventType                   any `json:"event_type,omitempty"`
	Sport                       any `json:"sport,omitempty"`
	SubSport                    any `json:"sub_sport,omitempty"`
	AvgHeartRate                any `json:"avg_heart_rate,omitempty"`
	MaxHeartRate                any `json:"max_heart_rate,omitempty"`
	AvgCadence                  any `json:"avg_cadence,omitempty"`
	MaxCadence                  any `json:"max_cadence,omitempty"`
	EventGroup                  any `json:"event_group,omitempty"`
	Trigger                     any `json:"trigger,omitempty"`
	AvgFractionalCadence        any `json:"avg_fractional_cadence,omitempty"`
	MaxFractionalCadence        any `json:"max_fractional_cadence,omitempty"`
	TotalFractionalCycles       any `json:"total_fractional_cycles,omitempty"`
	AvgLeftTorqueEffectiveness  any `json:"avg_left_torque_effectiveness,omitempty"`
	AvgRightTorqueEffectiveness any `json:"avg_right_torque_effectiveness,omitempty"`
	AvgLeftPedalSmoothness      any `json:"avg_left_pedal_smoothness,omitempty"`
	AvgRightPedalSmoothness     any `json:"avg_right_pedal_smoothness,omitempty"`
	AvgCombinedPedalSmoothness  any `json:"avg_combined_pedal_smoothness,omitempty"`
	SportIndex                  any `json:"sport_index,omitempty"`
	AvgLeftPCO                  any `json:"avg_left_pco,omitempty"`
	AvgRightPCO                 any `json:"avg_right_pco,omitempty"`
	AvgCadencePosition          any `json:"avg_cadence_position,omitempty"`
	MaxCadencePosition          any `json:"max_cadence_position,omitempty"`
}

func (a *Activity) Kind() Kind                    { return KindActivity }
func (a *Activity) SetData(fields map[string]any) { assign(a, fields) }
func (a *Activity) Clean()                        { a.clean(nil) }
func (a *Activity) IsValid() bool                 { return a.check(nil) }
func (a *Activity) Fields() map[string]any        { return render(a) }

// Traveller is the profile of the person carrying the device.
type Traveller struct {
	Base

	WakeTime                  any `json:"wake_time,omitempty"`
	SleepTime                 any `json:"sleep_time,omitempty"`
	Weight                    any `json:"weight,omitempty"`
	UserRunningStepLength     any `json:"user_running_step_length,omitempty"`
	UserWalkingStepLength     any `json:"user_walking_step_length,omitempty"`
	Gender                    any `json:"gender,omitempty"`
	Age                       any `json:"age,omitempty"`
	Height                    any `json:"height,omitempty"`
	Language                  any `json:"language,omitempty"`
	ElevSetting               any `json:"elev_setting,omitempty"`
	WeightSetting             any `json:"weight_setting,omitempty"`
	RestingHeartRate          any `json:"resting_heart_rate,omitempty"`
	DefaultMaxBikingHeartRate any `json:"default_max_biking_heart_rate,omitempty"`
	DefaultMaxHeartRate       any `json:"default_max_heart_rate,omitempty"`
	HRSetting                 any `json:"hr_setting,omitempty"`
	SpeedSetting              any `json:"speed_setting,omitempty"`
	DistSetting               any `json:"dist_setting,omitempty"`
	PowerSetting              any `json:"power_setting,omitempty"`
	ActivityClass             any `json:"activity_class,omitempty"`
	PositionSetting           any `json:"position_setting,omitempty"`
	TemperatureSetting        any `json:"temperature_setting,omitempty"`
	HeightSetting             any `json:"height_setting,omitempty"`
}

func (t *Traveller) Kind() Kind                    { return KindTraveller }
func (t *Traveller) SetData(fields map[string]any) { assign(t, fields) }
func (t *Traveller) Clean()                        { t.clean(nil) }
func (t *Traveller) IsValid() bool                 { return t.check(nil) }
func (t *Traveller) Fields() map[string]any        { return render(t) }

// Unclassified holds a message no other kind recognises. Everything it
// carries lives in the overflow container.
type Unclassified struct {
	Base
}

func (u *Unclassified) Kind() Kind                    { return KindUnclassified }
func (u *Unclassified) SetData(fields map[string]any) { assign(u, fields) }
func (u *Unclassified) Clean()                        { u.clean(nil) }
func (u *Unclassified) IsValid() bool                 { return u.check(nil) }
func (u *Unclassified) Fields() map[string]any        { return render(u) }
