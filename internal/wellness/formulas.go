package wellness

import (
	"math"
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ActivityFactors maps activity level names to their TDEE multiplier.
// It is the single source of truth for valid activity levels.
var ActivityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

/* ─── Pure formulas ───────────────────────────────────────────────────── */

// Age returns whole years between birthDate ("YYYY-MM-DD") and asOf. The year
// difference is decremented when asOf's month/day precedes the birthday.
// ok=false when birthDate is empty or unparsable.
func Age(birthDate string, asOf time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	birth, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, false
	}
	age := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() || (asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// BMI is weight / (height in metres)^2. ok=false unless both inputs are positive.
func BMI(heightCm, weightKg float64) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return weightKg / (m * m), true
}

// ClassifyBMI maps a BMI to its band. Lower bounds are inclusive.
func ClassifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 23:
		return "healthy"
	case bmi < 25:
		return "overweight"
	case bmi < 30:
		return "obese-I"
	case bmi < 35:
		return "obese-II"
	default:
		return "obese-III"
	}
}

// BMR via Mifflin-St Jeor: +5 for male, -161 for female and other.
// ok=false unless height, weight and age are all positive.
func BMR(gender string, heightCm, weightKg float64, age int) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 || age <= 0 {
		return 0, false
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, true
}

// TDEE scales bmr by the factor for level.
func TDEE(bmr float64, level string) (float64, error) {
	factor, ok := ActivityFactors[level]
	if !ok {
		return 0, invalid("activityLevel", "unknown activity level")
	}
	return bmr * factor, nil
}

// MaxHeartRate is the 220-minus-age estimate. ok=false unless age > 0.
func MaxHeartRate(age int) (int, bool) {
	if age <= 0 {
		return 0, false
	}
	return 220 - age, true
}

// Zone is an inclusive heart-rate band in bpm.
type Zone struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Zones struct {
	Moderate Zone `json:"moderate"`
	Vigorous Zone `json:"vigorous"`
}

// HeartRateZones derives the moderate (50-70%) and vigorous (70-85%) bands.
// math.Round rounds half away from zero.
func HeartRateZones(maxHR int) Zones {
	pct := func(p float64) int { return int(math.Round(p * float64(maxHR))) }
	return Zones{
		Moderate: Zone{Min: pct(0.5), Max: pct(0.7)},
		Vigorous: Zone{Min: pct(0.7), Max: pct(0.85)},
	}
}

/* ─── Validated entry points ──────────────────────────────────────────── */

// Profile is the body-metric input to the calculators. Nil pointers are
// absent values.
type Profile struct {
	Gender    string   `json:"gender"`
	BirthDate string   `json:"birthDate"`
	HeightCm  *float64 `json:"heightCm"`
	WeightKg  *float64 `json:"weightKg"`
	RestingHR *float64 `json:"restingHr"`
}

// Validate checks every present field against its accepted range, in field order.
func (p Profile) Validate() error {
	switch p.Gender {
	case "", GenderMale, GenderFemale, GenderOther:
	default:
		return invalid("gender", "must be male, female or other")
	}
	if p.BirthDate != "" {
		if _, err := time.Parse(DateLayout, p.BirthDate); err != nil {
			return invalid("birthDate", "expected YYYY-MM-DD")
		}
	}
	if err := checkRange("heightCm", p.HeightCm, MinHeightCm, MaxHeightCm, "cm"); err != nil {
		return err
	}
	if err := checkRange("weightKg", p.WeightKg, MinWeightKg, MaxWeightKg, "kg"); err != nil {
		return err
	}
	return checkRange("restingHr", p.RestingHR, MinRestingHR, MaxRestingHR, "bpm")
}

func (p Profile) require(fields ...string) error {
	for _, f := range fields {
		missing := false
		switch f {
		case "gender":
			missing = p.Gender == ""
		case "birthDate":
			missing = p.BirthDate == ""
		case "heightCm":
			missing = p.HeightCm == nil
		case "weightKg":
			missing = p.WeightKg == nil
		case "restingHr":
			missing = p.RestingHR == nil
		}
		if missing {
			return invalid(f, "is required")
		}
	}
	return nil
}

// positiveAge resolves the profile's age, rejecting birth dates that are not
// at least a year in the past.
func (p Profile) positiveAge(asOf time.Time) (int, error) {
	age, ok := Age(p.BirthDate, asOf)
	if !ok {
		return 0, invalid("birthDate", "expected YYYY-MM-DD")
	}
	if age <= 0 {
		return 0, invalid("birthDate", "must be at least one year in the past")
	}
	return age, nil
}

type BMIResult struct {
	BMI   float64 `json:"bmi"`
	Class string  `json:"class"`
	Age   *int    `json:"age"`
}

// CalculateBMI requires height and weight; birth date is optional and only
// reported back as age.
func CalculateBMI(p Profile, asOf time.Time) (BMIResult, error) {
	if err := p.require("heightCm", "weightKg"); err != nil {
		return BMIResult{}, err
	}
	if err := p.Validate(); err != nil {
		return BMIResult{}, err
	}
	bmi, _ := BMI(*p.HeightCm, *p.WeightKg)
	res := BMIResult{BMI: bmi, Class: ClassifyBMI(bmi)}
	if age, ok := Age(p.BirthDate, asOf); ok && age > 0 {
		res.Age = &age
	}
	return res, nil
}

type EnergyResult struct {
	Age   int     `json:"age"`
	BMR   float64 `json:"bmr"`
	Level string  `json:"activityLevel"`
	TDEE  float64 `json:"tdee"`
}

// CalculateEnergy computes BMR and TDEE. An empty level means sedentary.
func CalculateEnergy(p Profile, level string, asOf time.Time) (EnergyResult, error) {
	if err := p.require("gender", "birthDate", "heightCm", "weightKg"); err != nil {
		return EnergyResult{}, err
	}
	if err := p.Validate(); err != nil {
		return EnergyResult{}, err
	}
	age, err := p.positiveAge(asOf)
	if err != nil {
		return EnergyResult{}, err
	}
	if level == "" {
		level = "sedentary"
	}
	bmr, _ := BMR(p.Gender, *p.HeightCm, *p.WeightKg, age)
	tdee, err := TDEE(bmr, level)
	if err != nil {
		return EnergyResult{}, err
	}
	return EnergyResult{Age: age, BMR: bmr, Level: level, TDEE: tdee}, nil
}

type HeartRateResult struct {
	Age       int     `json:"age"`
	RestingHR float64 `json:"restingHr"`
	MaxHR     int     `json:"maxHr"`
	Zones     Zones   `json:"zones"`
}

// CalculateHeartRate requires birth date and resting heart rate.
func CalculateHeartRate(p Profile, asOf time.Time) (HeartRateResult, error) {
	if err := p.require("birthDate", "restingHr"); err != nil {
		return HeartRateResult{}, err
	}
	if err := p.Validate(); err != nil {
		return HeartRateResult{}, err
	}
	age, err := p.positiveAge(asOf)
	if err != nil {
		return HeartRateResult{}, err
	}
	maxHR, _ := MaxHeartRate(age)
	return HeartRateResult{
		Age:       age,
		RestingHR: *p.RestingHR,
		MaxHR:     maxHR,
		Zones:     HeartRateZones(maxHR),
	}, nil
}

// Report is every index derivable from a profile. Fields whose inputs are
// missing stay nil.
type Report struct {
	Age      *int     `json:"age"`
	BMI      *float64 `json:"bmi"`
	BMIClass *string  `json:"bmiClass"`
	BMR      *float64 `json:"bmr"`
	TDEE     *float64 `json:"tdee"`
	MaxHR    *int     `json:"maxHr"`
	Zones    *Zones   `json:"zones"`
}

// Evaluate validates present fields and then computes whatever it can.
func Evaluate(p Profile, level string, asOf time.Time) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	if level == "" {
		level = "sedentary"
	}
	if _, ok := ActivityFactors[level]; !ok {
		return Report{}, invalid("activityLevel", "unknown activity level")
	}

	var r Report
	age, hasAge := Age(p.BirthDate, asOf)
	// Birth dates in the future, or less than a year back, give no age.
	hasAge = hasAge && age > 0
	if hasAge {
		r.Age = &age
	}
	if p.HeightCm != nil && p.WeightKg != nil {
		if bmi, ok := BMI(*p.HeightCm, *p.WeightKg); ok {
			class := ClassifyBMI(bmi)
			r.BMI, r.BMIClass = &bmi, &class
		}
		if p.Gender != "" && hasAge {
			if bmr, ok := BMR(p.Gender, *p.HeightCm, *p.WeightKg, age); ok {
				tdee, _ := TDEE(bmr, level)
				r.BMR, r.TDEE = &bmr, &tdee
			}
		}
	}
	if maxHR, ok := MaxHeartRate(age); hasAge && ok {
		zones := HeartRateZones(maxHR)
		r.MaxHR, r.Zones = &maxHR, &zones
	}
	return r, nil
}
