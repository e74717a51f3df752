package wellness

import (
	"errors"
	"math"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

var asOf = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

/* ─── Age ─────────────────────────────────────────────────────────────── */

func TestAge(t *testing.T) {
	cases := []struct {
		name  string
		birth string
		asOf  time.Time
		want  int
		ok    bool
	}{
		{"day before birthday", "1990-06-15", time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), 35, true},
		{"on birthday", "1990-06-15", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 36, true},
		{"earlier month", "1990-06-15", time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC), 35, true},
		{"empty", "", asOf, 0, false},
		{"unparsable", "15/06/1990", asOf, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Age(tc.birth, tc.asOf)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Age(%q) = %d, %v; want %d, %v", tc.birth, got, ok, tc.want, tc.ok)
			}
		})
	}
}

/* ─── BMI ─────────────────────────────────────────────────────────────── */

func TestBMI_UndefinedForNonPositive(t *testing.T) {
	if _, ok := BMI(0, 70); ok {
		t.Error("expected ok=false for zero height")
	}
	if _, ok := BMI(170, -1); ok {
		t.Error("expected ok=false for negative weight")
	}
}

// TestBMI_Monotonic checks BMI rises with weight and falls with height over
// the accepted input range.
func TestBMI_Monotonic(t *testing.T) {
	prev := 0.0
	for w := float64(MinWeightKg); w <= MaxWeightKg; w += 5 {
		got, ok := BMI(170, w)
		if !ok || got <= prev {
			t.Fatalf("BMI(170, %v) = %v, not increasing (prev %v)", w, got, prev)
		}
		prev = got
	}
	prev, _ = BMI(MinHeightCm, 70)
	for h := float64(MinHeightCm + 5); h <= MaxHeightCm; h += 5 {
		got, _ := BMI(h, 70)
		if got >= prev {
			t.Fatalf("BMI(%v, 70) = %v, not decreasing (prev %v)", h, got, prev)
		}
		prev = got
	}
	a, _ := BMI(175, 70)
	b, _ := BMI(175, 70)
	if a != b {
		t.Fatal("BMI not deterministic")
	}
}

func TestClassifyBMI(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{16, "underweight"},
		{18.5, "healthy"},
		{22.99, "healthy"},
		{23, "overweight"},
		{25, "obese-I"},
		{30, "obese-II"},
		{35, "obese-III"},
		{42, "obese-III"},
	}
	for _, tc := range cases {
		if got := ClassifyBMI(tc.bmi); got != tc.want {
			t.Errorf("ClassifyBMI(%v) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

/* ─── BMR / TDEE ──────────────────────────────────────────────────────── */

func TestBMR(t *testing.T) {
	cases := []struct {
		name   string
		gender string
		h, w   float64
		age    int
		want   float64
	}{
		// 10*70 + 6.25*175 - 5*30 + 5
		{"male", GenderMale, 175, 70, 30, 1648.75},
		// 10*55 + 6.25*160 - 5*25 - 161
		{"female", GenderFemale, 160, 55, 25, 1264},
		{"other uses female constant", GenderOther, 160, 55, 25, 1264},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BMR(tc.gender, tc.h, tc.w, tc.age)
			if !ok || got != tc.want {
				t.Errorf("BMR = %v, %v; want %v", got, ok, tc.want)
			}
		})
	}
}

func TestBMR_RequiresPositiveAge(t *testing.T) {
	if _, ok := BMR(GenderMale, 175, 70, 0); ok {
		t.Error("expected ok=false for age 0")
	}
}

func TestTDEE(t *testing.T) {
	got, err := TDEE(1000, "moderate")
	if err != nil || math.Abs(got-1550) > 1e-9 {
		t.Fatalf("TDEE = %v, %v; want 1550", got, err)
	}
	_, err = TDEE(1000, "extreme")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "activityLevel" {
		t.Fatalf("expected activityLevel validation error, got %v", err)
	}
}

/* ─── Heart rate ──────────────────────────────────────────────────────── */

func TestHeartRate(t *testing.T) {
	maxHR, ok := MaxHeartRate(40)
	if !ok || maxHR != 180 {
		t.Fatalf("MaxHeartRate(40) = %d, %v", maxHR, ok)
	}
	z := HeartRateZones(maxHR)
	want := Zones{Moderate: Zone{90, 126}, Vigorous: Zone{126, 153}}
	if z != want {
		t.Errorf("zones = %+v, want %+v", z, want)
	}
	if _, ok := MaxHeartRate(0); ok {
		t.Error("expected ok=false for age 0")
	}
}

// TestHeartRateZones_RoundsHalfAwayFromZero: 0.5*171 = 85.5 rounds up.
func TestHeartRateZones_RoundsHalfAwayFromZero(t *testing.T) {
	if got := HeartRateZones(171).Moderate.Min; got != 86 {
		t.Errorf("moderate min = %d, want 86", got)
	}
}

/* ─── Validated entry points ──────────────────────────────────────────── */

// TestEvaluate_OutOfRangeRejected verifies nothing is computed when inputs
// fall outside the accepted ranges.
func TestEvaluate_OutOfRangeRejected(t *testing.T) {
	p := Profile{Gender: GenderMale, BirthDate: "1990-01-01", HeightCm: ptr(10), WeightKg: ptr(500), RestingHR: ptr(200)}
	r, err := Evaluate(p, "", asOf)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "heightCm" {
		t.Errorf("expected heightCm to be reported first, got %s", verr.Field)
	}
	if r.BMI != nil || r.BMR != nil || r.MaxHR != nil {
		t.Error("expected no metric on rejected input")
	}
}

func TestValidate_EachRange(t *testing.T) {
	cases := []struct {
		name  string
		p     Profile
		field string
	}{
		{"height low", Profile{HeightCm: ptr(79.9)}, "heightCm"},
		{"height high", Profile{HeightCm: ptr(251)}, "heightCm"},
		{"weight low", Profile{WeightKg: ptr(19)}, "weightKg"},
		{"weight high", Profile{WeightKg: ptr(250.5)}, "weightKg"},
		{"resting low", Profile{RestingHR: ptr(29)}, "restingHr"},
		{"resting high", Profile{RestingHR: ptr(121)}, "restingHr"},
		{"gender", Profile{Gender: "robot"}, "gender"},
		{"birth date", Profile{BirthDate: "yesterday"}, "birthDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *ValidationError
			if err := tc.p.Validate(); !errors.As(err, &verr) || verr.Field != tc.field {
				t.Errorf("expected %s error, got %v", tc.field, err)
			}
		})
	}

	edges := Profile{HeightCm: ptr(80), WeightKg: ptr(250), RestingHR: ptr(30)}
	if err := edges.Validate(); err != nil {
		t.Errorf("range bounds are inclusive, got %v", err)
	}
}

func TestEvaluate_PartialProfile(t *testing.T) {
	r, err := Evaluate(Profile{HeightCm: ptr(175), WeightKg: ptr(70)}, "", asOf)
	if err != nil {
		t.Fatal(err)
	}
	if r.BMI == nil || *r.BMIClass != "healthy" {
		t.Fatalf("expected BMI with class healthy, got %+v", r)
	}
	if r.Age != nil || r.BMR != nil || r.TDEE != nil || r.MaxHR != nil || r.Zones != nil {
		t.Errorf("expected age-dependent fields to be nil, got %+v", r)
	}
}

func TestEvaluate_FutureBirthDate(t *testing.T) {
	p := Profile{Gender: GenderFemale, BirthDate: "2030-05-01", HeightCm: ptr(160), WeightKg: ptr(55)}
	r, err := Evaluate(p, "", asOf)
	if err != nil {
		t.Fatal(err)
	}
	if r.Age != nil || r.BMR != nil || r.MaxHR != nil {
		t.Errorf("expected no age-dependent fields for a future birth date, got %+v", r)
	}
	if r.BMI == nil {
		t.Error("expected BMI regardless of birth date")
	}

	bmi, err := CalculateBMI(p, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if bmi.Age != nil {
		t.Errorf("expected no age, got %d", *bmi.Age)
	}
}

func TestEvaluate_FullProfile(t *testing.T) {
	p := Profile{Gender: GenderMale, BirthDate: "1986-01-01", HeightCm: ptr(175), WeightKg: ptr(70)}
	r, err := Evaluate(p, "sedentary", asOf)
	if err != nil {
		t.Fatal(err)
	}
	if *r.Age != 40 || *r.BMR != 1598.75 || *r.MaxHR != 180 {
		t.Errorf("unexpected report: age=%d bmr=%v maxHr=%d", *r.Age, *r.BMR, *r.MaxHR)
	}
	if math.Abs(*r.TDEE-1918.5) > 1e-9 {
		t.Errorf("tdee = %v", *r.TDEE)
	}
}

func TestCalculateEnergy_MissingFields(t *testing.T) {
	full := Profile{Gender: GenderFemale, BirthDate: "2001-01-01", HeightCm: ptr(160), WeightKg: ptr(55)}
	cases := []struct {
		field string
		mut   func(p *Profile)
	}{
		{"gender", func(p *Profile) { p.Gender = "" }},
		{"birthDate", func(p *Profile) { p.BirthDate = "" }},
		{"heightCm", func(p *Profile) { p.HeightCm = nil }},
		{"weightKg", func(p *Profile) { p.WeightKg = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			p := full
			tc.mut(&p)
			_, err := CalculateEnergy(p, "light", asOf)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field || verr.Reason != "is required" {
				t.Errorf("expected missing %s, got %v", tc.field, err)
			}
		})
	}

	res, err := CalculateEnergy(full, "", asOf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Level != "sedentary" || res.Age != 25 || res.BMR != 1264 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCalculateHeartRate(t *testing.T) {
	res, err := CalculateHeartRate(Profile{BirthDate: "1986-01-01", RestingHR: ptr(60)}, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxHR != 180 || res.Zones.Vigorous.Max != 153 || res.RestingHR != 60 {
		t.Errorf("unexpected result %+v", res)
	}

	_, err = CalculateHeartRate(Profile{BirthDate: "2026-10-01", RestingHR: ptr(60)}, asOf)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "birthDate" {
		t.Errorf("expected birthDate error for a newborn, got %v", err)
	}
}

func TestCalculateBMI(t *testing.T) {
	res, err := CalculateBMI(Profile{HeightCm: ptr(200), WeightKg: ptr(100)}, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if res.BMI != 25 || res.Class != "obese-I" || res.Age != nil {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := CalculateBMI(Profile{HeightCm: ptr(200)}, asOf); err == nil {
		t.Error("expected missing weight error")
	}
}
