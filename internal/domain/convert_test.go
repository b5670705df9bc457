package domain_test

import (
	"math"
	"testing"

	"weightlog/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"kg to jin", 70.0, "kg", "jin", 140.0},
		{"jin to kg", 140.0, "jin", "kg", 70.0},
		{"jin to lb", 200.0, "jin", "lb", 220.46226218},
		{"same unit kg", 80.0, "kg", "kg", 80.0},
		{"same unit jin", 180.0, "jin", "jin", 180.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
		{"zero value", 0, "kg", "lb", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		want     float64
		category string
	}{
		{"normal", 70, 175, 22.857, domain.BMINormal},
		{"underweight", 50, 175, 16.327, domain.BMIUnderweight},
		{"overweight", 80, 175, 26.122, domain.BMIOverweight},
		{"obese", 100, 175, 32.653, domain.BMIObese},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.BMI(tc.weight, tc.height)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("BMI(%v, %v) = %v; want %v", tc.weight, tc.height, got, tc.want)
			}
			if c := domain.BMICategory(got); c != tc.category {
				t.Errorf("BMICategory(%v) = %q; want %q", got, c, tc.category)
			}
		})
	}

	if got := domain.BMI(70, 0); got != 0 {
		t.Errorf("BMI with zero height = %v; want 0", got)
	}
}
