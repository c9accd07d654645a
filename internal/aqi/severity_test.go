package aqi

import "testing"

// TestClassifyBoundaries verifies the six bands with inclusive upper bounds.
func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		aqi  float64
		want Category
	}{
		{0, CategoryGood},
		{42, CategoryGood},
		{50, CategoryGood},
		{50.1, CategoryModerate},
		{87, CategoryModerate},
		{100, CategoryModerate},
		{100.1, CategorySensitive},
		{150, CategorySensitive},
		{152, CategoryUnhealthy},
		{200, CategoryUnhealthy},
		{200.1, CategoryVeryUnhealthy},
		{300, CategoryVeryUnhealthy},
		{300.1, CategoryHazardous},
		{301, CategoryHazardous},
		{1000, CategoryHazardous},
	}

	for _, tc := range cases {
		if got := Classify(tc.aqi); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.aqi, got, tc.want)
		}
	}
}

func TestCategoryColor(t *testing.T) {
	categories := []Category{
		CategoryGood, CategoryModerate, CategorySensitive,
		CategoryUnhealthy, CategoryVeryUnhealthy, CategoryHazardous,
	}

	seen := make(map[string]Category)
	for _, c := range categories {
		color := c.Color()
		if color == "" {
			t.Errorf("category %q has no color", c)
		}
		if prev, dup := seen[color]; dup {
			t.Errorf("categories %q and %q share color %q", prev, c, color)
		}
		seen[color] = c
	}
}
