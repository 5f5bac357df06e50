package core

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestFromYaw(t *testing.T) {
	tests := []struct {
		name string
		yaw  float32
		want Vec2
	}{
		{"forward", 0, Vec2{0, 1}},
		{"quarter turn", math.Pi / 2, Vec2{1, 0}},
		{"half turn", math.Pi, Vec2{0, -1}},
		{"negative quarter", -math.Pi / 2, Vec2{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromYaw(tt.yaw)
			if !approx(got.X, tt.want.X) || !approx(got.Z, tt.want.Z) {
				t.Errorf("FromYaw(%v) = %v, expected %v", tt.yaw, got, tt.want)
			}
			if back := got.Yaw(); !approx(FromYaw(back).X, got.X) || !approx(FromYaw(back).Z, got.Z) {
				t.Errorf("Yaw() round trip = %v", back)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Normalize() = %v, expected zero", got)
	}
	v := Vec2{3, 4}.Normalize()
	if !approx(v.Len(), 1) || !approx(v.X, 0.6) || !approx(v.Z, 0.8) {
		t.Errorf("Normalize() = %v", v)
	}
	if got := (Vec2{3, 4}).Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
}

func TestDotAndAngle(t *testing.T) {
	a, b := FromYaw(0), FromYaw(math.Pi/2)
	if got := a.Dot(b); !approx(got, 0) {
		t.Errorf("perpendicular Dot() = %v", got)
	}
	if got := a.Dot(a.Scale(2)); !approx(got, 2) {
		t.Errorf("Dot() with scaled vector = %v", got)
	}

	tests := []struct {
		cos  float32
		want float32
	}{
		{1, 0},
		{1.0000001, 0},
		{-1.5, math.Pi},
		{0, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := Angle(tt.cos); !approx(got, tt.want) {
			t.Errorf("Angle(%v) = %v, expected %v", tt.cos, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want float32
	}{
		{15, 12, 20, 15},
		{11.9, 12, 20, 12},
		{25, 12, 20, 20},
		{12, 12, 20, 12},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(int) = %d, expected 0", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 4, H: 3}
	if r.Right() != 6 || r.Bottom() != 4 {
		t.Errorf("Right()=%d Bottom()=%d, expected 6 and 4", r.Right(), r.Bottom())
	}
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{5, 3, true},
		{6, 3, false},
		{1, 1, false},
		{3, 4, false},
	} {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}
