package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/config"
)

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		world  mgl64.Vec2
		camera mgl64.Vec2
		want   mgl64.Vec2
	}{
		{"原点在左下角", mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{0, config.ScreenHeight}},
		{"顶部", mgl64.Vec2{10, config.ScreenHeight}, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}},
		{"摄像机偏移", mgl64.Vec2{110, 50}, mgl64.Vec2{100, 20}, mgl64.Vec2{10, config.ScreenHeight - 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorldToScreen(tt.world, tt.camera); got != tt.want {
				t.Errorf("WorldToScreen = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScreenCameraRoundTrip(t *testing.T) {
	p := mgl64.Vec2{33, 77}
	if got := ScreenToCamera(CameraToScreen(p)); got != p {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestNormalizeOrZero(t *testing.T) {
	if got := NormalizeOrZero(mgl64.Vec2{}); got != (mgl64.Vec2{}) {
		t.Errorf("zero vector: got %v", got)
	}
	got := NormalizeOrZero(mgl64.Vec2{3, 4})
	if math.Abs(got.X()-0.6) > 1e-9 || math.Abs(got.Y()-0.8) > 1e-9 {
		t.Errorf("NormalizeOrZero(3,4) = %v", got)
	}
}

func TestClampVec(t *testing.T) {
	got := ClampVec(mgl64.Vec2{-5, 200}, mgl64.Vec2{0, 14}, mgl64.Vec2{160, 144})
	if got != (mgl64.Vec2{0, 144}) {
		t.Errorf("ClampVec = %v", got)
	}
}

func TestHitShapes(t *testing.T) {
	c := mgl64.Vec2{10, 10}
	if !PointInCircle(mgl64.Vec2{12, 10}, c, 3) {
		t.Error("point inside circle")
	}
	if PointInCircle(mgl64.Vec2{13, 10}, c, 3) {
		t.Error("point on the circle edge is not a hit")
	}
	if !PointInRect(mgl64.Vec2{14, 6}, c, 8, 8) {
		t.Error("point on rect edge is a hit")
	}
	if PointInRect(mgl64.Vec2{15, 10}, c, 8, 8) {
		t.Error("point outside rect")
	}
}
