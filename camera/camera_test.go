package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/config"
)

type stubTarget struct {
	pos   r3.Vec
	rot   r3.Rotation
	valid bool
	reads int
}

func (s *stubTarget) Valid() bool { return s.valid }
func (s *stubTarget) Translation() r3.Vec {
	s.reads++
	return s.pos
}
func (s *stubTarget) Rotation() r3.Rotation { return s.rot }

func testCamera(stiffness float64, followYaw bool) *Camera {
	return New(config.CameraConfig{
		Offset:     config.Vec3{0, 5, -8},
		LookOffset: config.Vec3{0, 1, 0},
		Stiffness:  stiffness,
		FollowYaw:  followYaw,
		Fovy:       40,
	})
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestNew(t *testing.T) {
	cam := testCamera(0.5, true)

	if cam.Fovy != 40 {
		t.Errorf("expected fovy 40, got %f", cam.Fovy)
	}
	wantDist := math.Hypot(5, 8)
	if math.Abs(cam.MaxDistance-3*wantDist) > 1e-9 || math.Abs(cam.MinDistance-0.5*wantDist) > 1e-9 {
		t.Errorf("distance limits = [%f, %f]", cam.MinDistance, cam.MaxDistance)
	}
}

func TestFirstUpdateSnaps(t *testing.T) {
	cam := testCamera(0.1, false)
	target := &stubTarget{pos: r3.Vec{X: 4, Y: 2, Z: 1}, rot: r3.Rotation{Real: 1}, valid: true}

	if !cam.Update(target) {
		t.Fatal("Update returned false for a valid target")
	}
	if !vecNear(cam.Position, r3.Vec{X: 4, Y: 7, Z: -7}, 1e-12) {
		t.Errorf("expected eye (4, 7, -7), got %v", cam.Position)
	}
	if !vecNear(cam.LookAt, r3.Vec{X: 4, Y: 3, Z: 1}, 1e-12) {
		t.Errorf("expected look-at (4, 3, 1), got %v", cam.LookAt)
	}
}

func TestSmoothingEasesTowardTarget(t *testing.T) {
	cam := testCamera(0.5, false)
	target := &stubTarget{rot: r3.Rotation{Real: 1}, valid: true}
	cam.Update(target)

	target.pos = r3.Vec{X: 10}
	cam.Update(target)

	// Halfway from x=0 to x=10
	if math.Abs(cam.Position.X-5) > 1e-12 {
		t.Errorf("expected eye x 5 after one eased update, got %f", cam.Position.X)
	}

	for i := 0; i < 60; i++ {
		cam.Update(target)
	}
	if math.Abs(cam.Position.X-10) > 1e-9 {
		t.Errorf("camera did not converge, x = %f", cam.Position.X)
	}
}

func TestResetSnapsAgain(t *testing.T) {
	cam := testCamera(0.2, false)
	target := &stubTarget{rot: r3.Rotation{Real: 1}, valid: true}
	cam.Update(target)

	target.pos = r3.Vec{Y: 3}
	cam.Reset()
	cam.Update(target)
	if !vecNear(cam.Position, r3.Vec{Y: 8, Z: -8}, 1e-12) {
		t.Errorf("expected snap to (0, 8, -8), got %v", cam.Position)
	}
}

func TestFollowYawRotatesOffset(t *testing.T) {
	cam := testCamera(1, true)
	// Quarter turn about +Y maps -Z to -X
	target := &stubTarget{rot: r3.NewRotation(math.Pi/2, r3.Vec{Y: 1}), valid: true}
	cam.Update(target)

	if !vecNear(cam.Position, r3.Vec{X: -8, Y: 5}, 1e-9) {
		t.Errorf("expected eye (-8, 5, 0), got %v", cam.Position)
	}
}

func TestInvalidTargetSkipsUpdate(t *testing.T) {
	cam := testCamera(1, false)
	cam.Position = r3.Vec{X: 1, Y: 2, Z: 3}

	if cam.Update(nil) {
		t.Error("Update(nil) returned true")
	}
	target := &stubTarget{pos: r3.Vec{X: 50}, valid: false}
	if cam.Update(target) {
		t.Error("Update(invalid) returned true")
	}
	if target.reads != 0 {
		t.Error("camera read from an invalid target")
	}
	if cam.Position != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("camera moved without a target: %v", cam.Position)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := testCamera(1, false)
	dist := r3.Norm(cam.Offset)

	cam.Zoom(2)
	if math.Abs(r3.Norm(cam.Offset)-2*dist) > 1e-9 {
		t.Errorf("expected distance %f, got %f", 2*dist, r3.Norm(cam.Offset))
	}

	cam.Zoom(100)
	if math.Abs(r3.Norm(cam.Offset)-cam.MaxDistance) > 1e-9 {
		t.Errorf("expected clamp to max %f, got %f", cam.MaxDistance, r3.Norm(cam.Offset))
	}

	cam.Zoom(0.001)
	if math.Abs(r3.Norm(cam.Offset)-cam.MinDistance) > 1e-9 {
		t.Errorf("expected clamp to min %f, got %f", cam.MinDistance, r3.Norm(cam.Offset))
	}
}
