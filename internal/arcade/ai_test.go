package arcade

import (
	"math"
	"math/rand"
	"testing"
)

func TestAITargetIdlesWhenBallRecedes(t *testing.T) {
	b := Ball{X: 300, Y: 100, VX: -5, VY: 1}
	want := (CourtHeight - PaddleHeight) / 2
	if got := AITarget(b, AIPaddleX, rand.New(rand.NewSource(1))); got != want {
		t.Fatalf("expected idle target %v, got %v", want, got)
	}
}

func TestAITargetTracksPredictionWithinJitter(t *testing.T) {
	b := Ball{X: 300, Y: 200, VX: 5, VY: 1}
	base := PredictY(b, AIPaddleX) - PaddleHeight/2
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		got := AITarget(b, AIPaddleX, rng)
		if diff := math.Abs(got - base); diff >= aiJitterSpan+1e-9 {
			t.Fatalf("jitter %v exceeds span %v on draw %d", diff, aiJitterSpan, i)
		}
	}
}

func TestAITargetWithoutRNGIsExact(t *testing.T) {
	b := Ball{X: 300, Y: 200, VX: 5, VY: 0}
	want := PredictY(b, AIPaddleX) - PaddleHeight/2
	if got := AITarget(b, AIPaddleX, nil); got != want {
		t.Fatalf("expected jitter-free target %v, got %v", want, got)
	}
}

func TestMoveAIDeadZone(t *testing.T) {
	y := 150.0
	if got := MoveAI(y, y+aiDeadZone, 1); got != y {
		t.Fatalf("expected dead-zone hold at %v, got %v", y, got)
	}
	if got := MoveAI(y, y-aiDeadZone, 1); got != y {
		t.Fatalf("expected dead-zone hold at %v, got %v", y, got)
	}
}

func TestMoveAIStepIsCapped(t *testing.T) {
	y := 0.0
	target := 300.0
	got := MoveAI(y, target, 1)
	want := paddleSpeed * aiSpeedFactor
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected capped step to %v, got %v", want, got)
	}
}

func TestMoveAIDoesNotOvershoot(t *testing.T) {
	y := 100.0
	target := 101.0 + aiDeadZone
	if got := MoveAI(y, target, 10); got != target {
		t.Fatalf("expected exact arrival at %v, got %v", target, got)
	}
}

func TestMoveAIClampsToCourt(t *testing.T) {
	if got := MoveAI(2, -500, 10); got != 0 {
		t.Fatalf("expected clamp at 0, got %v", got)
	}
	bottom := CourtHeight - PaddleHeight
	if got := MoveAI(bottom-2, 1e6, 10); got != bottom {
		t.Fatalf("expected clamp at %v, got %v", bottom, got)
	}
}
