package confidence

import (
	"testing"
	"time"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(DefaultConfig())
}

func TestCalculateBounds(t *testing.T) {
	s := newTestScorer(t)

	if got := s.Calculate(Factors{}); got != 0 {
		t.Errorf("Calculate(zero) = %d, want 0", got)
	}

	all := Factors{
		RetrievalScore:  1,
		PassageCoverage: 1,
		ModelCertainty:  1,
		RecencyFactor:   1,
		SourceTrust:     1,
	}
	if got := s.Calculate(all); got != 100 {
		t.Errorf("Calculate(ones) = %d, want 100", got)
	}
}

func TestCalculateWeightedFormula(t *testing.T) {
	s := newTestScorer(t)

	f := Factors{
		RetrievalScore:  0.9,
		PassageCoverage: 0.8,
		ModelCertainty:  0.7,
		RecencyFactor:   1.0,
		SourceTrust:     0.5,
	}
	// 100 * (0.4*0.9 + 0.2*0.8 + 0.2*0.7 + 0.1*1.0 + 0.1*0.5) = 81
	if got := s.Calculate(f); got != 81 {
		t.Errorf("Calculate = %d, want 81", got)
	}
}

func TestCalculateMonotonic(t *testing.T) {
	s := newTestScorer(t)

	base := Factors{
		RetrievalScore:  0.5,
		PassageCoverage: 0.5,
		ModelCertainty:  0.5,
		RecencyFactor:   0.5,
		SourceTrust:     0.5,
	}
	baseline := s.Calculate(base)

	bumps := []func(Factors) Factors{
		func(f Factors) Factors { f.RetrievalScore = 0.9; return f },
		func(f Factors) Factors { f.PassageCoverage = 0.9; return f },
		func(f Factors) Factors { f.ModelCertainty = 0.9; return f },
		func(f Factors) Factors { f.RecencyFactor = 0.9; return f },
		func(f Factors) Factors { f.SourceTrust = 0.9; return f },
	}
	for i, bump := range bumps {
		if got := s.Calculate(bump(base)); got < baseline {
			t.Errorf("bumping factor %d decreased score: %d < %d", i, got, baseline)
		}
	}
}

func TestLabelBoundaries(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		score int
		want  Label
	}{
		{100, LabelHigh},
		{80, LabelHigh},
		{79, LabelMedium},
		{50, LabelMedium},
		{49, LabelLow},
		{0, LabelLow},
	}
	for _, tt := range tests {
		if got := s.Label(tt.score); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestShouldEscalate(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		score    int
		explicit bool
		want     bool
	}{
		{39, false, true},
		{40, false, false},
		{45, false, false}, // labeled Low for display, but not escalated
		{99, true, true},
		{0, false, true},
	}
	for _, tt := range tests {
		if got := s.ShouldEscalate(tt.score, tt.explicit); got != tt.want {
			t.Errorf("ShouldEscalate(%d, %v) = %v, want %v", tt.score, tt.explicit, got, tt.want)
		}
	}
}

func TestRetrievalScore(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{80}, 0.8},
		{"top three of four", []float64{90, 80, 70, 10}, 0.8},
		{"two", []float64{100, 50}, 0.75},
	}
	for _, tt := range tests {
		if got := s.RetrievalScore(tt.scores); !near(got, tt.want) {
			t.Errorf("%s: RetrievalScore = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPassageCoverage(t *testing.T) {
	tests := []struct {
		used, retrieved int
		want            float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 1, 1},
		{1, 2, 0.5},
		{2, 5, 2.0 / 3.0},
		{5, 5, 1}, // capped
	}
	for _, tt := range tests {
		if got := PassageCoverage(tt.used, tt.retrieved); !near(got, tt.want) {
			t.Errorf("PassageCoverage(%d, %d) = %v, want %v", tt.used, tt.retrieved, got, tt.want)
		}
	}
}

func TestRecencyFactor(t *testing.T) {
	s := newTestScorer(t)
	now := time.Now()

	if got := s.RecencyFactor(now.AddDate(0, 0, -5), now); got != 1.0 {
		t.Errorf("5 days old: RecencyFactor = %v, want 1.0", got)
	}
	if got := s.RecencyFactor(now.AddDate(0, 0, -400), now); got != 0 {
		t.Errorf("400 days old: RecencyFactor = %v, want 0", got)
	}
	if got := s.RecencyFactor(time.Time{}, now); got != 0 {
		t.Errorf("zero time: RecencyFactor = %v, want 0", got)
	}

	mid := s.RecencyFactor(now.AddDate(0, 0, -197), now)
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid-window RecencyFactor = %v, want in (0,1)", mid)
	}
	older := s.RecencyFactor(now.AddDate(0, 0, -300), now)
	if older >= mid {
		t.Errorf("decay not monotonic: %v >= %v", older, mid)
	}
}

func TestSourceTrust(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		category string
		public   bool
		want     float64
	}{
		{"random", false, 0.5},
		{"billing", false, 0.8},
		{"random", true, 0.7},
		{"onboarding", true, 1.0},
		{"account", true, 1.0},
	}
	for _, tt := range tests {
		if got := s.SourceTrust(tt.category, tt.public); !near(got, tt.want) {
			t.Errorf("SourceTrust(%q, %v) = %v, want %v", tt.category, tt.public, got, tt.want)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
