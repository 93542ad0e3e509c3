package column

import (
	"testing"

	"github.com/paratab/paratab/internal/bytesutil"
	"github.com/paratab/paratab/internal/loaderr"
)

func TestAccumulatorStaysNumeric(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Unknown)
	a.ProcessInt(1)
	a.ProcessInt(2)
	a.ProcessInt(3)
	if a.Semantics() != Numeric {
		t.Fatalf("expected Numeric, got %v", a.Semantics())
	}
	if a.Size() != 3 {
		t.Fatalf("expected size 3, got %d", a.Size())
	}
}

func TestAccumulatorPromotesToCategoricalOnNonNumericToken(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Unknown)
	a.ProcessInt(1)
	a.ProcessInt(2)
	a.ProcessCategorical([]byte("red"), bytesutil.ParseFloat)
	if a.Semantics() != Categorical {
		t.Fatalf("expected Categorical, got %v", a.Semantics())
	}
	if a.Size() != 3 {
		t.Fatalf("expected size 3 after conversion, got %d", a.Size())
	}
}

func TestAccumulatorPromotesToTextOnLevelCap(t *testing.T) {
	a := New("col", 1<<20, 1, Unknown)
	a.ProcessCategorical([]byte("red"), bytesutil.ParseFloat)
	a.ProcessCategorical([]byte("green"), bytesutil.ParseFloat)
	a.ProcessCategorical([]byte("blue"), bytesutil.ParseFloat)
	if a.Semantics() != Text {
		t.Fatalf("expected Text after exceeding max levels, got %v", a.Semantics())
	}
}

func TestAccumulatorEmptyTokenWithNumericBecomesZero(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Unknown)
	a.ProcessInt(5)
	a.ProcessCategorical([]byte(""), bytesutil.ParseFloat)
	if a.Semantics() != Numeric {
		t.Fatalf("expected Numeric, got %v", a.Semantics())
	}
	if a.Numbers().At(1) != 0 {
		t.Fatalf("expected second value 0, got %v", a.Numbers().At(1))
	}
}

func TestAccumulatorForcedNumericParsesTokens(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Numeric)
	if err := a.ProcessCategorical([]byte("3.5"), bytesutil.ParseFloat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Semantics() != Numeric {
		t.Fatalf("expected Numeric, got %v", a.Semantics())
	}
	if a.Numbers().At(0) != 3.5 {
		t.Fatalf("expected 3.5, got %v", a.Numbers().At(0))
	}
}

func TestAccumulatorForcedNumericRejectsGarbage(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Numeric)
	err := a.ProcessCategorical([]byte("hello"), bytesutil.ParseFloat)
	if err == nil {
		t.Fatal("expected an error for non-numeric input on a forced-numeric column")
	}
	le, ok := err.(*loaderr.Error)
	if !ok || le.Kind != loaderr.BadNumericForce {
		t.Fatalf("expected BadNumericForce, got %v", err)
	}
}

func TestAccumulatorForcedNumericAcceptsNaN(t *testing.T) {
	a := New("col", 1<<20, 1<<20, Numeric)
	if err := a.ProcessCategorical([]byte("nan"), bytesutil.ParseFloat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Semantics() != Numeric {
		t.Fatalf("expected Numeric, got %v", a.Semantics())
	}
}
