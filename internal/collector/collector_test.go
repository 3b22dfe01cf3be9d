package collector_test

import (
	"testing"

	"meltr/internal/collector"
	"meltr/internal/diag"
	"meltr/internal/token"
)

func TestIntResizePreservesPrefix(t *testing.T) {
	c := collector.NewInt()
	c.Resize(3)
	c.Set(0, 10)
	c.Set(1, 20)
	c.Set(2, 30)

	c.Resize(5)
	if c.Len() != 5 {
		t.Fatalf("Len = %d after grow, want 5", c.Len())
	}
	col := c.Column().(collector.IntColumn)
	for i, want := range []int{10, 20, 30, 0, 0} {
		if col.At(i) != want {
			t.Errorf("value[%d] = %d, want %d", i, col.At(i), want)
		}
	}

	c.Resize(2)
	if c.Len() != 2 {
		t.Fatalf("Len = %d after shrink, want 2", c.Len())
	}
	col = c.Column().(collector.IntColumn)
	if col.At(0) != 10 || col.At(1) != 20 {
		t.Errorf("shrink lost prefix: %v", col.Ints())
	}
}

func TestIntRegrowWithinCapZeroes(t *testing.T) {
	c := collector.NewInt()
	c.Resize(4)
	c.Set(3, 99)
	c.Resize(1)
	c.Resize(4)
	col := c.Column().(collector.IntColumn)
	if got := col.At(3); got != 0 {
		t.Errorf("regrown slot holds stale value %d, want 0", got)
	}
}

func TestIntClear(t *testing.T) {
	c := collector.NewInt()
	c.Resize(2)
	c.Set(0, 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	// Resizing after Clear starts fresh.
	c.Resize(1)
	c.Set(0, 7)
	if got := c.Column().(collector.IntColumn).At(0); got != 7 {
		t.Errorf("value after clear+resize = %d, want 7", got)
	}
}

func TestIntSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set past the resized range did not panic")
		}
	}()
	c := collector.NewInt()
	c.Resize(1)
	c.Set(1, 5)
}

func TestCharacterMissingTracking(t *testing.T) {
	c := collector.NewCharacter()
	c.Resize(3)
	c.Set(0, "x")
	c.SetMissing(1)
	c.Set(2, "")

	col := c.Column().(collector.CharacterColumn)
	if v, missing := col.At(0); v != "x" || missing {
		t.Errorf("At(0) = (%q, %v), want (\"x\", false)", v, missing)
	}
	if _, missing := col.At(1); !missing {
		t.Error("At(1) not flagged missing")
	}
	if v, missing := col.At(2); v != "" || missing {
		t.Errorf("At(2) = (%q, %v), want (\"\", false)", v, missing)
	}
}

func TestCharacterSetToken(t *testing.T) {
	c := collector.NewCharacter()
	c.Resize(3)
	c.SetToken(0, token.NewString("hello", 0, 0))
	c.SetToken(1, token.NewMissing(0, 1))
	c.SetToken(2, token.NewEmpty(0, 2))

	col := c.Column().(collector.CharacterColumn)
	if v, _ := col.At(0); v != "hello" {
		t.Errorf("string token stored %q, want \"hello\"", v)
	}
	if _, missing := col.At(1); !missing {
		t.Error("missing token not flagged missing")
	}
	if v, missing := col.At(2); v != "" || missing {
		t.Errorf("empty token stored (%q, %v), want (\"\", false)", v, missing)
	}
}

func TestCharacterSetTokenEOFPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("storing an EOF token did not panic")
		}
	}()
	c := collector.NewCharacter()
	c.Resize(1)
	c.SetToken(0, token.NewEOF(0, 0))
}

func TestCharacterInvalidUTF8Warns(t *testing.T) {
	bag := diag.NewBag(10)
	c := collector.NewCharacter()
	c.SetWarnings(bag)
	c.Resize(1)
	c.SetToken(0, token.NewString("\xff\xfe", 2, 3))

	if bag.Len() != 1 {
		t.Fatalf("got %d warnings, want 1", bag.Len())
	}
	w := bag.Items()[0]
	if w.Row != 2 || w.Col != 3 {
		t.Errorf("warning at (%d, %d), want (2, 3)", w.Row, w.Col)
	}
}

func TestSkipFlags(t *testing.T) {
	if collector.NewInt().Skip() {
		t.Error("NewInt is flagged skip")
	}
	if !collector.NewSkippedInt().Skip() {
		t.Error("NewSkippedInt is not flagged skip")
	}
	if !collector.NewSkippedCharacter().Skip() {
		t.Error("NewSkippedCharacter is not flagged skip")
	}
}
