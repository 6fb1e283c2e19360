package challenge

import "testing"

func TestLevel_Ordinal(t *testing.T) {
	if LevelBeginner.Ordinal() != 0 || LevelIntermediate.Ordinal() != 1 || LevelAdvanced.Ordinal() != 2 {
		t.Fatal("unexpected level ordering")
	}
	if Level("expert").Ordinal() != -1 {
		t.Error("unknown level should have ordinal -1")
	}
}

func TestLevel_NextPrev(t *testing.T) {
	if LevelBeginner.Next() != LevelIntermediate {
		t.Errorf("beginner.Next() = %s", LevelBeginner.Next())
	}
	if LevelAdvanced.Next() != LevelAdvanced {
		t.Errorf("advanced.Next() = %s, want advanced", LevelAdvanced.Next())
	}
	if LevelAdvanced.Prev() != LevelIntermediate {
		t.Errorf("advanced.Prev() = %s", LevelAdvanced.Prev())
	}
	if LevelBeginner.Prev() != LevelBeginner {
		t.Errorf("beginner.Prev() = %s, want beginner", LevelBeginner.Prev())
	}
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("  Intermediate ")
	if !ok || l != LevelIntermediate {
		t.Errorf("ParseLevel = %q, %v", l, ok)
	}
	if _, ok := ParseLevel("native"); ok {
		t.Error("expected unknown level to fail")
	}
}

func TestLevel_OrDefault(t *testing.T) {
	if Level("").OrDefault() != LevelBeginner {
		t.Error("empty level should default to beginner")
	}
	if LevelAdvanced.OrDefault() != LevelAdvanced {
		t.Error("valid level should be kept")
	}
}

func TestType_Valid(t *testing.T) {
	for _, ty := range AllTypes() {
		if !ty.Valid() {
			t.Errorf("%s should be valid", ty)
		}
	}
	if Type("essay").Valid() {
		t.Error("essay should not be valid")
	}
}
