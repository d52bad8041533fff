package common

import "testing"

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{"title": "Groceries", "count": 3}
	if got := StringArg(args, "title"); got != "Groceries" {
		t.Errorf("StringArg(title) = %q", got)
	}
	if got := StringArg(args, "missing"); got != "" {
		t.Errorf("StringArg(missing) = %q, want empty", got)
	}
	if got := StringArg(args, "count"); got != "" {
		t.Errorf("StringArg(count) = %q, want empty for non-string", got)
	}
	if got := StringArg(nil, "title"); got != "" {
		t.Errorf("StringArg on nil args = %q, want empty", got)
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{"all_day": true, "title": "x"}
	if !BoolArg(args, "all_day") {
		t.Error("BoolArg(all_day) = false, want true")
	}
	if BoolArg(args, "missing") || BoolArg(args, "title") {
		t.Error("BoolArg should be false for missing or mistyped keys")
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{"priority": float64(5), "days": 7, "title": "x"}
	if got := IntArg(args, "priority", 0); got != 5 {
		t.Errorf("IntArg(priority) = %d, want 5", got)
	}
	if got := IntArg(args, "days", 0); got != 7 {
		t.Errorf("IntArg(days) = %d, want 7", got)
	}
	if got := IntArg(args, "missing", 42); got != 42 {
		t.Errorf("IntArg(missing) = %d, want fallback 42", got)
	}
	if got := IntArg(args, "title", 9); got != 9 {
		t.Errorf("IntArg(title) = %d, want fallback for non-number", got)
	}
}
