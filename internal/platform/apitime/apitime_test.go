package apitime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnmarshal_NaiveAndZoned(t *testing.T) {
	var v struct {
		A Time  `json:"a"`
		B Time  `json:"b"`
		C *Time `json:"c"`
	}
	raw := `{"a":"2025-01-10T14:03:22.123456","b":"2025-01-10T08:03:22-06:00","c":null}`
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := time.Date(2025, 1, 10, 14, 3, 22, 123456000, time.UTC)
	if !v.A.Equal(want) {
		t.Fatalf("naive timestamp: got %v want %v", v.A, want)
	}
	if !v.B.Equal(time.Date(2025, 1, 10, 14, 3, 22, 0, time.UTC)) {
		t.Fatalf("zoned timestamp: got %v", v.B)
	}
	if v.C != nil {
		t.Fatalf("expected nil pointer for null")
	}
}

func TestMarshal_ZeroIsNull(t *testing.T) {
	b, err := json.Marshal(Time{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null, got %s", b)
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	var v Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &v); err == nil {
		t.Fatalf("expected error")
	}
}
