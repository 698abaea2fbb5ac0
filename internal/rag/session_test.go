package rag

import (
	"reflect"
	"testing"
)

func TestSession(t *testing.T) {
	s := NewSession(2)
	s.Add("q1", "a1")
	s.Add("q2", "a2")
	s.Add("q3", "a3")

	want := []Turn{{Question: "q2", Answer: "a2"}, {Question: "q3", Answer: "a3"}}
	got := s.History()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("History() = %v, want %v", got, want)
	}

	got[0].Answer = "changed"
	if s.History()[0].Answer != "a2" {
		t.Errorf("History() exposed internal state")
	}

	s.Reset()
	if len(s.History()) != 0 {
		t.Errorf("History() after Reset = %v, want empty", s.History())
	}
}

func TestSession_Unlimited(t *testing.T) {
	s := NewSession(0)
	for i := 0; i < 50; i++ {
		s.Add("q", "a")
	}
	if n := len(s.History()); n != 50 {
		t.Errorf("len(History()) = %d, want 50", n)
	}
}
