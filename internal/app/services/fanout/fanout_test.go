package fanout_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/fanout"
)

func TestResult_CleanRun(t *testing.T) {
	fo := fanout.New(zap.NewNop(), "op")
	fo.Do("one", func() error { return nil })
	fo.Do("two", func() error { return nil })

	if fo.Partial() {
		t.Errorf("expected no pending steps, got %v", fo.Pending())
	}
}

func TestResult_RecordsFailuresAndContinues(t *testing.T) {
	ran := []string{}
	fo := fanout.New(zap.NewNop(), "op")
	fo.Do("one", func() error { ran = append(ran, "one"); return errors.New("boom") })
	fo.Do("two", func() error { ran = append(ran, "two"); return nil })
	fo.Do("three", func() error { ran = append(ran, "three"); return errors.New("boom") })

	if len(ran) != 3 {
		t.Fatalf("every step must run, got %v", ran)
	}
	if !fo.Partial() {
		t.Fatal("expected partial result")
	}
	pending := fo.Pending()
	if len(pending) != 2 || pending[0] != "one" || pending[1] != "three" {
		t.Errorf("expected failed steps in order, got %v", pending)
	}
}

func TestResult_ZeroValueUsable(t *testing.T) {
	var fo fanout.Result
	fo.Do("step", func() error { return errors.New("boom") })
	if !fo.Partial() {
		t.Error("expected zero-value result to record failures")
	}
}
