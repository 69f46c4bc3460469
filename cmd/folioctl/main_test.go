package main

import "testing"

func TestRunVersion(t *testing.T) {
	if err := run([]string{"version"}); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
}

func TestRunMigrateMissingDB(t *testing.T) {
	err := run([]string{"migrate"})
	if err == nil {
		t.Fatalf("expected migrate to fail without --db")
	}
}
