package commands_test

import (
	"testing"

	"taskman/internal/commands"
)

func TestRegistry_FindByNameAndAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"list", "ls", "LS"} {
		cmd, ok := r.Find(name)
		if !ok {
			t.Errorf("expected %q to resolve", name)
			continue
		}
		if cmd.Name() != "list" {
			t.Errorf("expected %q, got %q", "list", cmd.Name())
		}
	}
	if _, ok := r.Find("lists"); ok {
		t.Error("expected unknown name to miss")
	}
}

func TestRegistry_RejectsClash(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.RmCmd{}); err == nil {
		t.Error("expected error registering the same name twice")
	}
}

func TestRegistry_AllSortedWithoutAliases(t *testing.T) {
	r := commands.NewRegistry()
	for _, c := range []commands.Command{&commands.RmCmd{}, &commands.AddCmd{}, &commands.ListCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all := r.All()
	want := []string{"add", "list", "rm"}
	if len(all) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(all))
	}
	for i, name := range want {
		if all[i].Name() != name {
			t.Errorf("expected %q at %d, got %q", name, i, all[i].Name())
		}
	}
}
