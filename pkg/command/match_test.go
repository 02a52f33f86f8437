package command

import (
	"testing"

	"duskward/pkg/archetype"
	"duskward/pkg/attribute"
	"duskward/pkg/entity"
)

func testCtx(t *testing.T) (Context, *entity.Item, *entity.Item) {
	t.Helper()
	race := archetype.Archetype{ID: "human", StartingPrimary: attribute.Primary{Strength: 10, Agility: 10, Intelligence: 10}, StartingHealthCap: 50, StartingManaCap: 20}
	job := archetype.Archetype{ID: "warrior"}
	actor := entity.NewMob("hero", []string{"hero"}, race, job)

	torch := entity.NewItem("a torch", []string{"torch"}, 5)
	actor.AppendContent(torch)

	sword := entity.NewItem("a rusty sword", []string{"sword", "rusty"}, 10)
	return Context{Actor: actor, RoomContents: []entity.Object{sword, actor}}, torch, sword
}

func TestMatchPatternResolvesInventoryScopedArg(t *testing.T) {
	ctx, torch, _ := testCtx(t)
	p, err := ParsePattern("get~ <item:item@inventory>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, ok := matchPattern(p, "get torch", ctx, nil)
	if !ok {
		t.Fatalf("expected pattern to match")
	}
	if args["item"].(entity.Object).OID() != torch.OID() {
		t.Errorf("expected the torch from inventory to resolve")
	}
}

func TestMatchPatternResolvesRoomScopedArg(t *testing.T) {
	ctx, _, sword := testCtx(t)
	p, err := ParsePattern("get~ <item:item@room>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, ok := matchPattern(p, "get sword", ctx, nil)
	if !ok {
		t.Fatalf("expected pattern to match")
	}
	if args["item"].(entity.Object).OID() != sword.OID() {
		t.Errorf("expected the sword from the room to resolve")
	}
}

func TestMatchPatternOptionalArgAbsentStillMatches(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("look~ <target:item@room?>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, ok := matchPattern(p, "look", ctx, nil)
	if !ok {
		t.Fatalf("expected pattern to match with the optional arg omitted")
	}
	if v, present := args["target"]; !present || v != nil {
		t.Errorf("expected a nil placeholder for the omitted optional arg, got %v", v)
	}
}

func TestMatchPatternRequiredArgMissingFailsMatch(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("get~ <item:item@room>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := matchPattern(p, "get", ctx, nil); ok {
		t.Errorf("expected match to fail when a required arg has no words left")
	}
}

func TestMatchPatternFailsOnTrailingWords(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("look~")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := matchPattern(p, "look around now", ctx, nil); ok {
		t.Errorf("expected extra trailing words past the pattern to fail the match")
	}
}

func TestMatchPatternTextArgConsumesRestOfLine(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("say~ <message:text>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, ok := matchPattern(p, "say hello there friend", ctx, nil)
	if !ok {
		t.Fatalf("expected pattern to match")
	}
	if args["message"] != "hello there friend" {
		t.Errorf("expected the text arg to consume the whole remainder, got %v", args["message"])
	}
}

func TestMatchPatternNumberArgRejectsNonNumeric(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("give~ <amount:number>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := matchPattern(p, "give many", ctx, nil); ok {
		t.Errorf("expected a non-numeric word to fail an ArgNumber match")
	}
	args, ok := matchPattern(p, "give 12", ctx, nil)
	if !ok || args["amount"] != 12 {
		t.Errorf("expected ArgNumber to parse 12, got %v ok=%v", args["amount"], ok)
	}
}

func TestMatchPatternDirectionArg(t *testing.T) {
	ctx, _, _ := testCtx(t)
	p, err := ParsePattern("go~ <dir:direction>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := matchPattern(p, "go sideways", ctx, nil); ok {
		t.Errorf("expected an unrecognized direction word to fail the match")
	}
	if _, ok := matchPattern(p, "go north", ctx, nil); !ok {
		t.Errorf("expected 'north' to parse as a direction")
	}
}
