package mock

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"mise/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var units []models.Unit
	if err := database.WithContext(ctx).Find(&units).Error; err != nil {
		t.Fatalf("query units: %v", err)
	}
	if len(units) == 0 {
		t.Fatal("expected seeded units")
	}

	var components []models.RecipeComponent
	if err := database.WithContext(ctx).Find(&components).Error; err != nil {
		t.Fatalf("query recipe components: %v", err)
	}
	if len(components) == 0 {
		t.Fatal("expected seeded recipe components")
	}

	subRecipeSeen := false
	for _, component := range components {
		if component.SubRecipeID != nil {
			subRecipeSeen = true
		}
	}
	if !subRecipeSeen {
		t.Fatal("expected at least one sub-recipe component in the seed data")
	}

	var counts []models.InventoryCount
	if err := database.WithContext(ctx).Find(&counts).Error; err != nil {
		t.Fatalf("query inventory counts: %v", err)
	}
	if len(counts) < 2 {
		t.Fatalf("expected at least two count snapshots, got %d", len(counts))
	}

	var user models.User
	if err := database.WithContext(ctx).First(&user).Error; err != nil {
		t.Fatalf("query user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("lineflow")); err != nil {
		t.Fatalf("unexpected password hash: %v", err)
	}
}
