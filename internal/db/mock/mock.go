package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "mise/internal/log"
	"mise/models"
)

// New returns an in-memory sqlite database seeded with representative
// back-office data: a small unit table, a pantry, a sub-recipe feeding a menu
// item, and one month of counts, receipts, and sales.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:mise-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Unit{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.RecipeComponent{},
		&models.MenuItem{},
		&models.SalesRecord{},
		&models.InventoryCount{},
		&models.Receipt{},
		&models.ReceiptLine{},
		&models.User{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("lineflow"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Morgan Reyes",
		Email:        "morgan@mise.app",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	gram := models.Unit{Name: "g", Kind: models.UnitKindWeight, ToBaseRatio: 1}
	pound := models.Unit{Name: "lb", Kind: models.UnitKindWeight, ToBaseRatio: 453.592}
	each := models.Unit{Name: "each", Kind: models.UnitKindCount, ToBaseRatio: 1}

	units := []*models.Unit{&gram, &pound, &each}
	for _, unit := range units {
		if err := database.WithContext(ctx).Create(unit).Error; err != nil {
			return err
		}
	}

	flour := models.InventoryItem{
		Name: "Bread Flour", UnitID: pound.ID, PricePerUnit: 2.00, YieldPercent: 95,
		Category: "dry goods", Location: "dry storage",
	}
	mozzarella := models.InventoryItem{
		Name: "Mozzarella", UnitID: pound.ID, PricePerUnit: 4.50, YieldPercent: 100,
		Category: "dairy", Location: "walk-in",
	}
	tomatoes := models.InventoryItem{
		Name: "Crushed Tomatoes", UnitID: pound.ID, PricePerUnit: 1.40, YieldPercent: 98,
		Category: "canned", Location: "dry storage",
	}

	items := []*models.InventoryItem{&flour, &mozzarella, &tomatoes}
	for _, item := range items {
		if err := database.WithContext(ctx).Create(item).Error; err != nil {
			return err
		}
	}

	dough := models.Recipe{
		Name: "Pizza Dough", YieldQty: 20, YieldUnitID: pound.ID,
		CanBeIngredient: true,
	}
	pizza := models.Recipe{
		Name: "Margherita Pizza", YieldQty: 1, YieldUnitID: each.ID,
		WastePercent: 2,
	}
	if err := database.WithContext(ctx).Create(&dough).Error; err != nil {
		return err
	}
	if err := database.WithContext(ctx).Create(&pizza).Error; err != nil {
		return err
	}

	components := []models.RecipeComponent{
		{RecipeID: dough.ID, Qty: 12, UnitID: pound.ID, InventoryItemID: &flour.ID},
		{RecipeID: pizza.ID, Qty: 0.6, UnitID: pound.ID, SubRecipeID: &dough.ID},
		{RecipeID: pizza.ID, Qty: 150, UnitID: gram.ID, InventoryItemID: &mozzarella.ID},
		{RecipeID: pizza.ID, Qty: 120, UnitID: gram.ID, InventoryItemID: &tomatoes.ID},
	}
	for _, component := range components {
		componentCopy := component
		if err := database.WithContext(ctx).Create(&componentCopy).Error; err != nil {
			return err
		}
	}

	menuItem := models.MenuItem{Name: "Margherita", RecipeID: pizza.ID, Price: 14.50}
	if err := database.WithContext(ctx).Create(&menuItem).Error; err != nil {
		return err
	}

	monthStart := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	counts := []models.InventoryCount{
		{InventoryItemID: flour.ID, Quantity: 150, CountedAt: monthStart, Location: "dry storage"},
		{InventoryItemID: flour.ID, Quantity: 70, CountedAt: monthEnd, Location: "dry storage"},
		{InventoryItemID: mozzarella.ID, Quantity: 40, CountedAt: monthStart, Location: "walk-in"},
		{InventoryItemID: mozzarella.ID, Quantity: 22, CountedAt: monthEnd, Location: "walk-in"},
	}
	for _, count := range counts {
		countCopy := count
		if err := database.WithContext(ctx).Create(&countCopy).Error; err != nil {
			return err
		}
	}

	receipt := models.Receipt{
		SupplierName: "Harbor Provisions",
		Reference:    "INV-20419",
		ReceivedAt:   monthStart.AddDate(0, 0, 12),
		Lines: []models.ReceiptLine{
			{InventoryItemID: flour.ID, Qty: 100, UnitCost: 1.95},
			{InventoryItemID: mozzarella.ID, Qty: 30, UnitCost: 4.40},
		},
	}
	if err := database.WithContext(ctx).Create(&receipt).Error; err != nil {
		return err
	}

	sales := []models.SalesRecord{
		{MenuItemID: menuItem.ID, QtySold: 210, OccurredAt: monthStart.AddDate(0, 0, 9), Store: "main"},
		{MenuItemID: menuItem.ID, QtySold: 185, OccurredAt: monthStart.AddDate(0, 0, 23), Store: "main"},
	}
	for _, saleRecord := range sales {
		saleCopy := saleRecord
		if err := database.WithContext(ctx).Create(&saleCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
